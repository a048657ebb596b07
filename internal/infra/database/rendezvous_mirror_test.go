package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/store"
)

func newTestMirror(t *testing.T, skip func(string) bool) *RendezVousMirror {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	m := &RendezVousMirror{DB: db, Skip: skip}
	require.NoError(t, m.EnsureSchema(context.Background()))
	return m
}

func TestMirrorSaveUpsertAndLoad(t *testing.T) {
	ctx := context.Background()
	m := newTestMirror(t, nil)

	rv := &entity.RendezVous{
		ID:        "rdv-1",
		Client:    entity.Client{Nom: "Durand", Email: "paul@exemple.fr"},
		Type:      entity.TypeSuivi,
		Status:    entity.StatutEnAttente,
		Date:      "2025-03-14",
		Heure:     "10:00",
		Duree:     30,
		UpdatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, m.Save(ctx, rv))

	rv.Status = entity.StatutConfirme
	rv.UpdatedAt = rv.UpdatedAt.Add(time.Hour)
	require.NoError(t, m.Save(ctx, rv))

	all, err := m.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.StatutConfirme, all[0].Status)
	assert.Equal(t, "paul@exemple.fr", all[0].Client.Email)

	require.NoError(t, m.Delete(ctx, "rdv-1"))
	all, err = m.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMirrorSkipsSeedRecords(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory([]entity.RendezVous{{ID: "seed-1"}})
	m := newTestMirror(t, mem.IsSeed)

	require.NoError(t, m.Save(ctx, &entity.RendezVous{ID: "seed-1"}))
	require.NoError(t, m.Save(ctx, &entity.RendezVous{ID: "custom-1"}))

	all, err := m.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "custom-1", all[0].ID)
}

func TestMirrorRestoreMergesIntoStore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory([]entity.RendezVous{{ID: "seed-1"}})
	m := newTestMirror(t, mem.IsSeed)

	require.NoError(t, m.Save(ctx, &entity.RendezVous{ID: "custom-1"}))
	_, err := m.DB.ExecContext(ctx, `INSERT INTO rendez_vous_mirror (id, payload, updated_at) VALUES ('bad', 'pas du json', '2025-01-01')`)
	require.NoError(t, err)

	added, err := m.Restore(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, mem.Len())
}

func TestSQLStateIgnoresForeignErrors(t *testing.T) {
	assert.Empty(t, sqlState(assert.AnError))
	assert.False(t, isUndefinedTable(nil))
}
