package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/xavierca1/formapro-console/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS rendez_vous_mirror (
	id         TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// RendezVousMirror keeps custom appointments in a table so they survive restarts.
// Records for which Skip returns true (the demo seed) are never written.
type RendezVousMirror struct {
	DB   *sqlx.DB
	Skip func(id string) bool
}

func NewRendezVousMirror(db *sql.DB, driver string, skip func(id string) bool) *RendezVousMirror {
	return &RendezVousMirror{DB: sqlx.NewDb(db, driver), Skip: skip}
}

func (m *RendezVousMirror) EnsureSchema(ctx context.Context) error {
	if _, err := m.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("création du schéma impossible: %w", err)
	}
	return nil
}

func (m *RendezVousMirror) Save(ctx context.Context, rv *entity.RendezVous) error {
	if m.skip(rv.ID) {
		return nil
	}
	payload, err := json.Marshal(rv)
	if err != nil {
		return fmt.Errorf("sérialisation du rendez-vous impossible: %w", err)
	}

	query := m.DB.Rebind(`
		INSERT INTO rendez_vous_mirror (id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`)
	if _, err := m.DB.ExecContext(ctx, query, rv.ID, string(payload), rv.UpdatedAt.UTC()); err != nil {
		if isUniqueViolation(err) {
			log.Printf("⚠️ [MIRROR] Conflit d'écriture sur %s: %v", rv.ID, err)
		}
		return fmt.Errorf("sauvegarde du rendez-vous %s impossible: %w", rv.ID, err)
	}
	return nil
}

func (m *RendezVousMirror) Delete(ctx context.Context, id string) error {
	if m.skip(id) {
		return nil
	}
	query := m.DB.Rebind(`DELETE FROM rendez_vous_mirror WHERE id = ?`)
	if _, err := m.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("suppression du rendez-vous %s impossible: %w", id, err)
	}
	return nil
}

// Merger is the in-memory store side of a restore.
type Merger interface {
	Merge(records []entity.RendezVous) int
}

type mirrorRow struct {
	ID      string `db:"id"`
	Payload []byte `db:"payload"`
}

// LoadAll returns the mirrored appointments, oldest update first. Rows that no
// longer decode are logged and skipped.
func (m *RendezVousMirror) LoadAll(ctx context.Context) ([]entity.RendezVous, error) {
	var rows []mirrorRow
	err := m.DB.SelectContext(ctx, &rows, `SELECT id, payload FROM rendez_vous_mirror ORDER BY updated_at`)
	if isUndefinedTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture du miroir impossible: %w", err)
	}

	out := make([]entity.RendezVous, 0, len(rows))
	for _, row := range rows {
		var rv entity.RendezVous
		if err := json.Unmarshal(row.Payload, &rv); err != nil {
			log.Printf("⚠️ [MIRROR] Ligne %s illisible: %v", row.ID, err)
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

// Restore loads the mirror into target and reports how many records were added.
func (m *RendezVousMirror) Restore(ctx context.Context, target Merger) (int, error) {
	start := time.Now()
	records, err := m.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	added := target.Merge(records)
	log.Printf("[MIRROR] %d rendez-vous restaurés en %s", added, time.Since(start).Round(time.Millisecond))
	return added, nil
}

func (m *RendezVousMirror) skip(id string) bool {
	return m.Skip != nil && m.Skip(id)
}
