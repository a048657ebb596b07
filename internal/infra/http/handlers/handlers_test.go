package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/http/handlers"
	"github.com/xavierca1/formapro-console/internal/infra/store"
	"github.com/xavierca1/formapro-console/internal/usecase"
)

var fixedNow = time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func fixture() []entity.RendezVous {
	return []entity.RendezVous{
		{
			ID:             "rdv-1",
			ProgrammeTitre: "Excel",
			Client:         entity.Client{Nom: "Martin", Prenom: "Sophie", Email: "sophie@exemple.fr"},
			Type:           entity.TypePositionnement,
			Status:         entity.StatutConfirme,
			Date:           "2025-03-12",
			Heure:          "10:00",
			Duree:          45,
			Lieu:           entity.LieuVisio,
		},
		{
			ID:     "rdv-2",
			Client: entity.Client{Nom: "Bernard", Prenom: "Lucas", Email: "lucas@exemple.fr"},
			Type:   entity.TypeInformation,
			Status: entity.StatutEnAttente,
			Date:   "2025-03-13",
			Heure:  "14:30",
			Duree:  30,
			Lieu:   entity.LieuTelephone,
		},
		{
			ID:     "rdv-3",
			Client: entity.Client{Nom: "Petit", Prenom: "Camille", Email: "camille@exemple.fr"},
			Type:   entity.TypeSuivi,
			Status: entity.StatutAnnule,
			Date:   "2025-04-02",
			Heure:  "09:00",
			Duree:  60,
			Lieu:   entity.LieuPresentiel,
		},
	}
}

type testServer struct {
	router http.Handler
	store  *store.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mem := store.NewMemory(fixture())

	list := usecase.NewListRendezVousUseCase(mem, clock)
	update := usecase.NewUpdateRendezVousUseCase(mem, nil, nil, clock)
	rdv := handlers.NewRendezVousHandler(
		list,
		usecase.NewGetRendezVousUseCase(mem),
		usecase.NewPeriodRendezVousUseCase(mem, clock),
		usecase.NewCreateRendezVousUseCase(mem, nil, nil, nil, clock),
		update,
		usecase.NewDeleteRendezVousUseCase(mem, nil, nil),
	)
	admin := handlers.NewAdminHandler(list, update)

	r := chi.NewRouter()
	r.Get("/rendez-vous", rdv.ListHandler)
	r.Get("/rendez-vous/jour", rdv.JourHandler)
	r.Get("/rendez-vous/semaine", rdv.SemaineHandler)
	r.Get("/rendez-vous/mois", rdv.MoisHandler)
	r.Get("/rendez-vous/{id}", rdv.GetHandler)
	r.Post("/rendez-vous", rdv.CreateHandler)
	r.Patch("/rendez-vous/{id}", rdv.UpdateHandler)
	r.Delete("/rendez-vous/{id}", rdv.DeleteHandler)
	r.Get("/admin/rendez-vous", admin.ListHandler)
	r.Post("/admin/rendez-vous/statut", admin.BulkStatusHandler)

	return &testServer{router: r, store: mem}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Details []usecase.ValidationError `json:"details"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func ids(list []entity.RendezVous) []string {
	out := make([]string, 0, len(list))
	for _, rv := range list {
		out = append(out, rv.ID)
	}
	return out
}
