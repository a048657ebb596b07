package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/http/middleware"
	"github.com/xavierca1/formapro-console/internal/state/form"
	"github.com/xavierca1/formapro-console/internal/usecase"
)

type RendezVousHandler struct {
	ListUC   *usecase.ListRendezVousUseCase
	GetUC    *usecase.GetRendezVousUseCase
	PeriodUC *usecase.PeriodRendezVousUseCase
	CreateUC *usecase.CreateRendezVousUseCase
	UpdateUC *usecase.UpdateRendezVousUseCase
	DeleteUC *usecase.DeleteRendezVousUseCase
}

func NewRendezVousHandler(
	list *usecase.ListRendezVousUseCase,
	get *usecase.GetRendezVousUseCase,
	period *usecase.PeriodRendezVousUseCase,
	create *usecase.CreateRendezVousUseCase,
	update *usecase.UpdateRendezVousUseCase,
	del *usecase.DeleteRendezVousUseCase,
) *RendezVousHandler {
	return &RendezVousHandler{
		ListUC:   list,
		GetUC:    get,
		PeriodUC: period,
		CreateUC: create,
		UpdateUC: update,
		DeleteUC: del,
	}
}

// ListHandler (GET /rendez-vous)
func (h *RendezVousHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := entity.RendezVousFilters{
		Statut:      q.Get("statut"),
		Type:        q.Get("type"),
		Lieu:        q.Get("lieu"),
		ProgrammeID: q.Get("programmeId"),
		DateDebut:   q.Get("dateDebut"),
		DateFin:     q.Get("dateFin"),
		Search:      q.Get("search"),
	}

	out, err := h.ListUC.Execute(r.Context(), filters)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RendezVousHandler) JourHandler(w http.ResponseWriter, r *http.Request) {
	h.period(w, r, h.PeriodUC.Jour)
}

func (h *RendezVousHandler) SemaineHandler(w http.ResponseWriter, r *http.Request) {
	h.period(w, r, h.PeriodUC.Semaine)
}

func (h *RendezVousHandler) MoisHandler(w http.ResponseWriter, r *http.Request) {
	h.period(w, r, h.PeriodUC.Mois)
}

func (h *RendezVousHandler) period(w http.ResponseWriter, r *http.Request, query func(context.Context) ([]entity.RendezVous, error)) {
	list, err := query(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	if list == nil {
		list = []entity.RendezVous{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rendezVous": list, "total": len(list)})
}

// GetHandler (GET /rendez-vous/{id})
func (h *RendezVousHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rv, found, err := h.GetUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	if !found {
		writeUseCaseError(w, usecase.NewNotFoundError(id))
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

// CreateHandler (POST /rendez-vous) backs the public booking form.
func (h *RendezVousHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var values form.Values
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON invalide")
		return
	}
	if details := validateBooking(values); len(details) > 0 {
		writeValidationErrors(w, details)
		return
	}
	input, err := bookingInput(values)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON invalide")
		return
	}

	rv, err := h.CreateUC.Execute(r.Context(), input)
	middleware.RecordRendezVousMutation("create", err)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// UpdateHandler (PATCH /rendez-vous/{id})
func (h *RendezVousHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var patch entity.RendezVousPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON invalide")
		return
	}

	rv, err := h.UpdateUC.Execute(r.Context(), usecase.UpdateRendezVousInput{ID: chi.URLParam(r, "id"), Patch: patch})
	middleware.RecordRendezVousMutation("update", err)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

// DeleteHandler (DELETE /rendez-vous/{id})
func (h *RendezVousHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	err := h.DeleteUC.Execute(r.Context(), chi.URLParam(r, "id"))
	middleware.RecordRendezVousMutation("delete", err)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
