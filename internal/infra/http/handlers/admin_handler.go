package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/http/middleware"
	"github.com/xavierca1/formapro-console/internal/state/listing"
	"github.com/xavierca1/formapro-console/internal/usecase"
)

func optional(s string) (any, bool) { return s, s != "" }

var rendezVousFields = map[string]listing.Accessor[entity.RendezVous]{
	"nom":            func(r entity.RendezVous) (any, bool) { return r.Client.Nom, true },
	"prenom":         func(r entity.RendezVous) (any, bool) { return optional(r.Client.Prenom) },
	"email":          func(r entity.RendezVous) (any, bool) { return r.Client.Email, true },
	"entreprise":     func(r entity.RendezVous) (any, bool) { return optional(r.Client.Entreprise) },
	"programmeTitre": func(r entity.RendezVous) (any, bool) { return optional(r.ProgrammeTitre) },
	"type":           func(r entity.RendezVous) (any, bool) { return string(r.Type), true },
	"statut":         func(r entity.RendezVous) (any, bool) { return string(r.Status), true },
	"lieu":           func(r entity.RendezVous) (any, bool) { return string(r.Lieu), true },
	"date":           func(r entity.RendezVous) (any, bool) { return r.Date, true },
	"heure":          func(r entity.RendezVous) (any, bool) { return r.Heure, true },
	"duree":          func(r entity.RendezVous) (any, bool) { return r.Duree, true },
	"rappelEnvoye":   func(r entity.RendezVous) (any, bool) { return r.RappelEnvoye, true },
	"createdAt":      func(r entity.RendezVous) (any, bool) { return r.CreatedAt, true },
}

var rendezVousSearchFields = []string{"nom", "prenom", "email", "entreprise", "programmeTitre"}

// AdminHandler serves the back-office table: search, column filters, sort and bulk actions.
type AdminHandler struct {
	ListUC   *usecase.ListRendezVousUseCase
	UpdateUC *usecase.UpdateRendezVousUseCase
}

func NewAdminHandler(list *usecase.ListRendezVousUseCase, update *usecase.UpdateRendezVousUseCase) *AdminHandler {
	return &AdminHandler{ListUC: list, UpdateUC: update}
}

type adminListResponse struct {
	RendezVous []entity.RendezVous    `json:"rendezVous"`
	Total      int                    `json:"total"`
	Sort       string                 `json:"sort,omitempty"`
	Order      listing.SortDirection  `json:"order,omitempty"`
	Stats      entity.RendezVousStats `json:"stats"`
}

type bulkStatusRequest struct {
	IDs    []string                `json:"ids"`
	All    bool                    `json:"all"`
	Statut entity.StatutRendezVous `json:"statut"`
}

type bulkStatusResponse struct {
	Updated []string                  `json:"updated"`
	Failed  []usecase.ValidationError `json:"failed,omitempty"`
}

// ListHandler (GET /admin/rendez-vous?q=&sort=&order=&statut=&type=&lieu=)
func (h *AdminHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	all, err := h.ListUC.Execute(r.Context(), entity.RendezVousFilters{})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	m, err := h.view(all.RendezVous, r.URL.Query())
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	items := m.Filtered()
	field, dir := m.Sort()
	resp := adminListResponse{RendezVous: items, Total: len(items), Stats: all.Stats}
	if field != "" {
		resp.Sort, resp.Order = field, dir
	}
	writeJSON(w, http.StatusOK, resp)
}

// BulkStatusHandler (POST /admin/rendez-vous/statut) changes the status of the
// listed ids, or of the whole filtered view when "all" is set.
func (h *AdminHandler) BulkStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON invalide")
		return
	}
	if !req.Statut.Valid() {
		writeValidationErrors(w, []usecase.ValidationError{{Field: "statut", Message: "statut invalide"}})
		return
	}

	all, err := h.ListUC.Execute(r.Context(), entity.RendezVousFilters{})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	m, err := h.view(all.RendezVous, r.URL.Query())
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}
	if req.All {
		m.SelectAll()
	} else {
		for _, id := range req.IDs {
			m.SelectItem(id)
		}
	}

	resp := bulkStatusResponse{Updated: []string{}}
	statut := req.Statut
	for _, id := range m.Selected() {
		_, err := h.UpdateUC.Execute(r.Context(), usecase.UpdateRendezVousInput{
			ID:    id,
			Patch: entity.RendezVousPatch{Status: &statut},
		})
		middleware.RecordRendezVousMutation("update", err)
		if err != nil {
			log.Printf("⚠️ [ADMIN] statut %s non appliqué à %s: %v", statut, id, err)
			resp.Failed = append(resp.Failed, bulkFailure(id, err))
			continue
		}
		resp.Updated = append(resp.Updated, id)
	}
	if !req.All {
		resp.Failed = append(resp.Failed, unmatchedIDs(req.IDs, m.Selected())...)
	}
	writeJSON(w, http.StatusOK, resp)
}

// unmatchedIDs reports requested ids that are absent from the current view,
// each once, in request order.
func unmatchedIDs(requested, selected []string) []usecase.ValidationError {
	seen := make(map[string]struct{}, len(requested))
	for _, id := range selected {
		seen[id] = struct{}{}
	}
	var out []usecase.ValidationError
	for _, id := range requested {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, bulkFailure(id, usecase.NewNotFoundError(id)))
	}
	return out
}

func bulkFailure(id string, err error) usecase.ValidationError {
	code := usecase.CodeInternal
	var de *usecase.DomainError
	var te *usecase.TechnicalError
	switch {
	case errors.As(err, &de):
		code = de.Code
	case errors.As(err, &te):
		code = te.Code
	}
	return usecase.ValidationError{Field: id, Message: err.Error(), Code: code}
}

func (h *AdminHandler) view(items []entity.RendezVous, q url.Values) (*listing.Manager[entity.RendezVous], error) {
	m, err := listing.New(listing.Config[entity.RendezVous]{
		Fields:       rendezVousFields,
		SearchFields: rendezVousSearchFields,
	}, items)
	if err != nil {
		return nil, err
	}

	m.SetSearch(q.Get("q"))
	for _, field := range []string{"statut", "type", "lieu"} {
		v := q.Get(field)
		if v == "" || v == "all" {
			continue
		}
		if err := m.SetFilter(field, v); err != nil {
			return nil, err
		}
	}
	if field := q.Get("sort"); field != "" {
		if err := m.SetSort(field); err != nil {
			if errors.Is(err, listing.ErrUnknownField) {
				return nil, errors.New("champ de tri inconnu: " + field)
			}
			return nil, err
		}
		m.SetSortDirection(listing.SortDirection(q.Get("order")))
	}
	return m, nil
}
