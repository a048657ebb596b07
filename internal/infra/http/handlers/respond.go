package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/formapro-console/internal/usecase"
)

type errorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Details []usecase.ValidationError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] écriture de la réponse impossible: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeValidationErrors(w http.ResponseWriter, details []usecase.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:   usecase.CodeValidation,
		Message: "données invalides",
		Details: details,
	})
}

// writeUseCaseError maps use case errors to HTTP statuses. Technical details stay in the logs.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case usecase.CodeNotFound:
			writeErrorResponse(w, http.StatusNotFound, de.Code, de.Message)
		case usecase.CodeValidation:
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: de.Code, Message: de.Message, Details: de.Details})
		default:
			writeErrorResponse(w, http.StatusBadRequest, de.Code, de.Message)
		}
		return
	}

	log.Printf("❌ [HTTP] %v", err)
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}
	writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeInternal, "erreur interne")
}
