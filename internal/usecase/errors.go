package usecase

import (
	"errors"
	"fmt"

	"github.com/xavierca1/formapro-console/internal/entity"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStore      = "STORE_ERROR"
	CodeMirror     = "MIRROR_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// DomainError is a business rule failure the caller can act on.
type DomainError struct {
	Code    string
	Message string
	Details []ValidationError
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

func NewValidationError(details []ValidationError) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: "données invalides",
		Details: details,
	}
}

func NewNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("rendez-vous %s introuvable", id),
		Err:     entity.ErrRendezVousNotFound,
	}
}

// TechnicalError wraps an infrastructure failure (store, mirror, broker).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
