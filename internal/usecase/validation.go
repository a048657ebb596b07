package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/xavierca1/formapro-console/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateCreateRendezVousInput returns every violation, never only the first one.
func ValidateCreateRendezVousInput(input CreateRendezVousInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateClient(input.Client)...)

	if input.Type == "" {
		errors = append(errors, ValidationError{Field: "type", Message: "est requis"})
	} else if !input.Type.Valid() {
		errors = append(errors, ValidationError{Field: "type", Message: "doit être positionnement, information, inscription ou suivi"})
	}

	if strings.TrimSpace(input.Date) == "" {
		errors = append(errors, ValidationError{Field: "date", Message: "est requise"})
	} else if !isValidDate(input.Date) {
		errors = append(errors, ValidationError{Field: "date", Message: "doit être au format AAAA-MM-JJ"})
	}

	if strings.TrimSpace(input.Heure) == "" {
		errors = append(errors, ValidationError{Field: "heure", Message: "est requise"})
	} else if !isValidHeure(input.Heure) {
		errors = append(errors, ValidationError{Field: "heure", Message: "doit être au format HH:MM"})
	}

	if input.Duree < 0 {
		errors = append(errors, ValidationError{Field: "duree", Message: "doit être positive"})
	}

	if input.Lieu != "" && !input.Lieu.Valid() {
		errors = append(errors, ValidationError{Field: "lieu", Message: "doit être presentiel, visio ou telephone"})
	}

	return errors
}

// ValidateRendezVousPatch only checks the fields present in the patch.
func ValidateRendezVousPatch(p entity.RendezVousPatch) []ValidationError {
	var errors []ValidationError

	if p.Client != nil {
		errors = append(errors, validateClient(*p.Client)...)
	}
	if p.Type != nil && !p.Type.Valid() {
		errors = append(errors, ValidationError{Field: "type", Message: "doit être positionnement, information, inscription ou suivi"})
	}
	if p.Status != nil && !p.Status.Valid() {
		errors = append(errors, ValidationError{Field: "statut", Message: "doit être enAttente, confirme, annule, termine ou reporte"})
	}
	if p.Lieu != nil && !p.Lieu.Valid() {
		errors = append(errors, ValidationError{Field: "lieu", Message: "doit être presentiel, visio ou telephone"})
	}
	if p.Date != nil && !isValidDate(*p.Date) {
		errors = append(errors, ValidationError{Field: "date", Message: "doit être au format AAAA-MM-JJ"})
	}
	if p.Heure != nil && !isValidHeure(*p.Heure) {
		errors = append(errors, ValidationError{Field: "heure", Message: "doit être au format HH:MM"})
	}
	if p.Duree != nil && *p.Duree <= 0 {
		errors = append(errors, ValidationError{Field: "duree", Message: "doit être positive"})
	}

	return errors
}

func validateClient(c entity.Client) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Nom) == "" {
		errors = append(errors, ValidationError{Field: "client.nom", Message: "est requis"})
	}
	if strings.TrimSpace(c.Email) == "" {
		errors = append(errors, ValidationError{Field: "client.email", Message: "est requis"})
	} else if _, err := mail.ParseAddress(c.Email); err != nil {
		errors = append(errors, ValidationError{Field: "client.email", Message: "est invalide"})
	}

	return errors
}

func isValidDate(s string) bool {
	_, err := time.Parse(entity.DateLayout, s)
	return err == nil
}

func isValidHeure(s string) bool {
	_, err := time.Parse(entity.HeureLayout, s)
	return err == nil
}
