package handlers

import (
	"encoding/json"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/state/form"
	"github.com/xavierca1/formapro-console/internal/usecase"
)

var bookingValidators = map[string]form.Validator{
	"type": form.All(
		form.Required("Le type de rendez-vous est requis"),
		form.OneOf("Type de rendez-vous invalide",
			string(entity.TypePositionnement), string(entity.TypeInformation),
			string(entity.TypeInscription), string(entity.TypeSuivi)),
	),
	"date":  form.Required("La date est requise"),
	"heure": form.Required("L'heure est requise"),
	"duree": form.MinInt(0, "La durée doit être un entier positif"),
	"lieu": form.OneOf("Lieu invalide",
		string(entity.LieuPresentiel), string(entity.LieuVisio), string(entity.LieuTelephone)),
}

var clientValidators = map[string]form.Validator{
	"nom":   form.Required("Le nom est requis"),
	"email": form.All(form.Required("L'email est requis"), form.Email("Email invalide")),
}

// validateBooking runs the booking form rules on the raw payload, client
// fields included, and returns every failing field.
func validateBooking(values form.Values) []usecase.ValidationError {
	f := form.New(values, bookingValidators)
	f.ValidateForm()

	var details []usecase.ValidationError
	for _, field := range f.ErrorFields() {
		details = append(details, usecase.ValidationError{Field: field, Message: f.Error(field)})
	}

	client, _ := values["client"].(map[string]any)
	cf := form.New(client, clientValidators)
	cf.ValidateForm()
	for _, field := range cf.ErrorFields() {
		details = append(details, usecase.ValidationError{Field: "client." + field, Message: cf.Error(field)})
	}
	return details
}

func bookingInput(values form.Values) (usecase.CreateRendezVousInput, error) {
	var input usecase.CreateRendezVousInput
	raw, err := json.Marshal(values)
	if err != nil {
		return input, err
	}
	err = json.Unmarshal(raw, &input)
	return input, err
}
