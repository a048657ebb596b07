package usecase

import "github.com/xavierca1/formapro-console/internal/entity"

type CreateRendezVousInput struct {
	ProgrammeID    string                `json:"programmeId"`
	ProgrammeTitre string                `json:"programmeTitre"`
	Client         entity.Client         `json:"client"`
	Type           entity.TypeRendezVous `json:"type"`
	Date           string                `json:"date"`
	Heure          string                `json:"heure"`
	Duree          int                   `json:"duree"` // 0 = entity.DureeParDefaut
	Lieu           entity.LieuRendezVous `json:"lieu"`
	Adresse        string                `json:"adresse"`
	LienVisio      string                `json:"lienVisio"`
	Notes          string                `json:"notes"`
}

type UpdateRendezVousInput struct {
	ID    string
	Patch entity.RendezVousPatch
}

type ListRendezVousOutput struct {
	RendezVous []entity.RendezVous    `json:"rendezVous"`
	Total      int                    `json:"total"`
	Stats      entity.RendezVousStats `json:"stats"`
}
