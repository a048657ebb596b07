package store

import (
	"time"

	"github.com/xavierca1/formapro-console/internal/entity"
)

const (
	titreExcel   = "Excel : du niveau débutant au perfectionnement"
	titreAnglais = "Anglais professionnel"
	adresseLyon  = "12 rue de la République, 69002 Lyon"
)

// DemoSeed returns the demo appointments, dated relative to now so the
// "today / this week" views are never empty.
func DemoSeed(now time.Time) []entity.RendezVous {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(entity.DateLayout)
	}
	created := now.AddDate(0, 0, -7)

	seed := []entity.RendezVous{
		{
			ID:             "rdv-demo-001",
			ProgrammeID:    "prog-excel",
			ProgrammeTitre: titreExcel,
			Client:         entity.Client{Nom: "Martin", Prenom: "Sophie", Email: "sophie.martin@exemple.fr", Telephone: "06 12 34 56 78", Entreprise: "Boulangerie Martin"},
			Type:           entity.TypePositionnement,
			Status:         entity.StatutConfirme,
			Date:           day(0),
			Heure:          "10:00",
			Duree:          45,
			Lieu:           entity.LieuVisio,
			LienVisio:      "https://meet.formapro.fr/positionnement-001",
			Notes:          "Souhaite financer via le CPF",
		},
		{
			ID:             "rdv-demo-002",
			ProgrammeID:    "prog-anglais",
			ProgrammeTitre: titreAnglais,
			Client:         entity.Client{Nom: "Bernard", Prenom: "Lucas", Email: "lucas.bernard@exemple.fr", Telephone: "07 98 76 54 32"},
			Type:           entity.TypeInformation,
			Status:         entity.StatutEnAttente,
			Date:           day(1),
			Heure:          "14:30",
			Duree:          30,
			Lieu:           entity.LieuTelephone,
		},
		{
			ID:             "rdv-demo-003",
			ProgrammeID:    "prog-management",
			ProgrammeTitre: "Management d'équipe",
			Client:         entity.Client{Nom: "Petit", Prenom: "Camille", Email: "c.petit@exemple.fr", Entreprise: "Transports Petit"},
			Type:           entity.TypeInscription,
			Status:         entity.StatutConfirme,
			Date:           day(3),
			Heure:          "09:00",
			Duree:          60,
			Lieu:           entity.LieuPresentiel,
			Adresse:        adresseLyon,
		},
		{
			ID:             "rdv-demo-004",
			ProgrammeID:    "prog-excel",
			ProgrammeTitre: titreExcel,
			Client:         entity.Client{Nom: "Roux", Prenom: "Julien", Email: "julien.roux@exemple.fr"},
			Type:           entity.TypePositionnement,
			Status:         entity.StatutTermine,
			Date:           day(-2),
			Heure:          "11:00",
			Duree:          45,
			Lieu:           entity.LieuVisio,
			LienVisio:      "https://meet.formapro.fr/positionnement-004",
			RappelEnvoye:   true,
		},
		{
			ID:             "rdv-demo-005",
			ProgrammeID:    "prog-anglais",
			ProgrammeTitre: titreAnglais,
			Client:         entity.Client{Nom: "Moreau", Prenom: "Inès", Email: "ines.moreau@exemple.fr"},
			Type:           entity.TypeSuivi,
			Status:         entity.StatutAnnule,
			Date:           day(-10),
			Heure:          "16:00",
			Duree:          30,
			Lieu:           entity.LieuTelephone,
			Notes:          "Annulé par la stagiaire",
		},
		{
			ID:      "rdv-demo-006",
			Client:  entity.Client{Nom: "Fournier", Prenom: "Hugo", Email: "hugo.fournier@exemple.fr"},
			Type:    entity.TypeInformation,
			Status:  entity.StatutReporte,
			Date:    day(20),
			Heure:   "15:00",
			Duree:   30,
			Lieu:    entity.LieuPresentiel,
			Adresse: adresseLyon,
		},
	}
	for i := range seed {
		seed[i].CreatedAt = created
		seed[i].UpdatedAt = created
		seed[i].CreatedBy = "demo"
	}
	return seed
}
