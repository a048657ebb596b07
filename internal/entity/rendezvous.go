package entity

import (
	"context"
	"errors"
	"time"
)

// IMPORTANT: ne pas importer usecase ou infra ici.

type TypeRendezVous string

const (
	TypePositionnement TypeRendezVous = "positionnement"
	TypeInformation    TypeRendezVous = "information"
	TypeInscription    TypeRendezVous = "inscription"
	TypeSuivi          TypeRendezVous = "suivi"
)

type StatutRendezVous string

const (
	StatutEnAttente StatutRendezVous = "enAttente"
	StatutConfirme  StatutRendezVous = "confirme"
	StatutAnnule    StatutRendezVous = "annule"
	StatutTermine   StatutRendezVous = "termine"
	StatutReporte   StatutRendezVous = "reporte"
)

// AllStatuts lists every status, in display order.
var AllStatuts = []StatutRendezVous{StatutEnAttente, StatutConfirme, StatutAnnule, StatutTermine, StatutReporte}

type LieuRendezVous string

const (
	LieuPresentiel LieuRendezVous = "presentiel"
	LieuVisio      LieuRendezVous = "visio"
	LieuTelephone  LieuRendezVous = "telephone"
)

const (
	DateLayout     = "2006-01-02"
	HeureLayout    = "15:04"
	DureeParDefaut = 30
)

var ErrRendezVousNotFound = errors.New("rendez-vous introuvable")

func (t TypeRendezVous) Valid() bool {
	switch t {
	case TypePositionnement, TypeInformation, TypeInscription, TypeSuivi:
		return true
	}
	return false
}

func (s StatutRendezVous) Valid() bool {
	switch s {
	case StatutEnAttente, StatutConfirme, StatutAnnule, StatutTermine, StatutReporte:
		return true
	}
	return false
}

func (l LieuRendezVous) Valid() bool {
	switch l {
	case LieuPresentiel, LieuVisio, LieuTelephone:
		return true
	}
	return false
}

// Value Object: Client (owned by the appointment, no lifecycle of its own)
type Client struct {
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone,omitempty"`
	Entreprise string `json:"entreprise,omitempty"`
}

// FullName returns "Prenom Nom".
func (c Client) FullName() string {
	if c.Prenom == "" {
		return c.Nom
	}
	return c.Prenom + " " + c.Nom
}

type RendezVous struct {
	ID             string `json:"id"`
	ProgrammeID    string `json:"programmeId,omitempty"`
	ProgrammeTitre string `json:"programmeTitre,omitempty"`

	Client Client `json:"client"`

	Type   TypeRendezVous   `json:"type"`
	Status StatutRendezVous `json:"statut"`

	Date  string `json:"date"`  // YYYY-MM-DD
	Heure string `json:"heure"` // HH:MM
	Duree int    `json:"duree"` // minutes

	Lieu      LieuRendezVous `json:"lieu"`
	Adresse   string         `json:"adresse,omitempty"`
	LienVisio string         `json:"lienVisio,omitempty"`

	Notes        string `json:"notes,omitempty"`
	RappelEnvoye bool   `json:"rappelEnvoye"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// Identity satisfies listing.Identifiable.
func (r RendezVous) Identity() string {
	return r.ID
}

// Day parses Date in the given location. ok is false for malformed dates.
func (r RendezVous) Day(loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, r.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// CanGenerateProgramme is true once a positioning interview is completed:
// only then can a custom formation programme be produced from it.
func (r RendezVous) CanGenerateProgramme() bool {
	return r.Type == TypePositionnement && r.Status == StatutTermine
}

// RendezVousPatch is a partial update. nil fields are left untouched.
// There is no ID field: the identity never changes after creation.
type RendezVousPatch struct {
	ProgrammeID    *string           `json:"programmeId,omitempty"`
	ProgrammeTitre *string           `json:"programmeTitre,omitempty"`
	Client         *Client           `json:"client,omitempty"`
	Type           *TypeRendezVous   `json:"type,omitempty"`
	Status         *StatutRendezVous `json:"statut,omitempty"`
	Date           *string           `json:"date,omitempty"`
	Heure          *string           `json:"heure,omitempty"`
	Duree          *int              `json:"duree,omitempty"`
	Lieu           *LieuRendezVous   `json:"lieu,omitempty"`
	Adresse        *string           `json:"adresse,omitempty"`
	LienVisio      *string           `json:"lienVisio,omitempty"`
	Notes          *string           `json:"notes,omitempty"`
	RappelEnvoye   *bool             `json:"rappelEnvoye,omitempty"`
}

// Apply merges the patch into r (shallow: Client is replaced as a whole).
func (p RendezVousPatch) Apply(r *RendezVous) {
	if p.ProgrammeID != nil {
		r.ProgrammeID = *p.ProgrammeID
	}
	if p.ProgrammeTitre != nil {
		r.ProgrammeTitre = *p.ProgrammeTitre
	}
	if p.Client != nil {
		r.Client = *p.Client
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Heure != nil {
		r.Heure = *p.Heure
	}
	if p.Duree != nil {
		r.Duree = *p.Duree
	}
	if p.Lieu != nil {
		r.Lieu = *p.Lieu
	}
	if p.Adresse != nil {
		r.Adresse = *p.Adresse
	}
	if p.LienVisio != nil {
		r.LienVisio = *p.LienVisio
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.RappelEnvoye != nil {
		r.RappelEnvoye = *p.RappelEnvoye
	}
}

// RendezVousRepository is the collection owner. Implementations must return
// ErrRendezVousNotFound for unknown ids on FindByID, Update and Delete.
type RendezVousRepository interface {
	List(ctx context.Context) ([]RendezVous, error)
	FindByID(ctx context.Context, id string) (*RendezVous, error)
	Create(ctx context.Context, rv *RendezVous) error
	Update(ctx context.Context, rv *RendezVous) error
	Delete(ctx context.Context, id string) error
}

// RendezVousMirror persists custom (non-seed) appointments outside the process.
type RendezVousMirror interface {
	Save(ctx context.Context, rv *RendezVous) error
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]RendezVous, error)
}
