package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/queue"
)

type CreateRendezVousUseCase struct {
	Repo      entity.RendezVousRepository
	Mirror    entity.RendezVousMirror // optional
	Catalog   ProgrammeCatalog        // optional
	Publisher EventPublisher          // optional
	Clock     Clock
}

func NewCreateRendezVousUseCase(
	repo entity.RendezVousRepository,
	mirror entity.RendezVousMirror,
	catalog ProgrammeCatalog,
	publisher EventPublisher,
	clock Clock,
) *CreateRendezVousUseCase {
	if clock == nil {
		clock = systemClock
	}
	return &CreateRendezVousUseCase{
		Repo:      repo,
		Mirror:    mirror,
		Catalog:   catalog,
		Publisher: publisher,
		Clock:     clock,
	}
}

func (uc *CreateRendezVousUseCase) Execute(ctx context.Context, input CreateRendezVousInput) (rv *entity.RendezVous, err error) {
	ctx, span := startSpan(ctx, "rendezvous.create", attribute.String("rendezvous.type", string(input.Type)))
	defer func() { endWithError(span, err) }()

	if errs := ValidateCreateRendezVousInput(input); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, &TechnicalError{Code: CodeInternal, Message: "génération de l'identifiant impossible", Err: err}
	}

	now := uc.Clock()
	rv = &entity.RendezVous{
		ID:             id.String(),
		ProgrammeID:    strings.TrimSpace(input.ProgrammeID),
		ProgrammeTitre: strings.TrimSpace(input.ProgrammeTitre),
		Client:         input.Client,
		Type:           input.Type,
		Status:         entity.StatutEnAttente,
		Date:           input.Date,
		Heure:          input.Heure,
		Duree:          input.Duree,
		Lieu:           input.Lieu,
		Adresse:        input.Adresse,
		LienVisio:      input.LienVisio,
		Notes:          input.Notes,
		RappelEnvoye:   false,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      ActorFromContext(ctx),
	}
	if rv.Duree == 0 {
		rv.Duree = entity.DureeParDefaut
	}
	if rv.Lieu == "" {
		rv.Lieu = entity.LieuPresentiel
	}
	uc.resolveProgrammeTitre(ctx, rv)

	tx := NewTransaction()
	tx.Step("store.create",
		func(ctx context.Context) error { return uc.Repo.Create(ctx, rv) },
		func(ctx context.Context) error { return uc.Repo.Delete(ctx, rv.ID) },
	)
	if uc.Mirror != nil {
		tx.Step("mirror.save",
			func(ctx context.Context) error { return mirrorErr(uc.Mirror.Save(ctx, rv)) },
			nil,
		)
	}
	if err := tx.Execute(ctx); err != nil {
		return nil, technical(err, "création du rendez-vous impossible")
	}

	span.SetAttributes(attribute.String("rendezvous.id", rv.ID))
	publish(ctx, uc.Publisher, queue.EventCreated, *rv)

	created := *rv
	return &created, nil
}

// resolveProgrammeTitre copies the programme title from the catalogue when the
// caller only sent an id. Catalogue failures are logged and ignored.
func (uc *CreateRendezVousUseCase) resolveProgrammeTitre(ctx context.Context, rv *entity.RendezVous) {
	if uc.Catalog == nil || rv.ProgrammeID == "" || rv.ProgrammeTitre != "" {
		return
	}
	p, err := uc.Catalog.GetProgramme(ctx, rv.ProgrammeID)
	if err != nil {
		log.Printf("⚠️ [RDV] Programme %s introuvable dans le CMS: %v", rv.ProgrammeID, err)
		return
	}
	rv.ProgrammeTitre = p.Titre
}

// publish is best effort: the appointment is already stored.
func publish(ctx context.Context, p EventPublisher, kind string, rv entity.RendezVous) {
	if p == nil {
		return
	}
	event := queue.RendezVousEvent{
		Type:       kind,
		RendezVous: rv,
		Actor:      ActorFromContext(ctx),
	}
	if err := p.PublishEvent(ctx, event); err != nil {
		log.Printf("⚠️ [RDV] %s enregistré mais événement %s non publié: %v", rv.ID, kind, err)
	}
}

type mirrorFailure struct{ err error }

func (m mirrorFailure) Error() string { return m.err.Error() }
func (m mirrorFailure) Unwrap() error { return m.err }

func mirrorErr(err error) error {
	if err == nil {
		return nil
	}
	return mirrorFailure{err}
}

// technical maps a failed transaction to STORE_ERROR or MIRROR_ERROR.
func technical(err error, msg string) error {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	code := CodeStore
	var mf mirrorFailure
	if errors.As(err, &mf) {
		code = CodeMirror
	}
	return &TechnicalError{Code: code, Message: msg, Err: err}
}
