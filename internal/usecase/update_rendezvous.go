package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/queue"
)

// UpdateRendezVousUseCase applies a shallow merge. Concurrent updates of the
// same appointment are last-write-wins.
type UpdateRendezVousUseCase struct {
	Repo      entity.RendezVousRepository
	Mirror    entity.RendezVousMirror
	Publisher EventPublisher
	Clock     Clock
}

func NewUpdateRendezVousUseCase(
	repo entity.RendezVousRepository,
	mirror entity.RendezVousMirror,
	publisher EventPublisher,
	clock Clock,
) *UpdateRendezVousUseCase {
	if clock == nil {
		clock = systemClock
	}
	return &UpdateRendezVousUseCase{Repo: repo, Mirror: mirror, Publisher: publisher, Clock: clock}
}

func (uc *UpdateRendezVousUseCase) Execute(ctx context.Context, input UpdateRendezVousInput) (rv *entity.RendezVous, err error) {
	ctx, span := startSpan(ctx, "rendezvous.update", attribute.String("rendezvous.id", input.ID))
	defer func() { endWithError(span, err) }()

	current, err := uc.Repo.FindByID(ctx, input.ID)
	if errors.Is(err, entity.ErrRendezVousNotFound) {
		return nil, NewNotFoundError(input.ID)
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeStore, Message: "lecture du rendez-vous impossible", Err: err}
	}

	if errs := ValidateRendezVousPatch(input.Patch); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	previous := *current
	updated := *current
	input.Patch.Apply(&updated)
	updated.UpdatedAt = uc.Clock()

	tx := NewTransaction()
	tx.Step("store.update",
		func(ctx context.Context) error { return notFoundAware(uc.Repo.Update(ctx, &updated), input.ID) },
		func(ctx context.Context) error { return uc.Repo.Update(ctx, &previous) },
	)
	if uc.Mirror != nil {
		tx.Step("mirror.save",
			func(ctx context.Context) error { return mirrorErr(uc.Mirror.Save(ctx, &updated)) },
			nil,
		)
	}
	if err := tx.Execute(ctx); err != nil {
		return nil, technical(err, "mise à jour du rendez-vous impossible")
	}

	publish(ctx, uc.Publisher, queue.EventUpdated, updated)
	return &updated, nil
}

// notFoundAware turns a store miss (deleted concurrently) into NOT_FOUND.
func notFoundAware(err error, id string) error {
	if errors.Is(err, entity.ErrRendezVousNotFound) {
		return NewNotFoundError(id)
	}
	return err
}
