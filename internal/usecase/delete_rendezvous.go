package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/queue"
)

// positionalRepository is implemented by stores whose order is visible to
// callers; a compensated delete puts the record back where it was.
type positionalRepository interface {
	Position(id string) int
	InsertAt(ctx context.Context, index int, rv *entity.RendezVous) error
}

type DeleteRendezVousUseCase struct {
	Repo      entity.RendezVousRepository
	Mirror    entity.RendezVousMirror
	Publisher EventPublisher
}

func NewDeleteRendezVousUseCase(repo entity.RendezVousRepository, mirror entity.RendezVousMirror, publisher EventPublisher) *DeleteRendezVousUseCase {
	return &DeleteRendezVousUseCase{Repo: repo, Mirror: mirror, Publisher: publisher}
}

func (uc *DeleteRendezVousUseCase) Execute(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "rendezvous.delete", attribute.String("rendezvous.id", id))
	defer func() { endWithError(span, err) }()

	current, err := uc.Repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrRendezVousNotFound) {
		return NewNotFoundError(id)
	}
	if err != nil {
		return &TechnicalError{Code: CodeStore, Message: "lecture du rendez-vous impossible", Err: err}
	}
	removed := *current

	tx := NewTransaction()
	pos := -1
	tx.Step("store.delete",
		func(ctx context.Context) error {
			if p, ok := uc.Repo.(positionalRepository); ok {
				pos = p.Position(id)
			}
			return notFoundAware(uc.Repo.Delete(ctx, id), id)
		},
		func(ctx context.Context) error {
			if p, ok := uc.Repo.(positionalRepository); ok && pos >= 0 {
				return p.InsertAt(ctx, pos, &removed)
			}
			return uc.Repo.Create(ctx, &removed)
		},
	)
	if uc.Mirror != nil {
		tx.Step("mirror.delete",
			func(ctx context.Context) error { return mirrorErr(uc.Mirror.Delete(ctx, id)) },
			nil,
		)
	}
	if err := tx.Execute(ctx); err != nil {
		return technical(err, "suppression du rendez-vous impossible")
	}

	publish(ctx, uc.Publisher, queue.EventDeleted, removed)
	return nil
}
