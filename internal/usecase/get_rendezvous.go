package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xavierca1/formapro-console/internal/entity"
)

type GetRendezVousUseCase struct {
	Repo entity.RendezVousRepository
}

func NewGetRendezVousUseCase(repo entity.RendezVousRepository) *GetRendezVousUseCase {
	return &GetRendezVousUseCase{Repo: repo}
}

// Execute reports a missing appointment through found=false, not as an error.
func (uc *GetRendezVousUseCase) Execute(ctx context.Context, id string) (rv *entity.RendezVous, found bool, err error) {
	ctx, span := startSpan(ctx, "rendezvous.get", attribute.String("rendezvous.id", id))
	defer func() { endWithError(span, err) }()

	rv, err = uc.Repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrRendezVousNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &TechnicalError{Code: CodeStore, Message: "lecture du rendez-vous impossible", Err: err}
	}
	return rv, true, nil
}
