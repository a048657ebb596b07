package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xavierca1/formapro-console/internal/entity"
)

type ListRendezVousUseCase struct {
	Repo  entity.RendezVousRepository
	Clock Clock
}

func NewListRendezVousUseCase(repo entity.RendezVousRepository, clock Clock) *ListRendezVousUseCase {
	if clock == nil {
		clock = systemClock
	}
	return &ListRendezVousUseCase{Repo: repo, Clock: clock}
}

// Execute returns the filtered appointments. Stats always cover the whole collection.
func (uc *ListRendezVousUseCase) Execute(ctx context.Context, filters entity.RendezVousFilters) (out *ListRendezVousOutput, err error) {
	ctx, span := startSpan(ctx, "rendezvous.list",
		attribute.String("filter.statut", filters.Statut),
		attribute.String("filter.type", filters.Type),
	)
	defer func() { endWithError(span, err) }()

	all, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeStore, Message: "lecture des rendez-vous impossible", Err: err}
	}

	filtered := FilterRendezVous(all, filters)
	span.SetAttributes(attribute.Int("rendezvous.total", len(filtered)))

	return &ListRendezVousOutput{
		RendezVous: filtered,
		Total:      len(filtered),
		Stats:      ComputeStats(all, uc.Clock()),
	}, nil
}
