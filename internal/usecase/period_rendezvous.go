package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xavierca1/formapro-console/internal/entity"
)

// PeriodRendezVousUseCase answers the "today / this week / this month" views.
type PeriodRendezVousUseCase struct {
	Repo  entity.RendezVousRepository
	Clock Clock
}

func NewPeriodRendezVousUseCase(repo entity.RendezVousRepository, clock Clock) *PeriodRendezVousUseCase {
	if clock == nil {
		clock = systemClock
	}
	return &PeriodRendezVousUseCase{Repo: repo, Clock: clock}
}

func (uc *PeriodRendezVousUseCase) Jour(ctx context.Context) ([]entity.RendezVous, error) {
	return uc.execute(ctx, "jour", dayPeriod)
}

// Semaine uses Sunday-to-Saturday weeks.
func (uc *PeriodRendezVousUseCase) Semaine(ctx context.Context) ([]entity.RendezVous, error) {
	return uc.execute(ctx, "semaine", weekPeriod)
}

func (uc *PeriodRendezVousUseCase) Mois(ctx context.Context) ([]entity.RendezVous, error) {
	return uc.execute(ctx, "mois", monthPeriod)
}

func (uc *PeriodRendezVousUseCase) execute(ctx context.Context, name string, bounds func(now time.Time) period) (out []entity.RendezVous, err error) {
	ctx, span := startSpan(ctx, "rendezvous.period", attribute.String("period", name))
	defer func() { endWithError(span, err) }()

	all, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeStore, Message: "lecture des rendez-vous impossible", Err: err}
	}
	now := uc.Clock()
	return inPeriod(all, bounds(now), now.Location()), nil
}
