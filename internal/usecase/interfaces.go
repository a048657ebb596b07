package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/queue"
)

// ProgrammeCatalog resolves programme titles from the CMS.
type ProgrammeCatalog interface {
	GetProgramme(ctx context.Context, id string) (*entity.Programme, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event queue.RendezVousEvent) error
}

type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

type actorKey struct{}

// WithActor stores the authenticated back-office user on ctx.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
