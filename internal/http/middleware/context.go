package middlewarex

import (
	"context"

	"backoffice/internal/auth"
)

type ctxKey string

const (
	ctxActor ctxKey = "actor"
)

func WithActor(ctx context.Context, a auth.Actor) context.Context {
	return context.WithValue(ctx, ctxActor, a)
}

func ActorFrom(ctx context.Context) (auth.Actor, bool) {
	a, ok := ctx.Value(ctxActor).(auth.Actor)
	return a, ok
}
