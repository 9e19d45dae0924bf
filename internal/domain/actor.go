package domain

import "context"

// Actor is the identity performing an operation. It is supplied by the identity
// provider and trusted as-is.
type Actor struct {
	ID         string
	Username   string
	IsStaff    bool
	IsApproved bool
}

// CanOperate reports whether the actor may create or change entries.
func (a *Actor) CanOperate() bool {
	return a != nil && a.IsApproved
}

// CanAccess reports whether the actor may read or calculate interest on e.
func (a *Actor) CanAccess(e *Entry) bool {
	if a == nil || e == nil {
		return false
	}
	return a.IsStaff || e.IsOwnedBy(a.ID)
}

type actorContextKey struct{}

// ContextWithActor returns a copy of ctx carrying actor.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor stored by ContextWithActor.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(*Actor)
	return actor, ok && actor != nil
}
