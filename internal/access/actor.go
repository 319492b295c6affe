package access

import "context"

// Actor is the caller of a service operation. UserID is also the id of the
// caller's profile.
type Actor struct {
	UserID    string
	CompanyID string
	Role      Role
}

func (a Actor) IsZero() bool {
	return a.UserID == ""
}

func (a Actor) SameCompany(companyID string) bool {
	return a.CompanyID != "" && a.CompanyID == companyID
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}
