// Package access scopes every read and write to the rows an actor is
// entitled to see.
package access

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cardly/internal/apperr"
)

type Role string

const (
	RoleFranchisor    Role = "FRANCHISOR"
	RoleFranchisee    Role = "FRANCHISEE"
	RoleEstablishment Role = "ESTABLISHMENT"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID          uuid.UUID
	Role            Role
	FranchisorID    uuid.UUID
	FranchiseeID    uuid.UUID
	EstablishmentID uuid.UUID
}

// Validate checks that the actor carries the ids its role is scoped by.
func (a Actor) Validate() error {
	switch a.Role {
	case RoleFranchisor:
		if a.FranchisorID == uuid.Nil {
			return apperr.Forbidden("franchisor actor without franchisor id")
		}

		return nil
	case RoleFranchisee:
		if a.FranchiseeID == uuid.Nil {
			return apperr.Forbidden("franchisee actor without franchisee id")
		}

		return nil
	case RoleEstablishment:
		if a.EstablishmentID == uuid.Nil || a.FranchiseeID == uuid.Nil {
			return apperr.Forbidden("establishment actor without establishment or franchisee id")
		}

		return nil
	}

	return apperr.Forbidden("unknown role %q", a.Role)
}

// Scope derives the row predicate for the actor.
func (a Actor) Scope() Scope {
	switch a.Role {
	case RoleFranchisor:
		return Unrestricted()
	case RoleFranchisee:
		return Franchisee(a.FranchiseeID)
	case RoleEstablishment:
		return Establishment(a.EstablishmentID)
	}

	return Nothing()
}

// Require fails with Forbidden unless the actor holds one of roles.
func (a Actor) Require(action string, roles ...Role) error {
	if slices.Contains(roles, a.Role) {
		return nil
	}

	return apperr.Forbidden("%s is not allowed to %s", a.Role, action)
}

// Authorize fails with Forbidden when o is outside the actor's scope.
func (a Actor) Authorize(entity string, o Owner) error {
	if a.Scope().Permits(o) {
		return nil
	}

	return apperr.Forbidden("%s is outside the caller's scope", entity)
}

type contextKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(contextKey{}).(Actor)
	return a, ok
}
