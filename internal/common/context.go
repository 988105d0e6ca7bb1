package common

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller, resolved once per request by the
// auth middleware. Exactly one of EmployeeRole/CustomerID is normally set;
// superusers may have neither.
type Principal struct {
	UserID       uuid.UUID
	IsSuperuser  bool
	EmployeeID   *uuid.UUID
	EmployeeRole *models.Role
	CustomerID   *uuid.UUID
}

// HasRole reports whether the principal's employee role is in the given set.
func (p *Principal) HasRole(roles ...models.Role) bool {
	if p.EmployeeRole == nil {
		return false
	}
	for _, r := range roles {
		if *p.EmployeeRole == r {
			return true
		}
	}
	return false
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func GetPrincipal(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}
