package middleware

import (
	"github.com/labstack/echo/v4"

	"stockflow/internal/common"
	"stockflow/internal/models"
)

// RequireRoles gates a route on the caller's employee role. Superusers pass
// unconditionally. An empty role set means any authenticated caller.
// Unauthenticated requests get 401; authenticated callers outside the set
// get 403.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := common.GetPrincipal(c.Request().Context())
			if !ok {
				return common.ErrUnauthenticated
			}
			if principal.IsSuperuser {
				return next(c)
			}
			if len(roles) == 0 {
				return next(c)
			}
			if principal.HasRole(roles...) {
				return next(c)
			}
			return common.NewPermissionDeniedError("You do not have permission to perform this action")
		}
	}
}
