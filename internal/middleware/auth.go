package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stockflow/internal/common"
	"stockflow/internal/repositories"
)

// Claims carried in access tokens issued by the auth service.
type TokenClaims struct {
	UserID      string `json:"user_id"`
	IsSuperuser bool   `json:"is_superuser"`
	jwt.RegisteredClaims
}

// Authenticator resolves a bearer token into a request principal. Routes
// behind it reject missing or invalid tokens; profile lookups attach the
// caller's employee or customer record when one exists.
type Authenticator struct {
	secret    []byte
	users     repositories.UserRepository
	employees repositories.EmployeeRepository
	customers repositories.CustomerRepository
}

func NewAuthenticator(secret string, users repositories.UserRepository, employees repositories.EmployeeRepository, customers repositories.CustomerRepository) *Authenticator {
	return &Authenticator{
		secret:    []byte(secret),
		users:     users,
		employees: employees,
		customers: customers,
	}
}

func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return common.ErrUnauthenticated
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := &TokenClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return a.secret, nil
			})
			if err != nil || !token.Valid {
				return common.ErrUnauthenticated
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return common.ErrUnauthenticated
			}

			ctx := c.Request().Context()
			user, err := a.users.GetByID(ctx, userID)
			if err != nil {
				if repositories.IsNoRows(err) {
					return common.ErrUnauthenticated
				}
				return common.NewInventoryError("failed to resolve user", err)
			}

			principal := &common.Principal{
				UserID:      user.ID,
				IsSuperuser: user.IsSuperuser,
			}
			// A missing profile is normal; any other lookup failure must not
			// silently strip the caller's role.
			employee, err := a.employees.GetByUserID(ctx, user.ID)
			switch {
			case err == nil:
				principal.EmployeeID = &employee.ID
				principal.EmployeeRole = &employee.Role
			case !repositories.IsNoRows(err):
				return common.NewInventoryError("failed to resolve employee profile", err)
			}
			customer, err := a.customers.GetByUserID(ctx, user.ID)
			switch {
			case err == nil:
				principal.CustomerID = &customer.ID
			case !repositories.IsNoRows(err):
				return common.NewInventoryError("failed to resolve customer profile", err)
			}

			c.SetRequest(c.Request().WithContext(common.WithPrincipal(ctx, principal)))
			return next(c)
		}
	}
}
