package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"stockflow/internal/common"
	"stockflow/internal/models"
)

const testSecret = "auth-test-secret"

type stubUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubEmployeeRepo struct {
	byUser map[uuid.UUID]*models.Employee
}

func (s *stubEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error { return nil }

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubEmployeeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	if employee, ok := s.byUser[userID]; ok {
		return employee, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubEmployeeRepo) Update(ctx context.Context, employee *models.Employee) error { return nil }

func (s *stubEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubEmployeeRepo) List(ctx context.Context, limit, offset int) ([]*models.Employee, error) {
	return nil, nil
}

type stubCustomerRepo struct{}

func (stubCustomerRepo) Create(ctx context.Context, customer *models.Customer) error { return nil }

func (stubCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return nil, pgx.ErrNoRows
}

func (stubCustomerRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	return nil, pgx.ErrNoRows
}

func (stubCustomerRepo) Update(ctx context.Context, customer *models.Customer) error { return nil }

func (stubCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (stubCustomerRepo) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	return nil, nil
}

// failingEmployeeRepo simulates a database outage on profile lookup.
type failingEmployeeRepo struct {
	stubEmployeeRepo
}

func (failingEmployeeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	return nil, errors.New("connection refused")
}

func signToken(t *testing.T, userID uuid.UUID, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func runAuth(t *testing.T, auth *Authenticator, header string) (*common.Principal, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var principal *common.Principal
	next := func(c echo.Context) error {
		principal, _ = common.GetPrincipal(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}
	err := auth.Middleware()(next)(c)
	return principal, err
}

func TestAuthenticatorRejectsMissingHeader(t *testing.T) {
	auth := NewAuthenticator(testSecret, &stubUserRepo{}, &stubEmployeeRepo{}, stubCustomerRepo{})
	_, err := runAuth(t, auth, "")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestAuthenticatorRejectsExpiredToken(t *testing.T) {
	userID := uuid.New()
	auth := NewAuthenticator(testSecret, &stubUserRepo{users: map[uuid.UUID]*models.User{
		userID: {ID: userID},
	}}, &stubEmployeeRepo{}, stubCustomerRepo{})

	token := signToken(t, userID, -time.Minute)
	_, err := runAuth(t, auth, "Bearer "+token)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestAuthenticatorRejectsUnknownUser(t *testing.T) {
	auth := NewAuthenticator(testSecret, &stubUserRepo{}, &stubEmployeeRepo{}, stubCustomerRepo{})

	token := signToken(t, uuid.New(), time.Hour)
	_, err := runAuth(t, auth, "Bearer "+token)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestAuthenticatorResolvesEmployeePrincipal(t *testing.T) {
	userID := uuid.New()
	employeeID := uuid.New()
	auth := NewAuthenticator(testSecret,
		&stubUserRepo{users: map[uuid.UUID]*models.User{userID: {ID: userID}}},
		&stubEmployeeRepo{byUser: map[uuid.UUID]*models.Employee{
			userID: {ID: employeeID, UserID: userID, Role: models.RoleManager},
		}},
		stubCustomerRepo{},
	)

	token := signToken(t, userID, time.Hour)
	principal, err := runAuth(t, auth, "Bearer "+token)

	assert.NoError(t, err)
	assert.NotNil(t, principal)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, employeeID, *principal.EmployeeID)
	assert.Equal(t, models.RoleManager, *principal.EmployeeRole)
	assert.Nil(t, principal.CustomerID)
}

func TestAuthenticatorFailsOnProfileLookupError(t *testing.T) {
	userID := uuid.New()
	auth := NewAuthenticator(testSecret,
		&stubUserRepo{users: map[uuid.UUID]*models.User{userID: {ID: userID}}},
		&failingEmployeeRepo{}, stubCustomerRepo{},
	)

	token := signToken(t, userID, time.Hour)
	principal, err := runAuth(t, auth, "Bearer "+token)

	// The request must fail rather than proceed with a role-less principal.
	var invErr *common.InventoryError
	assert.ErrorAs(t, err, &invErr)
	assert.Nil(t, principal)
}

func TestAuthenticatorResolvesSuperuser(t *testing.T) {
	userID := uuid.New()
	auth := NewAuthenticator(testSecret,
		&stubUserRepo{users: map[uuid.UUID]*models.User{userID: {ID: userID, IsSuperuser: true}}},
		&stubEmployeeRepo{}, stubCustomerRepo{},
	)

	token := signToken(t, userID, time.Hour)
	principal, err := runAuth(t, auth, "Bearer "+token)

	assert.NoError(t, err)
	assert.True(t, principal.IsSuperuser)
	assert.Nil(t, principal.EmployeeRole)
}
