package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"stockflow/internal/common"
	"stockflow/internal/models"
)

func invokeGate(t *testing.T, principal *common.Principal, roles ...models.Role) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if principal != nil {
		req = req.WithContext(common.WithPrincipal(req.Context(), principal))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return RequireRoles(roles...)(next)(c)
}

func employeePrincipal(role models.Role) *common.Principal {
	employeeID := uuid.New()
	return &common.Principal{
		UserID:       uuid.New(),
		EmployeeID:   &employeeID,
		EmployeeRole: &role,
	}
}

func TestRequireRolesRejectsUnauthenticated(t *testing.T) {
	err := invokeGate(t, nil, models.RoleAdmin)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestRequireRolesAllowsSuperuserRegardlessOfRole(t *testing.T) {
	principal := &common.Principal{UserID: uuid.New(), IsSuperuser: true}
	err := invokeGate(t, principal, models.RoleAdmin)
	assert.NoError(t, err)
}

func TestRequireRolesEmptySetAllowsAnyAuthenticated(t *testing.T) {
	principal := &common.Principal{UserID: uuid.New()}
	err := invokeGate(t, principal)
	assert.NoError(t, err)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	err := invokeGate(t, employeePrincipal(models.RoleManager), models.RoleAdmin, models.RoleManager)
	assert.NoError(t, err)
}

func TestRequireRolesForbidsNonMatchingRole(t *testing.T) {
	err := invokeGate(t, employeePrincipal(models.RoleEmployee), models.RoleAdmin, models.RoleManager)

	var permissionErr *common.PermissionDeniedError
	assert.ErrorAs(t, err, &permissionErr)
}

func TestRequireRolesForbidsCustomerOnStaffRoutes(t *testing.T) {
	customerID := uuid.New()
	principal := &common.Principal{UserID: uuid.New(), CustomerID: &customerID}
	err := invokeGate(t, principal, models.RoleAdmin, models.RoleManager, models.RoleEmployee)

	var permissionErr *common.PermissionDeniedError
	assert.ErrorAs(t, err, &permissionErr)
}
