package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func handle(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHTTPErrorHandlerUnauthenticated(t *testing.T) {
	code, body := handle(t, ErrUnauthenticated)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authentication required", body["detail"])
}

func TestHTTPErrorHandlerValidation(t *testing.T) {
	code, body := handle(t, NewValidationError("quantity", "Must not be negative"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", body["detail"])
	fieldErrors := body["errors"].(map[string]any)
	assert.Equal(t, "Must not be negative", fieldErrors["quantity"])
}

func TestHTTPErrorHandlerBusinessRuleWithDetails(t *testing.T) {
	code, body := handle(t, NewBusinessRuleError("Stock not available",
		"Stock not available for product Widget. Requested: 10, Available: 3"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Stock not available", body["detail"])
	details := body["errors"].([]any)
	assert.Len(t, details, 1)
}

func TestHTTPErrorHandlerPermissionDenied(t *testing.T) {
	code, body := handle(t, NewPermissionDeniedError(""))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Permission denied", body["detail"])
}

func TestHTTPErrorHandlerNotFound(t *testing.T) {
	code, body := handle(t, NewNotFoundError("Product"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", body["detail"])
}

func TestHTTPErrorHandlerWrappedErrorsUnwrap(t *testing.T) {
	wrapped := NewInventoryError("lookup failed", NewNotFoundError("Supplier"))
	code, body := handle(t, wrapped)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Supplier not found", body["detail"])
}

func TestHTTPErrorHandlerUnknownError(t *testing.T) {
	code, body := handle(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["detail"])
}
