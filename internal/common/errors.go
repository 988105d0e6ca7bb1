package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// InventoryError is the fallback wrapper for unexpected failures.
type InventoryError struct {
	Message string
	Err     error
}

func (e *InventoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InventoryError) Unwrap() error { return e.Err }

func NewInventoryError(message string, err error) *InventoryError {
	return &InventoryError{Message: message, Err: err}
}

// ValidationError is a field-scoped input error (HTTP 400).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// BusinessRuleError is a domain rule violation such as an invalid state
// transition or insufficient stock (HTTP 400).
type BusinessRuleError struct {
	Message string
	// Errors carries per-line detail for multi-line failures such as a
	// sales order exceeding available stock.
	Errors []string
}

func (e *BusinessRuleError) Error() string { return e.Message }

func NewBusinessRuleError(message string, details ...string) *BusinessRuleError {
	return &BusinessRuleError{Message: message, Errors: details}
}

// PermissionDeniedError means the caller is authenticated but not allowed
// (HTTP 403).
type PermissionDeniedError struct {
	Message string
}

func (e *PermissionDeniedError) Error() string { return e.Message }

func NewPermissionDeniedError(message string) *PermissionDeniedError {
	if message == "" {
		message = "Permission denied"
	}
	return &PermissionDeniedError{Message: message}
}

// NotFoundError means a referenced entity is missing (HTTP 404).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// Unauthenticated sentinel, distinct from forbidden.
var ErrUnauthenticated = errors.New("authentication required")

// HTTPErrorHandler maps the error taxonomy onto the response shapes the API
// promises: validation errors per field, business/permission errors as a
// single detail message, everything else logged and flattened to a generic
// detail with the status preserved where available.
func HTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			validationErr *ValidationError
			businessErr   *BusinessRuleError
			permissionErr *PermissionDeniedError
			notFoundErr   *NotFoundError
			inventoryErr  *InventoryError
			httpErr       *echo.HTTPError
		)

		switch {
		case errors.Is(err, ErrUnauthenticated):
			_ = c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Authentication required"})
		case errors.As(err, &validationErr):
			_ = c.JSON(http.StatusBadRequest, map[string]any{
				"detail": "Validation failed",
				"errors": map[string]string{validationErr.Field: validationErr.Message},
			})
		case errors.As(err, &businessErr):
			body := map[string]any{"detail": businessErr.Message}
			if len(businessErr.Errors) > 0 {
				body["errors"] = businessErr.Errors
			}
			_ = c.JSON(http.StatusBadRequest, body)
		case errors.As(err, &permissionErr):
			_ = c.JSON(http.StatusForbidden, map[string]string{"detail": permissionErr.Message})
		case errors.As(err, &notFoundErr):
			_ = c.JSON(http.StatusNotFound, map[string]string{"detail": notFoundErr.Error()})
		case errors.As(err, &httpErr):
			detail := fmt.Sprintf("%v", httpErr.Message)
			_ = c.JSON(httpErr.Code, map[string]string{"detail": detail})
		case errors.As(err, &inventoryErr):
			log.Error().Err(inventoryErr.Err).Str("path", c.Path()).Msg(inventoryErr.Message)
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"detail": inventoryErr.Message})
		default:
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
		}
	}
}
