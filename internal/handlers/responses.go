package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors (4xx responses)
//    Use cases:
//    - Malformed input: SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("..."))
//    - Field rules: SendValidationError(c, fieldErrors)
//
// 2. SendServiceError - For errors returned by the services
//    - *services.ValidationError becomes a 400 with the reason as message
//    - *services.StoreError becomes a 500 with storeCode and is logged
//
// 3. SendSystemError - For anything else (500 responses)
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendSystemError instead
//    - Direct c.JSON() for errors - Use the helper functions

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = apierrors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code apierrors.ErrorCode, opts ...apierrors.ErrorOption) error {
	errorResponse := apierrors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendValidationError sends field-level validation failures
func SendValidationError(c echo.Context, fieldErrors map[string]string) error {
	errorResponse := apierrors.NewValidationError(fieldErrors, getTraceID(c))
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	errorResponse, internalErr := apierrors.WrapSystemError(err, getTraceID(c))
	logHandlerError(c, errorResponse, internalErr)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendServiceError maps a service error onto the API error codes.
func SendServiceError(c echo.Context, err error, storeCode apierrors.ErrorCode) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return SendError(c, validationCode(validationErr),
			apierrors.WithMessage(validationErr.Error()),
			apierrors.WithDetails(validationErr.Error()))
	}

	if errors.Is(err, context.DeadlineExceeded) {
		errorResponse := apierrors.NewErrorResponse(apierrors.SystemRequestTimeout, getTraceID(c))
		logHandlerError(c, errorResponse, err)
		return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
	}

	var storeErr *services.StoreError
	if errors.As(err, &storeErr) {
		errorResponse, internalErr := apierrors.WrapStoreError(storeCode, err, getTraceID(c))
		logHandlerError(c, errorResponse, internalErr)
		return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
	}

	return SendSystemError(c, err)
}

func validationCode(err *services.ValidationError) apierrors.ErrorCode {
	switch err.Field {
	case "amount":
		return apierrors.TransactionInvalidAmount
	case "type":
		return apierrors.TransactionInvalidType
	case "category":
		if err.Message == models.ErrCategoryRequired.Error() {
			return apierrors.TransactionCategoryRequired
		}
		return apierrors.TransactionValidationFailed
	case "note":
		return apierrors.TransactionValidationFailed
	case "date":
		return apierrors.ValidationInvalidDate
	case "from", "to":
		return apierrors.ValidationInvalidDateRange
	case "year", "month":
		return apierrors.ReportInvalidPeriod
	case "count":
		return apierrors.ValidationOutOfRange
	default:
		return apierrors.ValidationGeneral
	}
}

func logHandlerError(c echo.Context, response *apierrors.ErrorResponse, err error) {
	slog.ErrorContext(c.Request().Context(), "request failed",
		"trace_id", response.Error.TraceID,
		"code", response.Error.Code,
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err)
}
