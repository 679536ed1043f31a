package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

const defaultSeedCount = 50

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	transactionService services.TransactionServiceInterface
	enabled            bool
}

// NewDevHandler creates a new development handler. When enabled is false
// every endpoint answers SYSTEM_010.
func NewDevHandler(transactionService services.TransactionServiceInterface, enabled bool) *DevHandler {
	return &DevHandler{
		transactionService: transactionService,
		enabled:            enabled,
	}
}

// SeedTransactions fills a month with generated transactions
//
// Method: POST /api/dev/seed
// Environment: Development only
//
// Query parameters:
//   - year: Year to seed (required)
//   - month: Month to seed (required)
//   - count: Number of transactions to generate (default: 50, max: 500)
//
// Success Response: 201 Created
//   - created: Number of transactions stored
//   - transactions: The stored transactions
//
// Error Responses:
//   - 400: Invalid period or count
//   - 404: Not a development environment
//   - 500: Internal server error
func (h *DevHandler) SeedTransactions(c echo.Context) error {
	if !h.enabled {
		return SendError(c, apierrors.SystemFeatureDisabled)
	}

	year, err := getRequiredIntParam(c, "year")
	if err != nil {
		return SendError(c, apierrors.ReportInvalidPeriod, apierrors.WithMessage(err.Error()), apierrors.WithDetails(err.Error()))
	}

	month, err := getRequiredIntParam(c, "month")
	if err != nil {
		return SendError(c, apierrors.ReportInvalidPeriod, apierrors.WithMessage(err.Error()), apierrors.WithDetails(err.Error()))
	}

	count, err := getIntParam(c, "count", defaultSeedCount)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithMessage(err.Error()), apierrors.WithDetails(err.Error()))
	}

	created, err := h.transactionService.SeedMonth(c.Request().Context(), year, month, count)
	if err != nil {
		return SendServiceError(c, err, apierrors.TransactionStoreFailed)
	}

	return c.JSON(http.StatusCreated, dto.SeedResponse{
		Created:      len(created),
		Year:         year,
		Month:        month,
		Transactions: dto.NewTransactionListResponse(created),
	})
}
