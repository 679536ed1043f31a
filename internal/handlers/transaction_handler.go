package handlers

import (
	"errors"
	"net/http"

	"finance-tracker/internal/calendar"
	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/services"
	"finance-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	validator          *validation.Validator
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		validator:          validation.GetValidator(),
	}
}

// CreateTransaction appends a transaction
// @Summary Create transaction
// @Description Record an income or expense. Type is case-insensitive, category may be a string or {"name": ...}
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse "Stored transaction with its id"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_* or TRANSACTION_001..004 - Invalid transaction"
// @Failure 500 {object} errors.ErrorResponse "TRANSACTION_005 - Transaction could not be saved"
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationMalformedBody, apierrors.WithDetails(bindErrorDetail(err)))
	}

	fieldErrors, err := h.validator.Struct(&req)
	if err != nil {
		return SendSystemError(c, err)
	}
	if len(fieldErrors) > 0 {
		return SendValidationError(c, fieldErrors)
	}

	transaction, err := req.ToModel()
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails("date: "+err.Error()))
	}

	created, err := h.transactionService.AddTransaction(c.Request().Context(), transaction)
	if err != nil {
		return SendServiceError(c, err, apierrors.TransactionStoreFailed)
	}

	return c.JSON(http.StatusCreated, dto.NewTransactionResponse(created))
}

// ListTransactions returns transactions dated within an inclusive range
// @Summary List transactions
// @Description Transactions with from <= date <= to, ordered by date then insertion
// @Tags Transactions
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)" default(1970-01-01)
// @Param to query string false "Last day (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_005 - Invalid date or VALIDATION_006 - from after to"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002 - Database error"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	from, err := getDateParam(c, "from", epoch)
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithMessage(err.Error()), apierrors.WithDetails(err.Error()))
	}

	to, err := getDateParam(c, "to", calendar.Today())
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithMessage(err.Error()), apierrors.WithDetails(err.Error()))
	}

	transactions, err := h.transactionService.ListTransactions(c.Request().Context(), from, to)
	if err != nil {
		return SendServiceError(c, err, apierrors.SystemDatabaseError)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionListResponse(transactions))
}

// bindErrorDetail extracts the decoder message from echo's bind error
func bindErrorDetail(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}
