package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	apierrors "finance-tracker/internal/errors"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves aggregated views of the transaction store
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlyReport returns income, expense, net and the expense breakdown of a month
// @Summary Monthly report
// @Tags Reports
// @Produce json
// @Param year query int true "Year (1-9999)"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 400 {object} errors.ErrorResponse "REPORT_001 - Invalid year or month"
// @Failure 500 {object} errors.ErrorResponse "REPORT_002 - Report could not be generated"
// @Router /reports/monthly [get]
func (h *ReportHandler) MonthlyReport(c echo.Context) error {
	year, err := getRequiredIntParam(c, "year")
	if err != nil {
		return SendError(c, apierrors.ReportInvalidPeriod, apierrors.WithMessage(err.Error()), apierrors.WithDetails(err.Error()))
	}

	month, err := getRequiredIntParam(c, "month")
	if err != nil {
		return SendError(c, apierrors.ReportInvalidPeriod, apierrors.WithMessage(err.Error()), apierrors.WithDetails(err.Error()))
	}

	report, err := h.reportService.MonthlyReport(c.Request().Context(), year, month)
	if err != nil {
		return SendServiceError(c, err, apierrors.ReportGenerationFailed)
	}

	return c.JSON(http.StatusOK, dto.NewMonthlyReportResponse(report))
}

// Balance returns all-time income minus all-time expense
// @Summary Balance
// @Tags Reports
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 500 {object} errors.ErrorResponse "REPORT_002 - Report could not be generated"
// @Router /balance [get]
func (h *ReportHandler) Balance(c echo.Context) error {
	balance, err := h.reportService.Balance(c.Request().Context())
	if err != nil {
		return SendServiceError(c, err, apierrors.ReportGenerationFailed)
	}

	return c.JSON(http.StatusOK, dto.NewBalanceResponse(balance))
}
