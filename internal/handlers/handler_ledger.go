package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
)

// ledgerHandler serves running-balance statements.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers the ledger report route.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ls)
	rg.GET("/ledger", h.buildLedger)
}

// buildLedger godoc
// @Summary Build a ledger report
// @Description Replays posted ledger rows for a date range into a running-balance statement. Voided entries never appear.
// @Tags ledger
// @Produce  json
// @Param   accountID query string false "Restrict to one account"
// @Param   dateFrom query string true "Range start (YYYY-MM-DD)"
// @Param   dateTo query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerReportResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) buildLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.LedgerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.ledgerService.BuildLedger(c.Request.Context(), query.AccountID, query.DateFrom, query.DateTo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerReportResponse(report))
}
