package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/utils/accounting"
)

// currencyHandler handles HTTP requests related to currencies and rates.
type currencyHandler struct {
	currencyService   portssvc.CurrencySvcFacade
	conversionService portssvc.ConversionSvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade, conv portssvc.ConversionSvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService:   cs,
		conversionService: conv,
	}
}

// RegisterCurrencyRoutes registers routes related to currencies and rates.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, cs portssvc.CurrencySvcFacade, conv portssvc.ConversionSvcFacade) {
	h := newCurrencyHandler(cs, conv)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/base", h.getBaseCurrency)
		currencies.GET("/:id", h.getCurrencyByID)
		currencies.PUT("/:id/base", h.setBaseCurrency)
		currencies.DELETE("/:id", h.deactivateCurrency)
	}

	rates := rg.Group("/rates")
	{
		rates.POST("", h.upsertRate)
		rates.GET("/:currencyID", h.getLatestRate)
	}

	rg.POST("/convert", h.convert)
}

// createCurrency godoc
// @Summary Register a new currency
// @Description Adds a new currency to the registry, optionally making it the base
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Currency code already exists"
// @Failure 500 {object} map[string]string "Failed to create currency"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.currencyService.CreateCurrency(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Currency code '%s' already exists", req.Code)})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create currency"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(created))
}

// listCurrencies godoc
// @Summary List currencies
// @Tags currencies
// @Produce  json
// @Param   includeInactive query bool false "Include deactivated currencies"
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponses(currencies))
}

// getBaseCurrency godoc
// @Summary Get the base currency
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "No base currency configured"
// @Security BearerAuth
// @Router /currencies/base [get]
func (h *currencyHandler) getBaseCurrency(c *gin.Context) {
	base, err := h.currencyService.GetBaseCurrency(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No base currency configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve base currency"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(base))
}

// getCurrencyByID godoc
// @Summary Get a currency
// @Tags currencies
// @Produce  json
// @Param   id path string true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{id} [get]
func (h *currencyHandler) getCurrencyByID(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currency"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// setBaseCurrency godoc
// @Summary Designate the base currency
// @Description Atomically moves the base flag; all rates are interpreted against the new base from now on
// @Tags currencies
// @Produce  json
// @Param   id path string true "Currency ID"
// @Success 204
// @Failure 400 {object} map[string]string "Currency inactive"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{id}/base [put]
func (h *currencyHandler) setBaseCurrency(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.currencyService.SetBaseCurrency(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set base currency"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// deactivateCurrency godoc
// @Summary Deactivate a currency
// @Description Marks a currency inactive; the base currency cannot be deactivated
// @Tags currencies
// @Produce  json
// @Param   id path string true "Currency ID"
// @Success 204
// @Failure 400 {object} map[string]string "Cannot deactivate the base currency"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{id} [delete]
func (h *currencyHandler) deactivateCurrency(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.currencyService.DeactivateCurrency(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate currency"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// upsertRate godoc
// @Summary Record a new conversion rate
// @Description Appends a new latest rate for a currency; prior rates are retained for audit
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertRateRequest true "Rate details"
// @Success 201 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid rate"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /rates [post]
func (h *currencyHandler) upsertRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.currencyService.UpsertRate(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record rate"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToRateResponse(rate))
}

// getLatestRate godoc
// @Summary Get the latest rate for a currency
// @Tags rates
// @Produce  json
// @Param   currencyID path string true "Currency ID"
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} map[string]string "No rate recorded"
// @Security BearerAuth
// @Router /rates/{currencyID} [get]
func (h *currencyHandler) getLatestRate(c *gin.Context) {
	rate, err := h.currencyService.GetLatestRate(c.Request.Context(), c.Param("currencyID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate recorded for currency"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Ad-hoc conversion via the base currency pivot using the latest rates
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion request"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Missing rate or invalid request"
// @Security BearerAuth
// @Router /convert [post]
func (h *currencyHandler) convert(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	converted, err := h.conversionService.Convert(c.Request.Context(), req.Amount, req.FromCurrencyID, req.ToCurrencyID)
	if err != nil {
		var convErr *apperrors.ConversionError
		if errors.As(err, &convErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": convErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:          req.Amount,
		FromCurrencyID:  req.FromCurrencyID,
		ToCurrencyID:    req.ToCurrencyID,
		ConvertedAmount: accounting.Round(converted),
	})
}
