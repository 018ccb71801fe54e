package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/dto"
	"github.com/finbooks-io/finbooks/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateService
}

func newExchangeRateHandler(rs portssvc.ExchangeRateService) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers exchange rate routes under a tenant
// group.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateService) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("/:currencyCode", h.getRateAt)
	}
}

// createExchangeRate godoc
// @Summary Register an exchange rate
// @Description Records a conversion rate from a currency into the tenant base currency, effective from a date
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   rate body dto.CreateExchangeRateRequest true "Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate rate for currency and date"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Validation error creating exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate exchange rate", slog.String("from", req.FromCurrencyCode))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create exchange rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate created", slog.String("from", rate.FromCurrencyCode), slog.String("to", rate.ToCurrencyCode))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getRateAt godoc
// @Summary Resolve the effective rate for a currency on a date
// @Description Returns the conversion rate into the base currency as of the given date (default today)
// @Tags exchange-rates
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   currencyCode path string true "Currency code"
// @Param   date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "No rate available"
// @Failure 500 {object} map[string]string "Failed to resolve rate"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exchange-rates/{currencyCode} [get]
func (h *exchangeRateHandler) getRateAt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	currencyCode := c.Param("currencyCode")

	date := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			logger.Warn("Invalid date query parameter", slog.String("date", dateStr))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	rate, err := h.rateService.RateAt(c.Request.Context(), tenantID, currencyCode, date)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			logger.Warn("No exchange rate available", slog.String("currency_code", currencyCode))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to resolve exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currencyCode": currencyCode,
		"date":         date.Format("2006-01-02"),
		"rate":         rate.String(),
	})
}
