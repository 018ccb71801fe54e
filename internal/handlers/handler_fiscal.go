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

// fiscalHandler handles HTTP requests related to the fiscal calendar.
type fiscalHandler struct {
	fiscalService portssvc.FiscalService
}

func newFiscalHandler(fs portssvc.FiscalService) *fiscalHandler {
	return &fiscalHandler{fiscalService: fs}
}

// registerFiscalRoutes registers fiscal calendar routes under a tenant group.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalService) {
	h := newFiscalHandler(fiscalService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:fiscalYearID", h.getFiscalYear)
		years.POST("/:fiscalYearID/close", h.closeFiscalYear)
		years.POST("/:fiscalYearID/periods", h.createFiscalPeriod)
		years.GET("/:fiscalYearID/periods", h.listFiscalPeriods)
	}

	periods := rg.Group("/fiscal-periods")
	{
		periods.GET("/resolve", h.resolvePeriod)
		periods.GET("/:fiscalPeriodID", h.getFiscalPeriod)
		periods.POST("/:fiscalPeriodID/lock", h.lockPeriod)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   year body dto.CreateFiscalYearRequest true "Fiscal year details"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate fiscal year"
// @Failure 500 {object} map[string]string "Failed to create fiscal year"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-years [post]
func (h *fiscalHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.fiscalService.CreateFiscalYear(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateCode):
			logger.Warn("Duplicate fiscal year", slog.String("name", req.Name))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating fiscal year", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create fiscal year in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fiscal year"})
		}
		return
	}

	logger.Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

// getFiscalYear godoc
// @Summary Get a fiscal year by ID
// @Tags fiscal
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   fiscalYearID path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fiscal year"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-years/{fiscalYearID} [get]
func (h *fiscalHandler) getFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	fiscalYearID := c.Param("fiscalYearID")

	year, err := h.fiscalService.GetFiscalYearByID(c.Request.Context(), tenantID, fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Fiscal year not found", slog.String("fiscal_year_id", fiscalYearID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal year not found"})
			return
		}
		logger.Error("Failed to get fiscal year from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fiscal year"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// listFiscalYears godoc
// @Summary List fiscal years for a tenant
// @Tags fiscal
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Success 200 {array} dto.FiscalYearResponse
// @Failure 500 {object} map[string]string "Failed to list fiscal years"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-years [get]
func (h *fiscalHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	years, err := h.fiscalService.ListFiscalYears(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list fiscal years from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal years"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponses(years))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Marks a fiscal year closed; no further postings land in it. Idempotent.
// @Tags fiscal
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   fiscalYearID path string true "Fiscal year ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 500 {object} map[string]string "Failed to close fiscal year"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-years/{fiscalYearID}/close [post]
func (h *fiscalHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	fiscalYearID := c.Param("fiscalYearID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.fiscalService.CloseFiscalYear(c.Request.Context(), tenantID, fiscalYearID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Fiscal year not found for close", slog.String("fiscal_year_id", fiscalYearID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal year not found"})
			return
		}
		logger.Error("Failed to close fiscal year in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close fiscal year"})
		return
	}

	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	c.Status(http.StatusNoContent)
}

// createFiscalPeriod godoc
// @Summary Create a fiscal period within a year
// @Description The period must lie within the year bounds and not overlap a sibling
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   fiscalYearID path string true "Fiscal year ID"
// @Param   period body dto.CreateFiscalPeriodRequest true "Fiscal period details"
// @Success 201 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or period out of year bounds"
// @Failure 409 {object} map[string]string "Overlapping period or closed year"
// @Failure 500 {object} map[string]string "Failed to create fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-years/{fiscalYearID}/periods [post]
func (h *fiscalHandler) createFiscalPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	fiscalYearID := c.Param("fiscalYearID")

	var req dto.CreateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFiscalPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.fiscalService.CreateFiscalPeriod(c.Request.Context(), tenantID, fiscalYearID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Fiscal year not found for period creation", slog.String("fiscal_year_id", fiscalYearID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal year not found"})
		case errors.Is(err, domain.ErrPeriodOutOfRange), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating fiscal period", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrPeriodOverlap), errors.Is(err, domain.ErrFiscalYearClosed), errors.Is(err, domain.ErrDuplicateCode):
			logger.Warn("Conflict creating fiscal period", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create fiscal period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fiscal period"})
		}
		return
	}

	logger.Info("Fiscal period created", slog.String("fiscal_period_id", period.FiscalPeriodID))
	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponse(period))
}

// listFiscalPeriods godoc
// @Summary List periods of a fiscal year
// @Tags fiscal
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   fiscalYearID path string true "Fiscal year ID"
// @Success 200 {array} dto.FiscalPeriodResponse
// @Failure 500 {object} map[string]string "Failed to list fiscal periods"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-years/{fiscalYearID}/periods [get]
func (h *fiscalHandler) listFiscalPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	fiscalYearID := c.Param("fiscalYearID")

	periods, err := h.fiscalService.ListFiscalPeriods(c.Request.Context(), tenantID, fiscalYearID)
	if err != nil {
		logger.Error("Failed to list fiscal periods from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponses(periods))
}

// getFiscalPeriod godoc
// @Summary Get a fiscal period by ID
// @Tags fiscal
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   fiscalPeriodID path string true "Fiscal period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Fiscal period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-periods/{fiscalPeriodID} [get]
func (h *fiscalHandler) getFiscalPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	fiscalPeriodID := c.Param("fiscalPeriodID")

	period, err := h.fiscalService.GetFiscalPeriodByID(c.Request.Context(), tenantID, fiscalPeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Fiscal period not found", slog.String("fiscal_period_id", fiscalPeriodID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal period not found"})
			return
		}
		logger.Error("Failed to get fiscal period from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fiscal period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// resolvePeriod godoc
// @Summary Resolve the period containing a date
// @Tags fiscal
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "No period contains the date"
// @Failure 500 {object} map[string]string "Failed to resolve period"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-periods/resolve [get]
func (h *fiscalHandler) resolvePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		logger.Warn("Invalid date query parameter", slog.String("date", dateStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	period, err := h.fiscalService.ResolvePeriod(c.Request.Context(), tenantID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNoPeriodFound) {
			logger.Warn("No fiscal period contains date", slog.String("date", dateStr))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to resolve fiscal period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// lockPeriod godoc
// @Summary Lock a fiscal period
// @Description Blocks further posting into the period. Idempotent.
// @Tags fiscal
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   fiscalPeriodID path string true "Fiscal period ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Fiscal period not found"
// @Failure 500 {object} map[string]string "Failed to lock fiscal period"
// @Security BearerAuth
// @Router /tenants/{tenantID}/fiscal-periods/{fiscalPeriodID}/lock [post]
func (h *fiscalHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	fiscalPeriodID := c.Param("fiscalPeriodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.fiscalService.LockPeriod(c.Request.Context(), tenantID, fiscalPeriodID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Fiscal period not found for lock", slog.String("fiscal_period_id", fiscalPeriodID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal period not found"})
			return
		}
		logger.Error("Failed to lock fiscal period in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock fiscal period"})
		return
	}

	logger.Info("Fiscal period locked", slog.String("fiscal_period_id", fiscalPeriodID))
	c.Status(http.StatusNoContent)
}
