package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks-io/finbooks/internal/apperrors"
	"github.com/finbooks-io/finbooks/internal/core/domain"
	portssvc "github.com/finbooks-io/finbooks/internal/core/ports/services"
	"github.com/finbooks-io/finbooks/internal/dto"
	"github.com/finbooks-io/finbooks/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalService
}

func newJournalHandler(js portssvc.JournalService) *journalHandler {
	return &journalHandler{journalService: js}
}

// RegisterJournalRoutes registers journal entry routes under a tenant group.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalService) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createDraft)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateDraft)
		entries.DELETE("/:entryID", h.deleteDraft)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// respondJournalError maps engine errors onto HTTP statuses. Validation
// failures carry the full message so clients can surface the offending line.
func respondJournalError(c *gin.Context, logger *slog.Logger, action string, err error) {
	var unbalanced domain.UnbalancedLineError
	var imbalanced domain.ImbalancedEntryError
	switch {
	case errors.As(err, &unbalanced), errors.As(err, &imbalanced),
		errors.Is(err, domain.ErrTooFewLines),
		errors.Is(err, domain.ErrNoPeriodFound),
		errors.Is(err, domain.ErrRateUnavailable),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCrossTenantReference):
		// Cross-tenant references are indistinguishable from missing ones.
		logger.Warn("Referenced resource not found "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Entry not found "+action)
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
	case errors.Is(err, domain.ErrEntryAlreadyPosted),
		errors.Is(err, domain.ErrPeriodLocked),
		errors.Is(err, domain.ErrFiscalYearClosed),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed " + action})
	}
}

// createDraft godoc
// @Summary Create a draft journal entry
// @Description Validates lines for debit/credit exclusivity and balance, resolves the fiscal period, and persists the draft
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Validation failure (imbalance, bad lines, no period)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Referenced account or currency not found"
// @Failure 500 {object} map[string]string "Failed creating journal entry"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journal-entries [post]
func (h *journalHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	entry, err := h.journalService.CreateDraft(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondJournalError(c, logger, "creating journal entry", err)
		return
	}

	logger.Info("Journal entry drafted", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed retrieving journal entry"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), tenantID, entryID)
	if err != nil {
		respondJournalError(c, logger, "retrieving journal entry", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Cursor-paginated, ordered by entry date then creation time descending
// @Tags journal-entries
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Param   status query string false "Filter by status (DRAFT or POSTED)"
// @Param   includeLines query bool false "Embed lines in each entry"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed listing journal entries"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		respondJournalError(c, logger, "listing journal entries", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateDraft godoc
// @Summary Edit a draft journal entry
// @Description A submitted line set replaces the existing lines wholesale. Posted entries are immutable.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Fields and lines to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already posted or period locked"
// @Failure 500 {object} map[string]string "Failed updating journal entry"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journal-entries/{entryID} [put]
func (h *journalHandler) updateDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.UpdateDraft(c.Request.Context(), tenantID, entryID, req, userID)
	if err != nil {
		respondJournalError(c, logger, "updating journal entry", err)
		return
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Irreversibly transitions the entry to POSTED; from then on it contributes to balances and reports
// @Tags journal-entries
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Already posted, period locked, or year closed"
// @Failure 500 {object} map[string]string "Failed posting journal entry"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journal-entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.Post(c.Request.Context(), tenantID, entryID, userID)
	if err != nil {
		respondJournalError(c, logger, "posting journal entry", err)
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteDraft godoc
// @Summary Delete a draft journal entry
// @Description Removes a draft and its lines. Posted entries can never be deleted; use reverse instead.
// @Tags journal-entries
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already posted"
// @Failure 500 {object} map[string]string "Failed deleting journal entry"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journal-entries/{entryID} [delete]
func (h *journalHandler) deleteDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteDraft(c.Request.Context(), tenantID, entryID, userID); err != nil {
		respondJournalError(c, logger, "deleting journal entry", err)
		return
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates a new draft whose lines offset the original line for line; the draft must be posted to take effect
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   entryID path string true "Entry ID to reverse"
// @Param   reversal body dto.ReverseJournalEntryRequest true "Reversal date"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or no period for reversal date"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Failure 500 {object} map[string]string "Failed reversing journal entry"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journal-entries/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	entryID := c.Param("entryID")

	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.journalService.Reverse(c.Request.Context(), tenantID, entryID, req.ReversalDate, userID)
	if err != nil {
		respondJournalError(c, logger, "reversing journal entry", err)
		return
	}

	logger.Info("Reversal drafted", slog.String("original_entry_id", entryID), slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
