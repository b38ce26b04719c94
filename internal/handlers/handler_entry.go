package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/apperrors"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/dto"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
)

// entryHandler handles HTTP requests for the entry lifecycle and voiding.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
	voidService  portssvc.VoidSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(es portssvc.EntrySvcFacade, vs portssvc.VoidSvcFacade) *entryHandler {
	return &entryHandler{
		entryService: es,
		voidService:  vs,
	}
}

// RegisterEntryRoutes registers routes related to entries.
func RegisterEntryRoutes(rg *gin.RouterGroup, es portssvc.EntrySvcFacade, vs portssvc.VoidSvcFacade) {
	h := newEntryHandler(es, vs)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createDraft)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntryByID)
		entries.POST("/:id/submit", h.submitEntry)
		entries.POST("/:id/approve", h.approveEntry)
		entries.POST("/:id/reject", h.rejectEntry)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/void", h.voidEntry)
	}
}

// respondEntryError maps domain errors to HTTP responses shared by every
// lifecycle endpoint.
func respondEntryError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var insufficientErr *apperrors.InsufficientBalanceError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrAlreadyVoided),
		errors.Is(err, apperrors.ErrNotPosted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": insufficientErr.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var convErr *apperrors.ConversionError
		if errors.As(err, &convErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": convErr.Error()})
			return
		}
		logger.Error("Entry operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createDraft godoc
// @Summary Create a draft entry
// @Description Validates and persists a new draft with its immutable entry number
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /entries [post]
func (h *entryHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CreateDraft(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondEntryError(c, err, "create entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List entries
// @Tags entries
// @Produce  json
// @Param   accountID query string false "Filter by source or destination account"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondEntryError(c, err, "list entries")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getEntryByID godoc
// @Summary Get an entry
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *entryHandler) getEntryByID(c *gin.Context) {
	entry, err := h.entryService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEntryError(c, err, "retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// submitEntry godoc
// @Summary Submit a draft for approval
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /entries/{id}/submit [post]
func (h *entryHandler) submitEntry(c *gin.Context) {
	h.lifecycle(c, h.entryService.SubmitEntry, "submit entry")
}

// approveEntry godoc
// @Summary Approve a pending entry
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} map[string]string "Missing approve capability"
// @Failure 409 {object} map[string]string "Entry is not pending approval"
// @Security BearerAuth
// @Router /entries/{id}/approve [post]
func (h *entryHandler) approveEntry(c *gin.Context) {
	h.lifecycle(c, h.entryService.ApproveEntry, "approve entry")
}

// postEntry godoc
// @Summary Post an approved entry
// @Description Freezes the conversion and applies the balance effect atomically
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} map[string]string "Missing post capability"
// @Failure 409 {object} map[string]string "Entry is not approved"
// @Failure 422 {object} map[string]string "Insufficient balance or missing rate"
// @Security BearerAuth
// @Router /entries/{id}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	h.lifecycle(c, h.entryService.PostEntry, "post entry")
}

// rejectEntry godoc
// @Summary Reject a draft or pending entry
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   rejection body dto.RejectEntryRequest false "Rejection reason"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Entry cannot be rejected"
// @Security BearerAuth
// @Router /entries/{id}/reject [post]
func (h *entryHandler) rejectEntry(c *gin.Context) {
	// The rejection body is optional.
	var req dto.RejectEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Reason = ""
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.RejectEntry(c.Request.Context(), c.Param("id"), actorID, req.Reason)
	if err != nil {
		respondEntryError(c, err, "reject entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a posted entry
// @Description Atomically reverses the entry's balance effect and writes the immutable void record
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   void body dto.VoidEntryRequest false "Void reason"
// @Success 200 {object} dto.VoidResponse
// @Failure 403 {object} map[string]string "Missing void capability"
// @Failure 409 {object} map[string]string "Entry already voided or not posted"
// @Security BearerAuth
// @Router /entries/{id}/void [post]
func (h *entryHandler) voidEntry(c *gin.Context) {
	var req dto.VoidEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Reason = ""
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.voidService.VoidEntry(c.Request.Context(), c.Param("id"), actorID, req.Reason)
	if err != nil {
		respondEntryError(c, err, "void entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoidResponse(record))
}

// lifecycle handles the common shape of submit/approve/post.
func (h *entryHandler) lifecycle(c *gin.Context, fn func(ctx context.Context, entryID, actorID string) (*domain.Entry, error), action string) {
	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := fn(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondEntryError(c, err, action)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
