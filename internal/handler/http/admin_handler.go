package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"boardpulse/internal/domain/entity"
	"boardpulse/internal/handler/http/dto"
	"boardpulse/internal/usecase"
)

// ReconcilerRunner triggers reconciliation cycles on demand. Implemented by
// scheduler.Reconciler; admin endpoints use it to run a cycle outside its
// normal cadence.
type ReconcilerRunner interface {
	DrainOnce(ctx context.Context) (applied, failed int)
	SweepMarkersOnce(ctx context.Context) (int, error)
	RepairOnce(ctx context.Context) (int, error)
}

// CounterJanitor wipes counter-store key families. Implemented by
// usecase.CorruptionGuard.
type CounterJanitor interface {
	ClearAll(ctx context.Context, pattern string) (int, error)
}

// AdminHandler serves operator tooling: counter overrides, bulk clears,
// manual cycle runs, and aggregate statistics. Authorization for these routes
// belongs to the surrounding deployment, not this service.
type AdminHandler struct {
	engagementUsecase usecase.IEngagementUseCase
	janitor           CounterJanitor
	reconciler        ReconcilerRunner
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(engagementUsecase usecase.IEngagementUseCase, janitor CounterJanitor, reconciler ReconcilerRunner) *AdminHandler {
	return &AdminHandler{
		engagementUsecase: engagementUsecase,
		janitor:           janitor,
		reconciler:        reconciler,
	}
}

// SetCounterHandler force-overwrites one pending counter.
func (h *AdminHandler) SetCounterHandler(c *gin.Context) {
	ref, ok := contentRefFromParams(c)
	if !ok {
		return
	}
	var req dto.SetCounterRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.engagementUsecase.SetPendingCount(c.Request.Context(), ref, *req.Value); err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	MessageHandler(c, http.StatusOK, "Counter updated")
}

// ResetCounterHandler force-resets one pending counter to zero.
func (h *AdminHandler) ResetCounterHandler(c *gin.Context) {
	ref, ok := contentRefFromParams(c)
	if !ok {
		return
	}
	if err := h.engagementUsecase.ResetPendingCount(c.Request.Context(), ref); err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	MessageHandler(c, http.StatusOK, "Counter reset")
}

// ClearCountersHandler wipes a whole key family, optionally narrowed to one
// content type. Emergency recovery only.
func (h *AdminHandler) ClearCountersHandler(c *gin.Context) {
	var req dto.ClearCountersRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	counterPattern := usecase.AllCountersPattern
	markerPattern := usecase.AllMarkersPattern
	if req.ContentType != "" {
		contentType, err := entity.ParseContentType(req.ContentType)
		if err != nil {
			ErrorHandler(c, http.StatusBadRequest, "content type must be notice or community")
			return
		}
		counterPattern = usecase.CounterKeyPattern(contentType)
		markerPattern = usecase.MarkerKeyPattern(contentType)
	}
	removed := 0
	if req.Family == "counters" || req.Family == "all" {
		n, err := h.janitor.ClearAll(c.Request.Context(), counterPattern)
		if err != nil {
			ErrorHandler(c, http.StatusInternalServerError, err.Error())
			return
		}
		removed += n
	}
	if req.Family == "markers" || req.Family == "all" {
		n, err := h.janitor.ClearAll(c.Request.Context(), markerPattern)
		if err != nil {
			ErrorHandler(c, http.StatusInternalServerError, err.Error())
			return
		}
		removed += n
	}
	SuccessHandler(c, http.StatusOK, dto.ClearCountersResponse{Removed: removed})
}

// RunDrainHandler runs one drain cycle now.
func (h *AdminHandler) RunDrainHandler(c *gin.Context) {
	applied, failed := h.reconciler.DrainOnce(c.Request.Context())
	SuccessHandler(c, http.StatusOK, dto.DrainResponse{Applied: applied, Failed: failed})
}

// RunRepairHandler runs one corruption-repair sweep now.
func (h *AdminHandler) RunRepairHandler(c *gin.Context) {
	repaired, err := h.reconciler.RepairOnce(c.Request.Context())
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.RepairResponse{Repaired: repaired})
}

// GetStatsHandler returns aggregate counter-store statistics.
func (h *AdminHandler) GetStatsHandler(c *gin.Context) {
	stats, err := h.engagementUsecase.Stats(c.Request.Context())
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToStatsResponse(stats))
}
