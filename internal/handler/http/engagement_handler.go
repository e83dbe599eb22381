package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardpulse/internal/domain/entity"
	"boardpulse/internal/handler/http/dto"
	"boardpulse/internal/usecase"
)

// EngagementHandler serves the view-recording and count-query endpoints.
type EngagementHandler struct {
	engagementUsecase usecase.IEngagementUseCase
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(engagementUsecase usecase.IEngagementUseCase) *EngagementHandler {
	return &EngagementHandler{engagementUsecase: engagementUsecase}
}

// RecordViewHandler records one content view. It always answers 200: a
// suppressed or soft-failed view is data, not an error.
func (h *EngagementHandler) RecordViewHandler(c *gin.Context) {
	ref, ok := contentRefFromParams(c)
	if !ok {
		return
	}
	outcome := h.engagementUsecase.RecordView(
		c.Request.Context(), ref, c.ClientIP(), c.Request.UserAgent())
	SuccessHandler(c, http.StatusOK, dto.ToRecordViewResponse(outcome))
}

// GetTotalCountHandler returns durable + pending views for one item.
func (h *EngagementHandler) GetTotalCountHandler(c *gin.Context) {
	ref, ok := contentRefFromParams(c)
	if !ok {
		return
	}
	total := h.engagementUsecase.GetTotalCount(c.Request.Context(), ref)
	SuccessHandler(c, http.StatusOK, dto.ViewCountResponse{
		ContentType: string(ref.Type),
		ContentID:   ref.ID,
		Count:       total,
	})
}

// GetPendingCountHandler returns only the not-yet-drained delta for one item.
func (h *EngagementHandler) GetPendingCountHandler(c *gin.Context) {
	ref, ok := contentRefFromParams(c)
	if !ok {
		return
	}
	pending := h.engagementUsecase.GetPendingCount(c.Request.Context(), ref)
	SuccessHandler(c, http.StatusOK, dto.ViewCountResponse{
		ContentType: string(ref.Type),
		ContentID:   ref.ID,
		Count:       pending,
	})
}

// ListPendingHandler returns every pending counter of a content type.
func (h *EngagementHandler) ListPendingHandler(c *gin.Context) {
	contentType, err := entity.ParseContentType(c.Param("type"))
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "content type must be notice or community")
		return
	}
	snapshots, err := h.engagementUsecase.ListPending(c.Request.Context(), contentType)
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ViewCountListResponse{
		ContentType: string(contentType),
		Counts:      snapshots,
	})
}
