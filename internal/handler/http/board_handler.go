package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"boardpulse/internal/domain/contract"
	"boardpulse/internal/domain/entity"
	"boardpulse/internal/handler/http/dto"
	"boardpulse/internal/usecase"
)

// BoardHandler serves the board content itself (notices and community
// posts). View counts in its responses always include pending views.
type BoardHandler struct {
	notices           contract.INoticeRepository
	posts             contract.IPostRepository
	engagementUsecase usecase.IEngagementUseCase
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(notices contract.INoticeRepository, posts contract.IPostRepository, engagementUsecase usecase.IEngagementUseCase) *BoardHandler {
	return &BoardHandler{notices: notices, posts: posts, engagementUsecase: engagementUsecase}
}

// CreateNoticeHandler creates a notice.
func (h *BoardHandler) CreateNoticeHandler(c *gin.Context) {
	var req dto.CreateNoticeRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	now := time.Now()
	notice := &entity.Notice{
		ID:        req.ID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.notices.CreateNotice(c.Request.Context(), notice); err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToNoticeResponse(*notice, 0))
}

// GetNoticeHandler returns one notice with its total view count.
func (h *BoardHandler) GetNoticeHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorHandler(c, http.StatusBadRequest, "content id must be a positive integer")
		return
	}
	notice, err := h.notices.GetNoticeByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, contract.ErrContentNotFound) {
			ErrorHandler(c, http.StatusNotFound, "Notice not found")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	ref := entity.ContentRef{Type: entity.ContentTypeNotice, ID: id}
	total := h.engagementUsecase.GetTotalCount(c.Request.Context(), ref)
	SuccessHandler(c, http.StatusOK, dto.ToNoticeResponse(*notice, total))
}

// ListNoticesHandler returns a page of notices.
func (h *BoardHandler) ListNoticesHandler(c *gin.Context) {
	notices, total, err := h.notices.ListNotices(c.Request.Context(), pageOptions(c))
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]dto.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		out = append(out, dto.ToNoticeResponse(n, n.ViewCount))
	}
	SuccessHandler(c, http.StatusOK, gin.H{"notices": out, "total": total})
}

// CreatePostHandler creates a community post.
func (h *BoardHandler) CreatePostHandler(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	now := time.Now()
	post := &entity.CommunityPost{
		ID:        req.ID,
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.posts.CreatePost(c.Request.Context(), post); err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToPostResponse(*post, 0))
}

// GetPostHandler returns one post with its total view count.
func (h *BoardHandler) GetPostHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorHandler(c, http.StatusBadRequest, "content id must be a positive integer")
		return
	}
	post, err := h.posts.GetPostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, contract.ErrContentNotFound) {
			ErrorHandler(c, http.StatusNotFound, "Post not found")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	ref := entity.ContentRef{Type: entity.ContentTypeCommunity, ID: id}
	total := h.engagementUsecase.GetTotalCount(c.Request.Context(), ref)
	SuccessHandler(c, http.StatusOK, dto.ToPostResponse(*post, total))
}

// DeleteNoticeHandler soft-deletes a notice. Its counters stay in the store;
// the drain drops their deltas once the durable update stops matching.
func (h *BoardHandler) DeleteNoticeHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorHandler(c, http.StatusBadRequest, "content id must be a positive integer")
		return
	}
	if err := h.notices.DeleteNotice(c.Request.Context(), id); err != nil {
		if errors.Is(err, contract.ErrContentNotFound) {
			ErrorHandler(c, http.StatusNotFound, "Notice not found")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	MessageHandler(c, http.StatusOK, "Notice deleted")
}

// DeletePostHandler soft-deletes a community post.
func (h *BoardHandler) DeletePostHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorHandler(c, http.StatusBadRequest, "content id must be a positive integer")
		return
	}
	if err := h.posts.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, contract.ErrContentNotFound) {
			ErrorHandler(c, http.StatusNotFound, "Post not found")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	MessageHandler(c, http.StatusOK, "Post deleted")
}

// ListPostsHandler returns a page of posts.
func (h *BoardHandler) ListPostsHandler(c *gin.Context) {
	posts, total, err := h.posts.ListPosts(c.Request.Context(), pageOptions(c))
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.ToPostResponse(p, p.ViewCount))
	}
	SuccessHandler(c, http.StatusOK, gin.H{"posts": out, "total": total})
}

// pageOptions reads page/page_size query params with defaults.
func pageOptions(c *gin.Context) *contract.ContentFilterOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return &contract.ContentFilterOptions{Page: page, PageSize: pageSize}
}
