package dto

import (
	"time"

	"boardpulse/internal/domain/entity"
)

// CreateNoticeRequest creates a notice.
type CreateNoticeRequest struct {
	ID      int64  `json:"id" binding:"required,gt=0"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreatePostRequest creates a community post.
type CreatePostRequest struct {
	ID      int64  `json:"id" binding:"required,gt=0"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required"`
}

// NoticeResponse is the DTO for a notice, with the total view count merged in.
type NoticeResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ViewCount int64  `json:"view_count"`
	CreatedAt string `json:"created_at"`
}

// PostResponse is the DTO for a community post.
type PostResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	ViewCount int64  `json:"view_count"`
	CreatedAt string `json:"created_at"`
}

// ToNoticeResponse converts an entity.Notice. viewCount overrides the stored
// durable count so responses can include pending views.
func ToNoticeResponse(n entity.Notice, viewCount int64) NoticeResponse {
	return NoticeResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		ViewCount: viewCount,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

// ToPostResponse converts an entity.CommunityPost.
func ToPostResponse(p entity.CommunityPost, viewCount int64) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		ViewCount: viewCount,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
