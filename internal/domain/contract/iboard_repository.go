package contract

import (
	"context"

	"boardpulse/internal/domain/entity"
)

// INoticeRepository persists notices. The view-count methods satisfy
// IContentStore so the reconciler can treat both repositories uniformly.
type INoticeRepository interface {
	IContentStore
	CreateNotice(ctx context.Context, notice *entity.Notice) error
	GetNoticeByID(ctx context.Context, noticeID int64) (*entity.Notice, error)
	ListNotices(ctx context.Context, opts *ContentFilterOptions) ([]entity.Notice, int64, error)
	DeleteNotice(ctx context.Context, noticeID int64) error
}

// IPostRepository persists community posts.
type IPostRepository interface {
	IContentStore
	CreatePost(ctx context.Context, post *entity.CommunityPost) error
	GetPostByID(ctx context.Context, postID int64) (*entity.CommunityPost, error)
	ListPosts(ctx context.Context, opts *ContentFilterOptions) ([]entity.CommunityPost, int64, error)
	DeletePost(ctx context.Context, postID int64) error
}
