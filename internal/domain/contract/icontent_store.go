package contract

import (
	"context"
	"errors"
	"time"
)

// ErrContentNotFound is returned when an operation targets content that does
// not exist or is soft-deleted.
var ErrContentNotFound = errors.New("content not found")

// IContentStore is the durable system of record for per-item view counts.
// One implementation exists per content type (notice, community post).
type IContentStore interface {
	// IncrementViewCountBy atomically adds delta to the stored view count.
	// Used only by the reconciliation drain.
	IncrementViewCountBy(ctx context.Context, contentID int64, delta int64) error

	// GetViewCount returns the durable view count for one item.
	GetViewCount(ctx context.Context, contentID int64) (int64, error)
}

// ContentFilterOptions narrows content listings.
type ContentFilterOptions struct {
	Page     int
	PageSize int
	DateFrom *time.Time
	DateTo   *time.Time
}
