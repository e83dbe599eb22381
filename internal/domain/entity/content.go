package entity

import (
	"errors"
	"fmt"
)

// ContentType identifies which kind of board content a counter belongs to.
type ContentType string

const (
	ContentTypeNotice    ContentType = "notice"
	ContentTypeCommunity ContentType = "community"
)

// ErrUnknownContentType is returned when a content type string is neither
// "notice" nor "community".
var ErrUnknownContentType = errors.New("unknown content type")

// ParseContentType converts a raw string into a ContentType.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentTypeNotice:
		return ContentTypeNotice, nil
	case ContentTypeCommunity:
		return ContentTypeCommunity, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownContentType, s)
	}
}

// ContentRef identifies a single counted entity. It is constructed per request
// and never persisted on its own.
type ContentRef struct {
	Type ContentType
	ID   int64
}

func (r ContentRef) String() string {
	return fmt.Sprintf("%s/%d", r.Type, r.ID)
}

// ViewCountSnapshot is the read model for a single counter. PendingCount is the
// delta accumulated in the counter store since the last drain; TotalCount is
// only populated by total queries (durable + pending).
type ViewCountSnapshot struct {
	Type         ContentType `json:"content_type"`
	ID           int64       `json:"content_id"`
	PendingCount int64       `json:"pending_count"`
	TotalCount   int64       `json:"total_count,omitempty"`
}

// CounterStats is the aggregate picture of the counter store, served to
// operators.
type CounterStats struct {
	TotalCounterKeys  int64 `json:"total_counter_keys"`
	TotalMarkerKeys   int64 `json:"total_marker_keys"`
	TotalPendingSum   int64 `json:"total_pending_sum"`
	CorruptedKeyCount int64 `json:"corrupted_key_count"`
}
