package dto

import (
	"boardpulse/internal/domain/entity"
	"boardpulse/internal/usecase"
)

// RecordViewResponse reports whether a view was counted and why not if it
// was suppressed.
type RecordViewResponse struct {
	Counted bool   `json:"counted"`
	Reason  string `json:"reason"`
}

// ToRecordViewResponse converts a view outcome.
func ToRecordViewResponse(outcome usecase.ViewOutcome) RecordViewResponse {
	return RecordViewResponse{Counted: outcome.Counted, Reason: outcome.Reason}
}

// ViewCountResponse carries one counter value.
type ViewCountResponse struct {
	ContentType string `json:"content_type"`
	ContentID   int64  `json:"content_id"`
	Count       int64  `json:"count"`
}

// ViewCountListResponse carries all pending counters of a content type.
type ViewCountListResponse struct {
	ContentType string                     `json:"content_type"`
	Counts      []entity.ViewCountSnapshot `json:"counts"`
}

// SetCounterRequest overwrites one pending counter.
type SetCounterRequest struct {
	Value *int64 `json:"value" binding:"required,gte=0"`
}

// ClearCountersRequest selects which key family to wipe, optionally narrowed
// to one content type.
type ClearCountersRequest struct {
	Family      string `json:"family" binding:"required,oneof=counters markers all"`
	ContentType string `json:"content_type" binding:"omitempty,contenttype"`
}

// ClearCountersResponse reports how many keys were removed.
type ClearCountersResponse struct {
	Removed int `json:"removed"`
}

// RepairResponse reports a corruption-repair sweep.
type RepairResponse struct {
	Repaired int `json:"repaired"`
}

// DrainResponse reports a manual drain run.
type DrainResponse struct {
	Applied int `json:"applied"`
	Failed  int `json:"failed"`
}

// StatsResponse mirrors entity.CounterStats.
type StatsResponse struct {
	TotalCounterKeys  int64 `json:"total_counter_keys"`
	TotalMarkerKeys   int64 `json:"total_marker_keys"`
	TotalPendingSum   int64 `json:"total_pending_sum"`
	CorruptedKeyCount int64 `json:"corrupted_key_count"`
}

// ToStatsResponse converts counter stats.
func ToStatsResponse(s entity.CounterStats) StatsResponse {
	return StatsResponse{
		TotalCounterKeys:  s.TotalCounterKeys,
		TotalMarkerKeys:   s.TotalMarkerKeys,
		TotalPendingSum:   s.TotalPendingSum,
		CorruptedKeyCount: s.CorruptedKeyCount,
	}
}
