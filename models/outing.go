package models

import "time"

// Outing type values.
const (
	OutingDay       = "외출" // day-out
	OutingOvernight = "외박" // overnight
)

// Outing status values. Status is mutated in place; rows are never hard-deleted.
const (
	OutingRequested = "신청"
	OutingPending   = "대기"
	OutingApproved  = "승인"
	OutingRejected  = "반려"
	OutingCancelled = "취소"
)

type Outing struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Type      string    `json:"type"` // 외출|외박
	Reason    string    `json:"reason"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"` // 신청|대기|승인|반려|취소
}

// Cancellable reports whether the owning student may still cancel the request.
func (o Outing) Cancellable() bool {
	return o.Status == OutingRequested || o.Status == OutingPending
}
