package models

import "time"

// Score category values. The sign of Points follows the category:
// 상점 rows are stored non-negative, 벌점 rows as the negative magnitude.
const (
	ScoreMerit   = "상점"
	ScoreDemerit = "벌점"
)

// Score rows are append-only; no edit or delete path exists.
type Score struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Category  string    `json:"category"` // 상점|벌점
	Points    int       `json:"points"`   // signed
	Reason    string    `json:"reason"`
	Date      time.Time `json:"date"`
}
