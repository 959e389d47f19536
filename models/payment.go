package models

import "time"

// Payment status values.
const (
	PaymentPaid   = "납부"
	PaymentUnpaid = "미납"
)

// Payment method values.
var PaymentMethods = []string{"현금", "카드", "이체", "기타"}

// Payment rows are append-only; no edit or delete path exists.
type Payment struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Period    string    `json:"period"` // 납부 회차/기간
	Amount    int       `json:"amount"` // non-negative
	Status    string    `json:"status"` // 납부|미납
	PayDate   time.Time `json:"pay_date"`
	Method    string    `json:"method"` // 현금|카드|이체|기타
	Note      string    `json:"note"`
}
