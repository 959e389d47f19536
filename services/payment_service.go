package services

import (
	"strings"
	"time"

	"github.com/victorrChoi/dalgubul/models"
	"github.com/victorrChoi/dalgubul/store"
)

type PaymentService struct {
	store *store.Store
}

func NewPaymentService(st *store.Store) *PaymentService {
	return &PaymentService{store: st}
}

type PaymentInput struct {
	StudentID int    `json:"student_id"`
	Period    string `json:"period"`
	Amount    int    `json:"amount"`
	Status    string `json:"status"`
	PayDate   string `json:"pay_date"`
	Method    string `json:"method"`
	Note      string `json:"note"`
}

// Create appends a dues row (admin only; rows are immutable after).
func (s *PaymentService) Create(in PaymentInput) (models.Payment, error) {
	fe := fieldErrors{}
	if in.Amount < 0 {
		fe["amount"] = "금액은 0 이상이어야 합니다"
	}
	if in.Status != models.PaymentPaid && in.Status != models.PaymentUnpaid {
		fe["status"] = "상태는 납부 또는 미납이어야 합니다"
	}
	method := strings.TrimSpace(in.Method)
	valid := false
	for _, m := range models.PaymentMethods {
		if m == method {
			valid = true
			break
		}
	}
	if !valid {
		fe["method"] = "방법은 현금/카드/이체/기타 중 하나여야 합니다"
	}
	payDate, err := time.Parse(store.DateLayout, strings.TrimSpace(in.PayDate))
	if err != nil {
		fe["pay_date"] = "납부일은 YYYY-MM-DD 형식이어야 합니다"
	}
	if err := fe.err(); err != nil {
		return models.Payment{}, err
	}

	snap, err := s.store.LoadAll()
	if err != nil {
		return models.Payment{}, err
	}
	if snap.FindStudentByID(in.StudentID) == nil {
		return models.Payment{}, &ValidationError{Fields: fieldErrors{"student_id": "존재하지 않는 학생입니다"}}
	}

	p := models.Payment{
		ID:        snap.NextPaymentID(),
		StudentID: in.StudentID,
		Period:    in.Period,
		Amount:    in.Amount,
		Status:    in.Status,
		PayDate:   payDate,
		Method:    method,
		Note:      in.Note,
	}
	snap.Payments = append(snap.Payments, p)
	if err := s.store.SaveAll(snap); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// List returns the rows the session may read, newest first for students.
func (s *PaymentService) List(sess models.Session) ([]models.Payment, error) {
	snap, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	if sess.IsAdmin() {
		return snap.Payments, nil
	}
	return snap.PaymentsFor(sess.StudentID), nil
}
