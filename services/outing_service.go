package services

import (
	"strings"
	"time"

	"github.com/victorrChoi/dalgubul/models"
	"github.com/victorrChoi/dalgubul/store"
)

type OutingService struct {
	store *store.Store
}

func NewOutingService(st *store.Store) *OutingService {
	return &OutingService{store: st}
}

type OutingInput struct {
	StudentID int    `json:"student_id"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"` // honored for admin sessions only
}

var outingStatuses = map[string]bool{
	models.OutingRequested: true,
	models.OutingPending:   true,
	models.OutingApproved:  true,
	models.OutingRejected:  true,
	models.OutingCancelled: true,
}

// Create files an outing request. Student sessions always create for
// themselves with status 신청; admin sessions pick the student and may set
// any initial status. The referenced student must exist.
func (s *OutingService) Create(sess models.Session, in OutingInput) (models.Outing, error) {
	status := strings.TrimSpace(in.Status)
	studentID := in.StudentID
	if !sess.IsAdmin() {
		studentID = sess.StudentID
		status = models.OutingRequested
	} else if status == "" {
		status = models.OutingRequested
	}

	fe := fieldErrors{}
	if in.Type != models.OutingDay && in.Type != models.OutingOvernight {
		fe["type"] = "구분은 외출 또는 외박이어야 합니다"
	}
	if !outingStatuses[status] {
		fe["status"] = "올바르지 않은 상태입니다"
	}
	start, err := time.Parse(store.DateLayout, strings.TrimSpace(in.StartDate))
	if err != nil {
		fe["start_date"] = "시작일은 YYYY-MM-DD 형식이어야 합니다"
	}
	end, err := time.Parse(store.DateLayout, strings.TrimSpace(in.EndDate))
	if err != nil {
		fe["end_date"] = "종료일은 YYYY-MM-DD 형식이어야 합니다"
	}
	if err := fe.err(); err != nil {
		return models.Outing{}, err
	}

	snap, err := s.store.LoadAll()
	if err != nil {
		return models.Outing{}, err
	}
	if snap.FindStudentByID(studentID) == nil {
		return models.Outing{}, &ValidationError{Fields: fieldErrors{"student_id": "존재하지 않는 학생입니다"}}
	}

	o := models.Outing{
		ID:        snap.NextOutingID(),
		StudentID: studentID,
		Type:      in.Type,
		Reason:    in.Reason,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	snap.Outings = append(snap.Outings, o)
	if err := s.store.SaveAll(snap); err != nil {
		return models.Outing{}, err
	}
	return o, nil
}

// Cancel moves a student's own request from 신청/대기 to 취소. A target that
// is missing, owned by someone else, or no longer eligible is a silent
// no-op: the caller re-reads current state anyway.
func (s *OutingService) Cancel(sess models.Session, id int) error {
	snap, err := s.store.LoadAll()
	if err != nil {
		return err
	}
	for i := range snap.Outings {
		o := &snap.Outings[i]
		if o.ID != id || !sess.Owns(o.StudentID) || !o.Cancellable() {
			continue
		}
		o.Status = models.OutingCancelled
		return s.store.SaveAll(snap)
	}
	return nil
}

// SetStatus is the admin's in-place status edit.
func (s *OutingService) SetStatus(id int, status string) (models.Outing, error) {
	if !outingStatuses[status] {
		return models.Outing{}, &ValidationError{Fields: fieldErrors{"status": "올바르지 않은 상태입니다"}}
	}
	snap, err := s.store.LoadAll()
	if err != nil {
		return models.Outing{}, err
	}
	for i := range snap.Outings {
		if snap.Outings[i].ID != id {
			continue
		}
		snap.Outings[i].Status = status
		updated := snap.Outings[i]
		if err := s.store.SaveAll(snap); err != nil {
			return models.Outing{}, err
		}
		return updated, nil
	}
	return models.Outing{}, ErrNotFound
}

// List returns the rows the session may read: everything for admins, the
// student's own rows (newest first) otherwise.
func (s *OutingService) List(sess models.Session) ([]models.Outing, error) {
	snap, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	if sess.IsAdmin() {
		return snap.Outings, nil
	}
	return snap.OutingsFor(sess.StudentID), nil
}
