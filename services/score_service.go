package services

import (
	"strings"
	"time"

	"github.com/victorrChoi/dalgubul/models"
	"github.com/victorrChoi/dalgubul/store"
)

type ScoreService struct {
	store *store.Store
}

func NewScoreService(st *store.Store) *ScoreService {
	return &ScoreService{store: st}
}

type ScoreInput struct {
	StudentID int    `json:"student_id"`
	Category  string `json:"category"`
	Points    int    `json:"points"` // entered magnitude; sign is normalized here
	Reason    string `json:"reason"`
	Date      string `json:"date"`
}

// NormalizePoints pins the stored sign to the category: 상점 rows carry the
// magnitude, 벌점 rows its negation.
func NormalizePoints(category string, points int) int {
	m := points
	if m < 0 {
		m = -m
	}
	if category == models.ScoreDemerit {
		return -m
	}
	return m
}

// Create appends a merit/demerit row (admin only; rows are immutable after).
func (s *ScoreService) Create(in ScoreInput) (models.Score, error) {
	fe := fieldErrors{}
	if in.Category != models.ScoreMerit && in.Category != models.ScoreDemerit {
		fe["category"] = "구분은 상점 또는 벌점이어야 합니다"
	}
	date, err := time.Parse(store.DateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		fe["date"] = "일자는 YYYY-MM-DD 형식이어야 합니다"
	}
	if err := fe.err(); err != nil {
		return models.Score{}, err
	}

	snap, err := s.store.LoadAll()
	if err != nil {
		return models.Score{}, err
	}
	if snap.FindStudentByID(in.StudentID) == nil {
		return models.Score{}, &ValidationError{Fields: fieldErrors{"student_id": "존재하지 않는 학생입니다"}}
	}

	sc := models.Score{
		ID:        snap.NextScoreID(),
		StudentID: in.StudentID,
		Category:  in.Category,
		Points:    NormalizePoints(in.Category, in.Points),
		Reason:    in.Reason,
		Date:      date,
	}
	snap.Scores = append(snap.Scores, sc)
	if err := s.store.SaveAll(snap); err != nil {
		return models.Score{}, err
	}
	return sc, nil
}

// List returns the rows the session may read, newest first for students.
func (s *ScoreService) List(sess models.Session) ([]models.Score, error) {
	snap, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	if sess.IsAdmin() {
		return snap.Scores, nil
	}
	return snap.ScoresFor(sess.StudentID), nil
}

// Totals are the running merit/demerit sums shown on the student dashboard.
type Totals struct {
	TotalMerit   int `json:"total_merit"`
	TotalDemerit int `json:"total_demerit"`
	Net          int `json:"net"`
}

// TotalsFor sums one student's rows: merit = positives, demerit = negatives.
func (s *ScoreService) TotalsFor(studentID int) (Totals, error) {
	snap, err := s.store.LoadAll()
	if err != nil {
		return Totals{}, err
	}
	var t Totals
	for _, sc := range snap.ScoresFor(studentID) {
		if sc.Points > 0 {
			t.TotalMerit += sc.Points
		} else if sc.Points < 0 {
			t.TotalDemerit += sc.Points
		}
		t.Net += sc.Points
	}
	return t, nil
}
