package store

import (
	"crypto/sha256"
	"sort"
	"strconv"
	"time"

	"github.com/victorrChoi/dalgubul/models"
)

// Snapshot is one in-memory copy of the whole container. Callers mutate the
// slices and hand the snapshot back to SaveAll; the token ties the snapshot
// to the container bytes it was loaded from.
type Snapshot struct {
	Students []models.Student
	Outings  []models.Outing
	Scores   []models.Score
	Payments []models.Payment

	token [sha256.Size]byte
}

// NextID returns max(ids)+1, or 1 when the table is empty. Junk rows carry
// ID 0 after loading and never win the max.
func NextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func (s *Snapshot) NextStudentID() int {
	return NextID(collectIDs(len(s.Students), func(i int) int { return s.Students[i].ID }))
}

func (s *Snapshot) NextOutingID() int {
	return NextID(collectIDs(len(s.Outings), func(i int) int { return s.Outings[i].ID }))
}

func (s *Snapshot) NextScoreID() int {
	return NextID(collectIDs(len(s.Scores), func(i int) int { return s.Scores[i].ID }))
}

func (s *Snapshot) NextPaymentID() int {
	return NextID(collectIDs(len(s.Payments), func(i int) int { return s.Payments[i].ID }))
}

func collectIDs(n int, id func(i int) int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = id(i)
	}
	return ids
}

// FindStudentByNo returns the student whose StudentNo matches exactly
// (string comparison), or nil unless exactly one row matches.
func (s *Snapshot) FindStudentByNo(no string) *models.Student {
	var found *models.Student
	for i := range s.Students {
		if s.Students[i].StudentNo == no {
			if found != nil {
				return nil
			}
			found = &s.Students[i]
		}
	}
	return found
}

// FindStudentByID returns the student row, or nil when absent.
func (s *Snapshot) FindStudentByID(id int) *models.Student {
	for i := range s.Students {
		if s.Students[i].ID == id {
			return &s.Students[i]
		}
	}
	return nil
}

// NameFor resolves a StudentID to a name. Orphaned references (after a
// non-cascading delete) resolve to the empty string, never an error.
func (s *Snapshot) NameFor(studentID int) string {
	if st := s.FindStudentByID(studentID); st != nil {
		return st.Name
	}
	return ""
}

// OutingsFor returns the student's outings, newest (highest ID) first.
func (s *Snapshot) OutingsFor(studentID int) []models.Outing {
	var out []models.Outing
	for _, o := range s.Outings {
		if o.StudentID == studentID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// ScoresFor returns the student's scores, newest first.
func (s *Snapshot) ScoresFor(studentID int) []models.Score {
	var out []models.Score
	for _, sc := range s.Scores {
		if sc.StudentID == studentID {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// PaymentsFor returns the student's payments, newest first.
func (s *Snapshot) PaymentsFor(studentID int) []models.Payment {
	var out []models.Payment
	for _, p := range s.Payments {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func atoiOr0(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseDate(s)
	if t.IsZero() {
		return nil
	}
	return &t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
