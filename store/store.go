// Package store persists the four dormitory tables (Students, Outings,
// Scores, Payments) in a single xlsx workbook. Every mutation follows the
// load-all → mutate → save-all discipline: LoadAll returns a full snapshot of
// the container and SaveAll rewrites the whole file atomically.
package store

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/victorrChoi/dalgubul/models"
)

// ErrConflict is returned by SaveAll when the container changed on disk since
// the snapshot was loaded. The caller must reload and reapply its mutation.
var ErrConflict = errors.New("container changed since load")

// DateLayout is the calendar-date form used in workbook cells.
const DateLayout = "2006-01-02"

// Sheet names inside the container.
const (
	SheetStudents = "Students"
	SheetOutings  = "Outings"
	SheetScores   = "Scores"
	SheetPayments = "Payments"
)

// Fixed column sets. Cells are stored under English headers; Korean labels
// are a display concern of the report builder.
var (
	studentCols = []string{"ID", "Name", "StudentNo", "Gender", "Room", "Phone", "ParentPhone", "Address", "MiddleSchool", "InDate", "OutDate", "Password", "Note"}
	outingCols  = []string{"ID", "StudentID", "Type", "Reason", "StartDate", "EndDate", "Status"}
	scoreCols   = []string{"ID", "StudentID", "Category", "Points", "Reason", "Date"}
	paymentCols = []string{"ID", "StudentID", "Period", "Amount", "Status", "PayDate", "Method", "Note"}
)

type Store struct {
	path string
}

func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the container location.
func (s *Store) Path() string { return s.path }

// LoadAll reads the whole container. A missing container is first created
// with the four header-only sheets. Missing cells come back as empty strings
// and non-numeric ID cells are coerced to 0 (they never contribute to NextID).
func (s *Store) LoadAll() (*Snapshot, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	defer f.Close()

	snap := &Snapshot{token: sha256.Sum256(raw)}

	for _, r := range sheetRows(f, SheetStudents, studentCols) {
		out := parseDatePtr(r["OutDate"])
		snap.Students = append(snap.Students, models.Student{
			ID:           atoiOr0(r["ID"]),
			Name:         r["Name"],
			StudentNo:    r["StudentNo"],
			Gender:       r["Gender"],
			Room:         r["Room"],
			Phone:        r["Phone"],
			ParentPhone:  r["ParentPhone"],
			Address:      r["Address"],
			MiddleSchool: r["MiddleSchool"],
			InDate:       parseDate(r["InDate"]),
			OutDate:      out,
			Password:     r["Password"],
			Note:         r["Note"],
		})
	}
	for _, r := range sheetRows(f, SheetOutings, outingCols) {
		snap.Outings = append(snap.Outings, models.Outing{
			ID:        atoiOr0(r["ID"]),
			StudentID: atoiOr0(r["StudentID"]),
			Type:      r["Type"],
			Reason:    r["Reason"],
			StartDate: parseDate(r["StartDate"]),
			EndDate:   parseDate(r["EndDate"]),
			Status:    r["Status"],
		})
	}
	for _, r := range sheetRows(f, SheetScores, scoreCols) {
		snap.Scores = append(snap.Scores, models.Score{
			ID:        atoiOr0(r["ID"]),
			StudentID: atoiOr0(r["StudentID"]),
			Category:  r["Category"],
			Points:    atoiOr0(r["Points"]),
			Reason:    r["Reason"],
			Date:      parseDate(r["Date"]),
		})
	}
	for _, r := range sheetRows(f, SheetPayments, paymentCols) {
		snap.Payments = append(snap.Payments, models.Payment{
			ID:        atoiOr0(r["ID"]),
			StudentID: atoiOr0(r["StudentID"]),
			Period:    r["Period"],
			Amount:    atoiOr0(r["Amount"]),
			Status:    r["Status"],
			PayDate:   parseDate(r["PayDate"]),
			Method:    r["Method"],
			Note:      r["Note"],
		})
	}
	return snap, nil
}

// SaveAll rewrites the whole container from the snapshot. The write is
// all-or-nothing: the workbook is rendered to a temp file and renamed over
// the container, so a reader never observes partially written tables.
// SaveAll fails with ErrConflict when the container's bytes no longer match
// the snapshot's load token (another writer got there first).
func (s *Store) SaveAll(snap *Snapshot) error {
	current, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		if sha256.Sum256(current) != snap.token {
			return ErrConflict
		}
	case errors.Is(err, os.ErrNotExist):
		// Container vanished since load; the rewrite below recreates it.
	default:
		return fmt.Errorf("stat container: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := renderWorkbook(f, snap); err != nil {
		return err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("render container: %w", err)
	}
	if err := s.replaceFile(buf.Bytes()); err != nil {
		return err
	}
	snap.token = sha256.Sum256(buf.Bytes())
	return nil
}

// ensureFile creates the container with four header-only sheets on first use.
func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat container: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := renderWorkbook(f, &Snapshot{}); err != nil {
		return err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("render container: %w", err)
	}
	return s.replaceFile(buf.Bytes())
}

// replaceFile swaps the container content in one rename.
func (s *Store) replaceFile(b []byte) error {
	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write container: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace container: %w", err)
	}
	return nil
}

func renderWorkbook(f *excelize.File, snap *Snapshot) error {
	if err := f.SetSheetName(f.GetSheetName(0), SheetStudents); err != nil {
		return fmt.Errorf("render container: %w", err)
	}
	for _, name := range []string{SheetOutings, SheetScores, SheetPayments} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("render container: %w", err)
		}
	}

	if err := writeSheet(f, SheetStudents, studentCols, len(snap.Students), func(i int) []any {
		st := snap.Students[i]
		return []any{st.ID, st.Name, st.StudentNo, st.Gender, st.Room, st.Phone, st.ParentPhone, st.Address, st.MiddleSchool, formatDate(st.InDate), formatDatePtr(st.OutDate), st.Password, st.Note}
	}); err != nil {
		return err
	}
	if err := writeSheet(f, SheetOutings, outingCols, len(snap.Outings), func(i int) []any {
		o := snap.Outings[i]
		return []any{o.ID, o.StudentID, o.Type, o.Reason, formatDate(o.StartDate), formatDate(o.EndDate), o.Status}
	}); err != nil {
		return err
	}
	if err := writeSheet(f, SheetScores, scoreCols, len(snap.Scores), func(i int) []any {
		sc := snap.Scores[i]
		return []any{sc.ID, sc.StudentID, sc.Category, sc.Points, sc.Reason, formatDate(sc.Date)}
	}); err != nil {
		return err
	}
	return writeSheet(f, SheetPayments, paymentCols, len(snap.Payments), func(i int) []any {
		p := snap.Payments[i]
		return []any{p.ID, p.StudentID, p.Period, p.Amount, p.Status, formatDate(p.PayDate), p.Method, p.Note}
	})
}

func writeSheet(f *excelize.File, sheet string, cols []string, n int, row func(i int) []any) error {
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		cells := row(i)
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write %s row: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("write %s row: %w", sheet, err)
		}
	}
	return nil
}

// sheetRows reads a sheet into header-keyed maps, normalizing short rows to
// empty-string cells. A sheet that is missing entirely reads as empty.
func sheetRows(f *excelize.File, sheet string, cols []string) []map[string]string {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil
	}
	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[h] = i
	}
	out := make([]map[string]string, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		r := make(map[string]string, len(cols))
		for _, c := range cols {
			i, ok := idx[c]
			if !ok || i >= len(raw) {
				r[c] = ""
				continue
			}
			r[c] = raw[i]
		}
		out = append(out, r)
	}
	return out
}
