package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/victorrChoi/dalgubul/store"
)

// ReportService renders the downloadable workbook. It is read-only: the
// whole document derives from one freshly loaded snapshot.
type ReportService struct {
	store *store.Store
}

func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// ScoreSummary is one row of the 상벌점_요약 sheet: per-student merit and
// demerit totals plus the net. Only students with at least one score row
// appear; rows orphaned by a non-cascading delete group under the empty name.
type ScoreSummary struct {
	Name         string `json:"name"`
	TotalMerit   int    `json:"total_merit"`
	TotalDemerit int    `json:"total_demerit"`
	Net          int    `json:"net"`
}

// Summarize groups the score rows by the owning student's name, sorted by
// name. Merit = sum of positive points, demerit = sum of negative points,
// both zero when a student has rows only on the other side.
func Summarize(snap *store.Snapshot) []ScoreSummary {
	byName := map[string]*ScoreSummary{}
	for _, sc := range snap.Scores {
		name := snap.NameFor(sc.StudentID)
		row, ok := byName[name]
		if !ok {
			row = &ScoreSummary{Name: name}
			byName[name] = row
		}
		if sc.Points > 0 {
			row.TotalMerit += sc.Points
		} else if sc.Points < 0 {
			row.TotalDemerit += sc.Points
		}
		row.Net += sc.Points
	}

	out := make([]ScoreSummary, 0, len(byName))
	for _, row := range byName {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Korean display headers for each report sheet.
var (
	reportStudentCols = []string{"이름", "학번", "성별", "호실", "학생연락처", "보호자연락처", "주소", "출신중학교", "입사일", "퇴사일", "특이사항"}
	reportOutingCols  = []string{"이름", "구분", "사유", "시작일", "종료일", "상태"}
	reportScoreCols   = []string{"이름", "구분", "점수", "사유_비고", "일자"}
	reportPaymentCols = []string{"이름", "납부_회차_기간", "금액", "상태", "납부일", "방법", "비고"}
	reportSummaryCols = []string{"이름", "총 상점", "총 벌점", "순점수"}
)

// Build loads a snapshot and renders the five-sheet report: 학생 (without ID
// and password), 외출_외박/상벌점/납부 joined with the student name, and the
// 상벌점_요약 aggregate.
func (s *ReportService) Build() ([]byte, error) {
	snap, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	return Render(snap)
}

// Render builds the report workbook from an already loaded snapshot.
func Render(snap *store.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), "학생"); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	for _, name := range []string{"외출_외박", "상벌점", "납부", "상벌점_요약"} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("render report: %w", err)
		}
	}

	if err := reportSheet(f, "학생", reportStudentCols, len(snap.Students), func(i int) []any {
		st := snap.Students[i]
		return []any{st.Name, st.StudentNo, st.Gender, st.Room, st.Phone, st.ParentPhone, st.Address, st.MiddleSchool, dateCell(st.InDate), datePtrCell(st.OutDate), st.Note}
	}); err != nil {
		return nil, err
	}
	if err := reportSheet(f, "외출_외박", reportOutingCols, len(snap.Outings), func(i int) []any {
		o := snap.Outings[i]
		return []any{snap.NameFor(o.StudentID), o.Type, o.Reason, dateCell(o.StartDate), dateCell(o.EndDate), o.Status}
	}); err != nil {
		return nil, err
	}
	if err := reportSheet(f, "상벌점", reportScoreCols, len(snap.Scores), func(i int) []any {
		sc := snap.Scores[i]
		return []any{snap.NameFor(sc.StudentID), sc.Category, sc.Points, sc.Reason, dateCell(sc.Date)}
	}); err != nil {
		return nil, err
	}
	if err := reportSheet(f, "납부", reportPaymentCols, len(snap.Payments), func(i int) []any {
		p := snap.Payments[i]
		return []any{snap.NameFor(p.StudentID), p.Period, p.Amount, p.Status, dateCell(p.PayDate), p.Method, p.Note}
	}); err != nil {
		return nil, err
	}
	summary := Summarize(snap)
	if err := reportSheet(f, "상벌점_요약", reportSummaryCols, len(summary), func(i int) []any {
		row := summary[i]
		return []any{row.Name, row.TotalMerit, row.TotalDemerit, row.Net}
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func reportSheet(f *excelize.File, sheet string, cols []string, n int, row func(i int) []any) error {
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("report sheet %s: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		cells := row(i)
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("report sheet %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("report sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func dateCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(store.DateLayout)
}

func datePtrCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dateCell(*t)
}
