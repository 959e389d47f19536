package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/victorrChoi/dalgubul/models"
	"github.com/victorrChoi/dalgubul/store"
)

func TestSummarize(t *testing.T) {
	snap := &store.Snapshot{
		Students: []models.Student{
			{ID: 1, Name: "Kim", StudentNo: "1"},
			{ID: 2, Name: "Lee", StudentNo: "2"},
			{ID: 3, Name: "Park", StudentNo: "3"}, // no score rows → omitted
		},
		Scores: []models.Score{
			{ID: 1, StudentID: 1, Points: 5},
			{ID: 2, StudentID: 1, Points: -2},
			{ID: 3, StudentID: 2, Points: -1},
		},
	}

	summary := Summarize(snap)
	assert.Equal(t, []ScoreSummary{
		{Name: "Kim", TotalMerit: 5, TotalDemerit: -2, Net: 3},
		{Name: "Lee", TotalMerit: 0, TotalDemerit: -1, Net: -1},
	}, summary)
}

func TestSummarizeEmptyScores(t *testing.T) {
	snap := &store.Snapshot{Students: []models.Student{{ID: 1, Name: "Kim"}}}
	assert.Empty(t, Summarize(snap))
}

func TestSummarizeGroupsOrphansUnderEmptyName(t *testing.T) {
	snap := &store.Snapshot{
		Scores: []models.Score{{ID: 1, StudentID: 9, Points: -4}},
	}
	summary := Summarize(snap)
	require.Len(t, summary, 1)
	assert.Equal(t, ScoreSummary{Name: "", TotalMerit: 0, TotalDemerit: -4, Net: -4}, summary[0])
}

func TestRenderReportSheets(t *testing.T) {
	out := mustDate(t, "2025-03-10")
	snap := &store.Snapshot{
		Students: []models.Student{{
			ID: 1, Name: "김하늘", StudentNo: "20240101", Gender: "여", Room: "201",
			Phone: "010-1111-2222", ParentPhone: "010-3333-4444", Address: "대구시",
			MiddleSchool: "달구벌중", InDate: mustDate(t, "2024-03-02"), OutDate: &out,
			Password: "secret", Note: "비고",
		}},
		Outings: []models.Outing{{
			ID: 1, StudentID: 1, Type: models.OutingOvernight, Reason: "가족 행사",
			StartDate: mustDate(t, "2024-05-03"), EndDate: mustDate(t, "2024-05-05"),
			Status: models.OutingApproved,
		}},
		Scores: []models.Score{
			{ID: 1, StudentID: 1, Category: models.ScoreMerit, Points: 5, Reason: "봉사", Date: mustDate(t, "2024-04-01")},
			{ID: 2, StudentID: 7, Category: models.ScoreDemerit, Points: -2, Reason: "지각", Date: mustDate(t, "2024-04-02")},
		},
		Payments: []models.Payment{{
			ID: 1, StudentID: 1, Period: "2024-1학기", Amount: 350000,
			Status: models.PaymentPaid, PayDate: mustDate(t, "2024-03-05"), Method: "이체",
		}},
	}

	data, err := Render(snap)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"학생", "외출_외박", "상벌점", "납부", "상벌점_요약"}, f.GetSheetList())

	stuRows, err := f.GetRows("학생")
	require.NoError(t, err)
	require.Len(t, stuRows, 2)
	assert.Equal(t, reportStudentCols, stuRows[0])
	assert.Equal(t, "김하늘", stuRows[1][0])
	assert.NotContains(t, stuRows[1], "secret", "password never leaves the container")

	outRows, err := f.GetRows("외출_외박")
	require.NoError(t, err)
	require.Len(t, outRows, 2)
	assert.Equal(t, []string{"김하늘", "외박", "가족 행사", "2024-05-03", "2024-05-05", "승인"}, outRows[1])

	scoRows, err := f.GetRows("상벌점")
	require.NoError(t, err)
	require.Len(t, scoRows, 3)
	assert.Equal(t, "김하늘", scoRows[1][0])
	// the orphaned row joins to an empty name
	assert.Equal(t, "", scoRows[2][0])
	assert.Equal(t, "벌점", scoRows[2][1])

	sumRows, err := f.GetRows("상벌점_요약")
	require.NoError(t, err)
	require.Len(t, sumRows, 3) // header + orphan group + 김하늘
	assert.Equal(t, reportSummaryCols, sumRows[0])
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(store.DateLayout, s)
	require.NoError(t, err)
	return parsed
}
