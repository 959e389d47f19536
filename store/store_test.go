package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/victorrChoi/dalgubul/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "data.xlsx"))
}

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLoadAllBootstrapsHeaderOnlyContainer(t *testing.T) {
	st := tempStore(t)

	snap, err := st.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, snap.Students)
	assert.Empty(t, snap.Outings)
	assert.Empty(t, snap.Scores)
	assert.Empty(t, snap.Payments)

	f, err := excelize.OpenFile(st.Path())
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SheetStudents, SheetOutings, SheetScores, SheetPayments}, f.GetSheetList())

	rows, err := f.GetRows(SheetStudents)
	require.NoError(t, err)
	require.Len(t, rows, 1, "fresh container must be header-only")
	assert.Equal(t, studentCols, rows[0])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := tempStore(t)
	snap, err := st.LoadAll()
	require.NoError(t, err)

	out := date("2025-03-10")
	snap.Students = append(snap.Students, models.Student{
		ID: 1, Name: "김하늘", StudentNo: "20240101", Gender: "여", Room: "201",
		Phone: "010-1111-2222", ParentPhone: "010-3333-4444", Address: "대구시",
		MiddleSchool: "달구벌중", InDate: date("2024-03-02"), OutDate: &out,
		Password: "pw1", Note: "",
	})
	snap.Outings = append(snap.Outings, models.Outing{
		ID: 1, StudentID: 1, Type: models.OutingOvernight, Reason: "가족 행사",
		StartDate: date("2024-05-03"), EndDate: date("2024-05-05"), Status: models.OutingRequested,
	})
	snap.Scores = append(snap.Scores, models.Score{
		ID: 1, StudentID: 1, Category: models.ScoreDemerit, Points: -3, Reason: "지각", Date: date("2024-04-01"),
	})
	snap.Payments = append(snap.Payments, models.Payment{
		ID: 1, StudentID: 1, Period: "2024-1학기", Amount: 350000,
		Status: models.PaymentPaid, PayDate: date("2024-03-05"), Method: "이체", Note: "",
	})
	require.NoError(t, st.SaveAll(snap))

	loaded, err := st.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, snap.Students, loaded.Students)
	assert.Equal(t, snap.Outings, loaded.Outings)
	assert.Equal(t, snap.Scores, loaded.Scores)
	assert.Equal(t, snap.Payments, loaded.Payments)

	// saving a loaded snapshot back is idempotent
	require.NoError(t, st.SaveAll(loaded))
	again, err := st.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, loaded.Students, again.Students)
	assert.Equal(t, loaded.Outings, again.Outings)
	assert.Equal(t, loaded.Scores, again.Scores)
	assert.Equal(t, loaded.Payments, again.Payments)
}

func TestBlankOutDateRoundTripsAsNil(t *testing.T) {
	st := tempStore(t)
	snap, err := st.LoadAll()
	require.NoError(t, err)

	snap.Students = append(snap.Students, models.Student{
		ID: 1, Name: "이준", StudentNo: "20240102", InDate: date("2024-03-02"), Password: "pw",
	})
	require.NoError(t, st.SaveAll(snap))

	loaded, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded.Students, 1)
	assert.Nil(t, loaded.Students[0].OutDate)
	assert.Equal(t, "", loaded.Students[0].Note)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 1, NextID([]int{}))
	assert.Equal(t, 6, NextID([]int{1, 3, 5}), "max+1, not count+1")
	assert.Equal(t, 4, NextID([]int{3, 0, 0}), "junk IDs coerce to 0 and never win")
}

func TestNextIDPerTable(t *testing.T) {
	st := tempStore(t)
	snap, err := st.LoadAll()
	require.NoError(t, err)

	assert.Equal(t, 1, snap.NextStudentID())
	snap.Students = append(snap.Students,
		models.Student{ID: 1, Name: "a", StudentNo: "1", Password: "x"},
		models.Student{ID: 7, Name: "b", StudentNo: "2", Password: "x"},
	)
	assert.Equal(t, 8, snap.NextStudentID())
	assert.Equal(t, 1, snap.NextOutingID())
}

func TestSaveAllConflict(t *testing.T) {
	st := tempStore(t)

	first, err := st.LoadAll()
	require.NoError(t, err)
	second, err := st.LoadAll()
	require.NoError(t, err)

	first.Students = append(first.Students, models.Student{ID: 1, Name: "a", StudentNo: "1", Password: "x"})
	require.NoError(t, st.SaveAll(first))

	second.Students = append(second.Students, models.Student{ID: 1, Name: "b", StudentNo: "2", Password: "x"})
	assert.ErrorIs(t, st.SaveAll(second), ErrConflict)

	// the first writer's change must survive
	loaded, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded.Students, 1)
	assert.Equal(t, "a", loaded.Students[0].Name)
}

func TestSaveAllSequentialSavesKeepTokenFresh(t *testing.T) {
	st := tempStore(t)
	snap, err := st.LoadAll()
	require.NoError(t, err)

	snap.Students = append(snap.Students, models.Student{ID: 1, Name: "a", StudentNo: "1", Password: "x"})
	require.NoError(t, st.SaveAll(snap))

	snap.Students[0].Room = "105"
	require.NoError(t, st.SaveAll(snap), "a snapshot saved by its own writer stays current")
}

func TestFindStudentByNo(t *testing.T) {
	st := tempStore(t)
	snap, err := st.LoadAll()
	require.NoError(t, err)
	snap.Students = append(snap.Students,
		models.Student{ID: 1, Name: "김하늘", StudentNo: "20240101", Password: "x"},
		models.Student{ID: 2, Name: "이준", StudentNo: "20240102", Password: "x"},
	)

	found := snap.FindStudentByNo("20240102")
	require.NotNil(t, found)
	assert.Equal(t, 2, found.ID)
	assert.Nil(t, snap.FindStudentByNo("99999999"))
}

func TestNameForMissingStudentIsEmpty(t *testing.T) {
	st := tempStore(t)
	snap, err := st.LoadAll()
	require.NoError(t, err)
	snap.Students = append(snap.Students, models.Student{ID: 1, Name: "김하늘", StudentNo: "20240101", Password: "x"})

	assert.Equal(t, "김하늘", snap.NameFor(1))
	assert.Equal(t, "", snap.NameFor(42))
}

func TestPerStudentFiltersNewestFirst(t *testing.T) {
	st := tempStore(t)
	snap, err := st.LoadAll()
	require.NoError(t, err)
	snap.Outings = append(snap.Outings,
		models.Outing{ID: 1, StudentID: 1, Type: models.OutingDay, Status: models.OutingRequested},
		models.Outing{ID: 2, StudentID: 2, Type: models.OutingDay, Status: models.OutingRequested},
		models.Outing{ID: 3, StudentID: 1, Type: models.OutingOvernight, Status: models.OutingApproved},
	)

	mine := snap.OutingsFor(1)
	require.Len(t, mine, 2)
	assert.Equal(t, 3, mine[0].ID)
	assert.Equal(t, 1, mine[1].ID)
}
