package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorrChoi/dalgubul/models"
)

func TestNormalizePoints(t *testing.T) {
	assert.Equal(t, 3, NormalizePoints(models.ScoreMerit, 3))
	assert.Equal(t, 3, NormalizePoints(models.ScoreMerit, -3))
	assert.Equal(t, -3, NormalizePoints(models.ScoreDemerit, 3))
	assert.Equal(t, -3, NormalizePoints(models.ScoreDemerit, -3))
	assert.Equal(t, 0, NormalizePoints(models.ScoreDemerit, 0))
}

func TestCreateScoreNormalizesSign(t *testing.T) {
	st := tempStore(t)
	studentSvc := NewStudentService(st)
	scoreSvc := NewScoreService(st)
	created := seedStudent(t, studentSvc, "김하늘", "20240101")

	demerit, err := scoreSvc.Create(ScoreInput{StudentID: created.ID, Category: models.ScoreDemerit, Points: 3, Reason: "지각", Date: "2024-04-01"})
	require.NoError(t, err)
	assert.Equal(t, -3, demerit.Points)

	merit, err := scoreSvc.Create(ScoreInput{StudentID: created.ID, Category: models.ScoreMerit, Points: 3, Reason: "봉사", Date: "2024-04-02"})
	require.NoError(t, err)
	assert.Equal(t, 3, merit.Points)
}

func TestCreateScoreValidation(t *testing.T) {
	st := tempStore(t)
	studentSvc := NewStudentService(st)
	scoreSvc := NewScoreService(st)
	created := seedStudent(t, studentSvc, "김하늘", "20240101")

	_, err := scoreSvc.Create(ScoreInput{StudentID: created.ID, Category: "보통", Points: 1, Date: "2024-04-01"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "category")

	_, err = scoreSvc.Create(ScoreInput{StudentID: 404, Category: models.ScoreMerit, Points: 1, Date: "2024-04-01"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "student_id")
}

func TestTotalsFor(t *testing.T) {
	st := tempStore(t)
	studentSvc := NewStudentService(st)
	scoreSvc := NewScoreService(st)
	created := seedStudent(t, studentSvc, "김하늘", "20240101")

	_, err := scoreSvc.Create(ScoreInput{StudentID: created.ID, Category: models.ScoreMerit, Points: 5, Date: "2024-04-01"})
	require.NoError(t, err)
	_, err = scoreSvc.Create(ScoreInput{StudentID: created.ID, Category: models.ScoreDemerit, Points: 2, Date: "2024-04-02"})
	require.NoError(t, err)

	totals, err := scoreSvc.TotalsFor(created.ID)
	require.NoError(t, err)
	assert.Equal(t, Totals{TotalMerit: 5, TotalDemerit: -2, Net: 3}, totals)
}
