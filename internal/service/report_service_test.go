package service

import (
	"testing"

	"perf_eval_backend/internal/config"
	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReportService(t *testing.T) (*ReportService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	svc := NewReportService(
		repository.NewResultRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewCommentRepository(db),
		repository.NewSignatureRepository(db),
		repository.NewUserRepository(db),
		nil,
		&config.Config{},
		zap.NewNop(),
	)
	return svc, mock
}

func TestIndividualReportEmptyPairYieldsEmptyReport(t *testing.T) {
	svc, mock := newReportService(t)
	expectAssignmentLookup(mock, 5, 9, 7)
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(7, "somebody", model.Evaluatee, true))
	mock.ExpectQuery("SELECT (.+) FROM `results`").WillReturnRows(emptyRows())
	mock.ExpectQuery("SELECT (.+) FROM `comments`").WillReturnRows(emptyRows())
	mock.ExpectQuery("SELECT (.+) FROM `signatures`").WillReturnRows(emptyRows())

	report, err := svc.GetIndividualSummary(Actor{ID: 1, Role: model.Admin}, 7, 5)

	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.Summary.TotalIndicators)
	assert.Zero(t, report.Summary.TotalSelfScore)
	require.NotNil(t, report.Evaluatee)
	assert.Equal(t, uint(7), report.Evaluatee.ID)
	require.NotNil(t, report.Assignment)
	assert.Equal(t, uint(5), report.Assignment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIndividualReportMissingEvaluateeNotFound(t *testing.T) {
	svc, mock := newReportService(t)
	expectAssignmentLookup(mock, 5, 9, 7)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(emptyRows())

	_, err := svc.GetIndividualSummary(Actor{ID: 1, Role: model.Admin}, 42, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
