package service

import (
	"testing"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResultService(t *testing.T) (*ResultService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	svc := NewResultService(
		repository.NewResultRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewIndicatorRepository(db),
		nil,
	)
	return svc, mock
}

// expectAssignmentLookup serves the gate's assignment fetch including its
// evaluator/evaluatee preloads.
func expectAssignmentLookup(mock sqlmock.Sqlmock, id, evaluatorID, evaluateeID uint) {
	mock.ExpectQuery("SELECT (.+) FROM `assignments`").
		WillReturnRows(assignmentRow(id, evaluatorID, evaluateeID, true))
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(emptyRows())
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(emptyRows())
}

func TestEvaluateRejectsEvaluateeOutsideAssignment(t *testing.T) {
	svc, mock := newResultService(t)
	expectAssignmentLookup(mock, 5, 9, 7)

	evaluator := Actor{ID: 9, Role: model.Evaluator}
	_, err := svc.Evaluate(evaluator, 8, 3, 5, score(12), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrValidation)
	// No write expectations were queued, so nothing may have been written.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEvaluatorBulkRejectsEvaluateeOutsideAssignment(t *testing.T) {
	svc, mock := newResultService(t)
	expectAssignmentLookup(mock, 5, 9, 7)

	items := []EvaluatorScoreItem{{IndicatorID: 3, EvaluatorScore: score(10)}}
	_, err := svc.SaveEvaluatorBulk(Actor{ID: 9, Role: model.Evaluator}, 8, 5, items)

	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRejectsEvaluateeOutsideAssignment(t *testing.T) {
	svc, mock := newResultService(t)
	expectAssignmentLookup(mock, 5, 9, 7)

	_, err := svc.Approve(Actor{ID: 9, Role: model.Evaluator}, 8, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEvaluatorBulkPairedEvaluateeWrites(t *testing.T) {
	svc, mock := newResultService(t)
	expectAssignmentLookup(mock, 5, 9, 7)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `results`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `results`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	items := []EvaluatorScoreItem{{IndicatorID: 3, EvaluatorScore: score(10)}}
	saved, err := svc.SaveEvaluatorBulk(Actor{ID: 9, Role: model.Evaluator}, 7, 5, items)

	require.NoError(t, err)
	assert.Equal(t, 1, saved.Saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
