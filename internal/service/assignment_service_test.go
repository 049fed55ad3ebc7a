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

func newAssignmentService(t *testing.T) (*AssignmentService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return NewAssignmentService(repository.NewAssignmentRepository(db), repository.NewUserRepository(db)), mock
}

func expectPairUsers(mock sqlmock.Sqlmock, evaluatorID, evaluateeID uint) {
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(evaluatorID, "evaluator", model.Evaluator, true))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(evaluateeID, "evaluatee", model.Evaluatee, true))
}

func TestCreateAssignmentRejectsSelfPair(t *testing.T) {
	svc, mock := newAssignmentService(t)

	_, err := svc.Create(AssignmentInput{EvaluatorID: 4, EvaluateeID: 4})

	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignmentDuplicateActivePairConflicts(t *testing.T) {
	svc, mock := newAssignmentService(t)
	expectPairUsers(mock, 1, 2)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `assignments`").WillReturnRows(countRow(1))

	_, err := svc.Create(AssignmentInput{EvaluatorID: 1, EvaluateeID: 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkCreateSkipsDuplicateAndCreatesRest(t *testing.T) {
	svc, mock := newAssignmentService(t)
	expectPairUsers(mock, 1, 2)
	expectPairUsers(mock, 1, 3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `assignments`").WillReturnRows(countRow(1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `assignments`").WillReturnRows(countRow(0))
	mock.ExpectExec("INSERT INTO `assignments`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	result, err := svc.BulkCreate(BulkAssignmentInput{EvaluatorID: 1, EvaluateeIDs: []uint{2, 3}})

	require.NoError(t, err)
	assert.Equal(t, []uint{2}, result.Skipped)
	require.Len(t, result.Created, 1)
	assert.Equal(t, uint(3), result.Created[0].EvaluateeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignmentRejectsEvaluateeRoleEvaluator(t *testing.T) {
	svc, mock := newAssignmentService(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(userRow(1, "not an evaluator", model.Evaluatee, true))

	_, err := svc.Create(AssignmentInput{EvaluatorID: 1, EvaluateeID: 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
