package service

import (
	"testing"

	"perf_eval_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func activeAssignment() *model.Assignment {
	return &model.Assignment{
		EvaluatorID: 10,
		EvaluateeID: 20,
		IsActive:    true,
	}
}

func TestCanActAdminAlwaysAllowed(t *testing.T) {
	admin := Actor{ID: 99, Role: model.Admin}
	assignment := activeAssignment()
	assignment.IsActive = false

	assert.True(t, CanAct(admin, assignment, ActionRead))
	assert.True(t, CanAct(admin, assignment, ActionWrite))
}

func TestCanActEvaluatorMustMatch(t *testing.T) {
	assignment := activeAssignment()

	assert.True(t, CanAct(Actor{ID: 10, Role: model.Evaluator}, assignment, ActionWrite))
	assert.False(t, CanAct(Actor{ID: 11, Role: model.Evaluator}, assignment, ActionRead))
}

func TestCanActEvaluateeMustMatch(t *testing.T) {
	assignment := activeAssignment()

	assert.True(t, CanAct(Actor{ID: 20, Role: model.Evaluatee}, assignment, ActionWrite))
	assert.False(t, CanAct(Actor{ID: 21, Role: model.Evaluatee}, assignment, ActionRead))
}

func TestCanActInactiveBlocksWritesNotReads(t *testing.T) {
	assignment := activeAssignment()
	assignment.IsActive = false

	evaluator := Actor{ID: 10, Role: model.Evaluator}
	evaluatee := Actor{ID: 20, Role: model.Evaluatee}

	assert.True(t, CanAct(evaluator, assignment, ActionRead))
	assert.False(t, CanAct(evaluator, assignment, ActionWrite))
	assert.True(t, CanAct(evaluatee, assignment, ActionRead))
	assert.False(t, CanAct(evaluatee, assignment, ActionWrite))
}

func TestCanActWrongSideDenied(t *testing.T) {
	assignment := activeAssignment()

	// The evaluatee cannot act through the evaluator role and vice versa.
	assert.False(t, CanAct(Actor{ID: 20, Role: model.Evaluator}, assignment, ActionRead))
	assert.False(t, CanAct(Actor{ID: 10, Role: model.Evaluatee}, assignment, ActionRead))
}

func TestCanActNilAssignmentDenied(t *testing.T) {
	assert.False(t, CanAct(Actor{ID: 1, Role: model.Admin}, nil, ActionRead))
}

func TestCanActUnknownRoleDenied(t *testing.T) {
	assert.False(t, CanAct(Actor{ID: 10, Role: "intern"}, activeAssignment(), ActionRead))
}
