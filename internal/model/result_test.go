package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusDraft.Rank())
	assert.Equal(t, 1, StatusSubmitted.Rank())
	assert.Equal(t, 2, StatusEvaluated.Rank())
	assert.Equal(t, 3, StatusApproved.Rank())
	assert.Equal(t, -1, ResultStatus("bogus").Rank())
}

func TestResultStatusCanAdvance(t *testing.T) {
	assert.True(t, StatusDraft.CanAdvance(StatusSubmitted))
	assert.True(t, StatusSubmitted.CanAdvance(StatusApproved))
	assert.True(t, StatusEvaluated.CanAdvance(StatusEvaluated), "idempotent writes stay legal")

	assert.False(t, StatusApproved.CanAdvance(StatusEvaluated))
	assert.False(t, StatusSubmitted.CanAdvance(StatusDraft))
	assert.False(t, StatusDraft.CanAdvance(ResultStatus("bogus")))
}

func TestStatusesBelow(t *testing.T) {
	assert.ElementsMatch(t,
		[]ResultStatus{StatusDraft, StatusSubmitted, StatusEvaluated},
		StatusesBelow(StatusApproved))
	assert.ElementsMatch(t,
		[]ResultStatus{StatusDraft},
		StatusesBelow(StatusSubmitted))
	assert.Empty(t, StatusesBelow(StatusDraft))
}
