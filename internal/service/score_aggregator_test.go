package service

import (
	"testing"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 {
	return &v
}

func TestAggregateScoresEmpty(t *testing.T) {
	summary := AggregateScores(nil)

	assert.Equal(t, model.StatusDraft, summary.Status)
	assert.Zero(t, summary.TotalScore)
	assert.Zero(t, summary.SelfTotal)
	assert.Zero(t, summary.EvaluatorTotal)
	assert.Zero(t, summary.TotalWeight)
}

func TestAggregateScoresNormalizesToHundred(t *testing.T) {
	// Two indicators weighted 30 and 70; the stored scores are already
	// scaled into weight units, so half marks on each sum to 50 of 100.
	rows := []repository.ScoredResult{
		{IndicatorID: 1, SelfScore: score(15), Status: model.StatusSubmitted, Weight: 30},
		{IndicatorID: 2, SelfScore: score(35), Status: model.StatusSubmitted, Weight: 70},
	}

	summary := AggregateScores(rows)

	require.InDelta(t, 100, summary.TotalWeight, 1e-9)
	assert.InDelta(t, 50, summary.TotalScore, 1e-9)
	assert.InDelta(t, 50, summary.SelfTotal, 1e-9)
	assert.Equal(t, model.StatusSubmitted, summary.Status)
}

func TestAggregateScoresEvaluatorPrecedence(t *testing.T) {
	rows := []repository.ScoredResult{
		{IndicatorID: 1, SelfScore: score(10), EvaluatorScore: score(20), Status: model.StatusEvaluated, Weight: 25},
		{IndicatorID: 2, SelfScore: score(5), EvaluatorScore: score(15), Status: model.StatusEvaluated, Weight: 25},
	}

	summary := AggregateScores(rows)

	// Effective score uses the evaluator side: (20+15)/50*100.
	assert.InDelta(t, 70, summary.TotalScore, 1e-9)
	assert.InDelta(t, 30, summary.SelfTotal, 1e-9)
	assert.InDelta(t, 70, summary.EvaluatorTotal, 1e-9)
}

func TestAggregateScoresZeroEvaluatorFallsBackToSelf(t *testing.T) {
	rows := []repository.ScoredResult{
		{IndicatorID: 1, SelfScore: score(12), EvaluatorScore: score(0), Status: model.StatusEvaluated, Weight: 20},
	}

	summary := AggregateScores(rows)

	// An evaluator score of zero means "not scored", so the self score counts.
	assert.InDelta(t, 60, summary.TotalScore, 1e-9)
}

func TestAggregateScoresNilScoresCountAsZero(t *testing.T) {
	rows := []repository.ScoredResult{
		{IndicatorID: 1, Status: model.StatusDraft, Weight: 40},
		{IndicatorID: 2, SelfScore: score(40), Status: model.StatusSubmitted, Weight: 60},
	}

	summary := AggregateScores(rows)

	assert.InDelta(t, 100, summary.TotalWeight, 1e-9)
	assert.InDelta(t, 40, summary.TotalScore, 1e-9)
}

func TestAggregateScoresOrderInvariant(t *testing.T) {
	rows := []repository.ScoredResult{
		{IndicatorID: 1, SelfScore: score(10), Status: model.StatusSubmitted, Weight: 30},
		{IndicatorID: 2, EvaluatorScore: score(25), Status: model.StatusEvaluated, Weight: 40},
		{IndicatorID: 3, SelfScore: score(8), EvaluatorScore: score(12), Status: model.StatusApproved, Weight: 30},
	}
	reversed := []repository.ScoredResult{rows[2], rows[1], rows[0]}

	assert.Equal(t, AggregateScores(rows), AggregateScores(reversed))
}

func TestAggregateScoresStatusHighestWins(t *testing.T) {
	rows := []repository.ScoredResult{
		{IndicatorID: 1, Status: model.StatusDraft, Weight: 10},
		{IndicatorID: 2, Status: model.StatusApproved, Weight: 10},
		{IndicatorID: 3, Status: model.StatusSubmitted, Weight: 10},
	}

	summary := AggregateScores(rows)

	assert.Equal(t, model.StatusApproved, summary.Status)
}

func TestAggregateScoresNoWeightSkipsNormalization(t *testing.T) {
	rows := []repository.ScoredResult{
		{IndicatorID: 1, SelfScore: score(3), Status: model.StatusSubmitted, Weight: 0},
	}

	summary := AggregateScores(rows)

	// Nothing to normalize against; raw sums pass through.
	assert.InDelta(t, 3, summary.TotalScore, 1e-9)
	assert.Zero(t, summary.TotalWeight)
}
