package service

import (
	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
)

// FinalSummary is the weighted, normalized outcome of one evaluatee under
// one assignment. Distinct from the report composer's unweighted averages;
// the two are never merged.
type FinalSummary struct {
	EvaluateeID    uint               `json:"evaluatee_id"`
	AssignmentID   uint               `json:"assignment_id"`
	TotalScore     float64            `json:"total_score"`
	SelfTotal      float64            `json:"self_total"`
	EvaluatorTotal float64            `json:"evaluator_total"`
	TotalWeight    float64            `json:"total_weight"`
	Status         model.ResultStatus `json:"status"`
}

// AggregateScores folds result rows into the weighted final summary.
//
// Scores are stored pre-scaled into weight units, so this only sums. The
// effective score per indicator is the evaluator's whenever it is present
// and positive, the self score otherwise. When any weight was seen, every
// total is normalized onto a 0-100 scale against the weight actually
// present — indicators without a result row stay out of the denominator.
// The aggregate status is the highest status across rows; an empty set is
// draft with zero totals (callers tell "no data" apart from "scored zero"
// by TotalWeight == 0).
func AggregateScores(rows []repository.ScoredResult) FinalSummary {
	summary := FinalSummary{Status: model.StatusDraft}

	for _, row := range rows {
		self := scoreOrZero(row.SelfScore)
		evaluator := scoreOrZero(row.EvaluatorScore)

		summary.SelfTotal += self
		summary.EvaluatorTotal += evaluator
		summary.TotalWeight += row.Weight

		if evaluator > 0 {
			summary.TotalScore += evaluator
		} else {
			summary.TotalScore += self
		}

		if row.Status.Rank() > summary.Status.Rank() {
			summary.Status = row.Status
		}
	}

	if summary.TotalWeight > 0 {
		summary.TotalScore = summary.TotalScore / summary.TotalWeight * 100
		summary.SelfTotal = summary.SelfTotal / summary.TotalWeight * 100
		summary.EvaluatorTotal = summary.EvaluatorTotal / summary.TotalWeight * 100
	}

	return summary
}

func scoreOrZero(score *float64) float64 {
	if score == nil {
		return 0
	}
	return *score
}
