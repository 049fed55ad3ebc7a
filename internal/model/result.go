package model

import "time"

// ResultStatus is the lifecycle state of a single result row. Transitions
// only ever move forward: draft -> submitted -> evaluated -> approved.
type ResultStatus string

const (
	StatusDraft     ResultStatus = "draft"
	StatusSubmitted ResultStatus = "submitted"
	StatusEvaluated ResultStatus = "evaluated"
	StatusApproved  ResultStatus = "approved"
)

var statusRanks = map[ResultStatus]int{
	StatusDraft:     0,
	StatusSubmitted: 1,
	StatusEvaluated: 2,
	StatusApproved:  3,
}

// Rank orders statuses for "highest wins" aggregation and for the
// forward-only transition guard. Unknown statuses rank below draft.
func (s ResultStatus) Rank() int {
	if r, ok := statusRanks[s]; ok {
		return r
	}
	return -1
}

// CanAdvance reports whether moving from s to target is a legal forward
// transition. Staying on the same status is allowed (idempotent writes).
func (s ResultStatus) CanAdvance(target ResultStatus) bool {
	return target.Rank() >= s.Rank() && target.Rank() >= 0
}

// StatusesBelow lists every status that ranks strictly below target. Used to
// build rank-guarded UPDATE predicates so no write can move a row backward.
func StatusesBelow(target ResultStatus) []ResultStatus {
	below := make([]ResultStatus, 0, len(statusRanks))
	for s, r := range statusRanks {
		if r < target.Rank() {
			below = append(below, s)
		}
	}
	return below
}

// Result is the scoring record for one (assignment, evaluatee, indicator)
// triple. Scores are stored as pre-scaled weight contributions, i.e. the
// writer has already computed (selected_value / max_value) * indicator.weight.
//
// swagger:model Result
type Result struct {
	BaseModel
	AssignmentID uint `gorm:"not null;uniqueIndex:idx_result_triple,priority:1" json:"assignmentId"`
	EvaluateeID  uint `gorm:"not null;uniqueIndex:idx_result_triple,priority:2" json:"evaluateeId"`
	IndicatorID  uint `gorm:"not null;uniqueIndex:idx_result_triple,priority:3" json:"indicatorId"`

	SelfScore       *float64   `json:"selfScore"`
	SelfNote        string     `gorm:"type:text" json:"selfNote"`
	SelfSubmittedAt *time.Time `json:"selfSubmittedAt"`

	EvaluatorScore *float64   `json:"evaluatorScore"`
	EvaluatorID    *uint      `gorm:"index" json:"evaluatorId"`
	EvaluatorNote  string     `gorm:"type:text" json:"evaluatorNote"`
	EvaluatedAt    *time.Time `json:"evaluatedAt"`

	Status ResultStatus `gorm:"type:enum('draft','submitted','evaluated','approved');default:'draft'" json:"status"`

	Indicator *Indicator `gorm:"foreignKey:IndicatorID" json:"indicator,omitempty"`
	Evaluatee *User      `gorm:"foreignKey:EvaluateeID" json:"evaluatee,omitempty"`
	Evaluator *User      `gorm:"foreignKey:EvaluatorID" json:"evaluator,omitempty"`
}

func (Result) TableName() string {
	return "results"
}
