package model

import "time"

// Assignment pairs one evaluator with one evaluatee for a bounded active
// period. It is the authorization root: results, comments, signatures and
// attachments all derive their access rules from assignment membership.
//
// swagger:model Assignment
type Assignment struct {
	BaseModel
	EvaluatorID uint       `gorm:"not null;index" json:"evaluatorId"`
	EvaluateeID uint       `gorm:"not null;index" json:"evaluateeId"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`

	Evaluator *User `gorm:"foreignKey:EvaluatorID" json:"evaluator,omitempty"`
	Evaluatee *User `gorm:"foreignKey:EvaluateeID" json:"evaluatee,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
