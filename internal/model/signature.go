package model

import "time"

// Signature records one evaluator signing off an evaluatee's evaluation
// under an assignment. Each evaluator may sign a given pair exactly once.
//
// swagger:model Signature
type Signature struct {
	BaseModel
	EvaluateeID   uint      `gorm:"not null;uniqueIndex:idx_signature_triple,priority:1" json:"evaluateeId"`
	AssignmentID  uint      `gorm:"not null;uniqueIndex:idx_signature_triple,priority:2" json:"assignmentId"`
	EvaluatorID   uint      `gorm:"not null;uniqueIndex:idx_signature_triple,priority:3" json:"evaluatorId"`
	SignatureData string    `gorm:"type:mediumtext;not null" json:"signatureData"`
	SignedAt      time.Time `json:"signedAt"`

	Evaluator *User `gorm:"foreignKey:EvaluatorID" json:"evaluator,omitempty"`
}

func (Signature) TableName() string {
	return "signatures"
}
