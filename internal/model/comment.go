package model

// swagger:model Comment
type Comment struct {
	BaseModel
	AssignmentID uint   `gorm:"not null;index" json:"assignmentId"`
	EvaluateeID  uint   `gorm:"not null;index" json:"evaluateeId"`
	EvaluatorID  uint   `gorm:"not null;index" json:"evaluatorId"`
	CommentText  string `gorm:"type:text;not null" json:"commentText"`
	CommentType  string `gorm:"size:50;default:'general'" json:"commentType"`

	Evaluator *User `gorm:"foreignKey:EvaluatorID" json:"evaluator,omitempty"`
	Evaluatee *User `gorm:"foreignKey:EvaluateeID" json:"evaluatee,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
