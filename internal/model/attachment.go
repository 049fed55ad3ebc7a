package model

// Attachment is an evidence file uploaded by an evaluatee for one indicator
// under an assignment. The file itself lives in the configured storage
// provider; StoragePath is relative to that provider's root.
//
// swagger:model Attachment
type Attachment struct {
	BaseModel
	AssignmentID   uint   `gorm:"not null;index" json:"assignmentId"`
	EvaluateeID    uint   `gorm:"not null;index" json:"evaluateeId"`
	IndicatorID    uint   `gorm:"not null;index" json:"indicatorId"`
	EvidenceTypeID uint   `gorm:"not null" json:"evidenceTypeId"`
	FileName       string `gorm:"size:255;not null" json:"fileName"`
	MimeType       string `gorm:"size:100" json:"mimeType"`
	SizeBytes      int64  `json:"sizeBytes"`
	StoragePath    string `gorm:"size:500;not null" json:"storagePath"`
}

func (Attachment) TableName() string {
	return "attachments"
}
