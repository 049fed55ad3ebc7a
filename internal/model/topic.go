package model

// Topic groups indicators under a shared weight expressed in percentage
// points. Active topic weights are expected to sum to 100; this is not
// enforced at write time, only logged when violated.
//
// swagger:model Topic
type Topic struct {
	BaseModel
	Code        string  `gorm:"size:50;unique;not null" json:"code"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Weight      float64 `gorm:"not null;default:0" json:"weight"`
	Active      bool    `gorm:"default:true" json:"active"`

	Indicators []Indicator `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"indicators,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}
