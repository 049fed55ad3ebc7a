package model

type IndicatorType string

const (
	IndicatorBinary IndicatorType = "binary"
	IndicatorScaled IndicatorType = "scaled"
	IndicatorCustom IndicatorType = "custom"
)

// swagger:model Indicator
type Indicator struct {
	BaseModel
	TopicID     uint          `gorm:"not null;index" json:"topicId"`
	Code        string        `gorm:"size:50;not null" json:"code"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Type        IndicatorType `gorm:"type:enum('binary','scaled','custom');default:'scaled'" json:"type"`
	Weight      float64       `gorm:"not null;default:0" json:"weight"`
	MinScore    float64       `gorm:"default:0" json:"minScore"`
	MaxScore    float64       `gorm:"default:0" json:"maxScore"`
	Active      bool          `gorm:"default:true" json:"active"`

	Topic *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

func (Indicator) TableName() string {
	return "indicators"
}
