package model

type UserRole string

const (
	Admin     UserRole = "admin"
	Evaluator UserRole = "evaluator"
	Evaluatee UserRole = "evaluatee"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('admin','evaluator','evaluatee');default:'evaluatee'" json:"role"`
	IsActive bool     `gorm:"default:true" json:"isActive"`
}

func (User) TableName() string {
	return "users"
}
