package model

import "time"

// UserAnswer 用户答题记录，只追加不修改；is_correct 在提交时从所选选项复制，之后不再重算
// swagger:model UserAnswer
type UserAnswer struct {
	BaseModel
	UserID           uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	ProblemID        uint      `gorm:"index;type:bigint unsigned" json:"problemId"`
	SelectedOptionID uint      `gorm:"type:bigint unsigned" json:"selectedOptionId"`
	IsCorrect        bool      `gorm:"default:false" json:"isCorrect"`
	TimeSpentSeconds int       `gorm:"default:0" json:"timeSpentSeconds"`
	AnsweredAt       time.Time `gorm:"index" json:"answeredAt"`

	Problem Problem `gorm:"foreignKey:ProblemID" json:"problem,omitempty"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
