package model

// TopicArea 题目主题领域（如几何、数列）
// swagger:model TopicArea
type TopicArea struct {
	BaseModel
	Name       string `gorm:"size:100;not null" json:"name"`
	Code       string `gorm:"size:50;unique;not null" json:"code"`
	Icon       string `gorm:"size:10" json:"icon"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
	IsActive   bool   `gorm:"default:true" json:"isActive"`
}

func (TopicArea) TableName() string {
	return "topic_areas"
}
