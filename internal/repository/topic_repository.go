package repository

import (
	"math_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

// ListActive 返回启用的主题领域，按展示顺序排序
func (r *TopicRepository) ListActive() ([]model.TopicArea, error) {
	var topics []model.TopicArea
	err := r.DB.Where("is_active = ?", true).
		Order("order_index asc").
		Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindByID(id uint) (*model.TopicArea, error) {
	var topic model.TopicArea
	err := r.DB.First(&topic, id).Error
	return &topic, err
}
