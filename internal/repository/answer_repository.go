package repository

import (
	"math_quiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// AnswerRepository 答题日志，只追加；查询附带题目元数据用于按主题过滤与聚合
type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// AnswerFilter 查询过滤条件，零值字段不参与过滤
type AnswerFilter struct {
	TopicAreaID uint
	Since       time.Time
	OnlyWrong   bool
}

// Append 写入一条答题记录
func (r *AnswerRepository) Append(answer *model.UserAnswer) error {
	return r.DB.Create(answer).Error
}

// QueryByUser 按时间升序返回用户的答题记录
func (r *AnswerRepository) QueryByUser(userID uint, filter AnswerFilter) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer

	query := r.DB.Model(&model.UserAnswer{}).
		Joins("JOIN problems ON problems.id = user_answers.problem_id").
		Where("user_answers.user_id = ?", userID).
		Preload("Problem")

	if filter.TopicAreaID > 0 {
		query = query.Where("problems.topic_area_id = ?", filter.TopicAreaID)
	}
	if !filter.Since.IsZero() {
		query = query.Where("user_answers.answered_at >= ?", filter.Since)
	}
	if filter.OnlyWrong {
		query = query.Where("user_answers.is_correct = ?", false)
	}

	err := query.Order("user_answers.answered_at asc").Find(&answers).Error
	return answers, err
}

// QueryIncorrect 错题回顾，按时间倒序并带上完整题目与选项
func (r *AnswerRepository) QueryIncorrect(userID uint, topicAreaID uint) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer

	query := r.DB.Model(&model.UserAnswer{}).
		Joins("JOIN problems ON problems.id = user_answers.problem_id").
		Where("user_answers.user_id = ? AND user_answers.is_correct = ?", userID, false).
		Preload("Problem").
		Preload("Problem.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("option_letter asc")
		})

	if topicAreaID > 0 {
		query = query.Where("problems.topic_area_id = ?", topicAreaID)
	}

	err := query.Order("user_answers.answered_at desc").Find(&answers).Error
	return answers, err
}
