package repository

import (
	"math_quiz_backend/internal/model"

	"gorm.io/gorm"
)

// ProblemRepository 题库的唯一入口，选项在这里一次性装配成规范的 Problem/Option 结构，
// 下游不再做形状防御
type ProblemRepository struct {
	DB *gorm.DB
}

func NewProblemRepository(db *gorm.DB) *ProblemRepository {
	return &ProblemRepository{DB: db}
}

func withOptions(db *gorm.DB) *gorm.DB {
	return db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("option_letter asc")
	})
}

// FetchByTopic 返回某主题下的启用题目（含选项），随机排序和截断由调用方完成
func (r *ProblemRepository) FetchByTopic(topicAreaID uint, limit int) ([]model.Problem, error) {
	var problems []model.Problem
	err := withOptions(r.DB).
		Where("topic_area_id = ? AND is_active = ?", topicAreaID, true).
		Order("id desc").
		Limit(limit).
		Find(&problems).Error
	return problems, err
}

// FetchAll 跨主题抽取启用题目，多取一倍留给调用方洗牌后截断
func (r *ProblemRepository) FetchAll(limit int) ([]model.Problem, error) {
	var problems []model.Problem
	err := withOptions(r.DB).
		Where("is_active = ?", true).
		Order("id desc").
		Limit(limit * 2).
		Find(&problems).Error
	return problems, err
}

// Create 连同选项一起写入一道新题
func (r *ProblemRepository) Create(problem *model.Problem) error {
	return r.DB.Create(problem).Error
}

func (r *ProblemRepository) FetchByID(problemID uint) (*model.Problem, error) {
	var problem model.Problem
	err := withOptions(r.DB).First(&problem, problemID).Error
	if err != nil {
		return nil, err
	}
	return &problem, nil
}
