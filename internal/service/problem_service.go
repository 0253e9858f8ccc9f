package service

import (
	"errors"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/internal/util"

	"gorm.io/gorm"
)

// ProblemService 题目查询与录入，正确答案不随题面下发
type ProblemService struct {
	repo *repository.ProblemRepository
}

func NewProblemService(repo *repository.ProblemRepository) *ProblemService {
	return &ProblemService{repo: repo}
}

func (s *ProblemService) GetProblem(problemID uint) (*model.PublicProblem, error) {
	problem, err := s.repo.FetchByID(problemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentUnavailable
		}
		return nil, err
	}
	pub := problem.ToPublic()
	return &pub, nil
}

// CreateProblem 录入一道新题，要求恰好一个正确选项
func (s *ProblemService) CreateProblem(problem *model.Problem) error {
	if len(problem.Options) < 2 {
		return errors.New("problem needs at least two options")
	}
	correct := 0
	for _, o := range problem.Options {
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return errors.New("problem must have exactly one correct option")
	}
	return s.repo.Create(problem)
}
