package controller

import (
	"errors"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProblemController struct {
	ProblemService *service.ProblemService
}

func NewProblemController(problemService *service.ProblemService) *ProblemController {
	return &ProblemController{ProblemService: problemService}
}

// GetProblem godoc
// @Summary 题目详情
// @Description 返回单个题目及其选项，不包含正确答案标记
// @Tags 题目
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目 ID"
// @Success 200 {object} util.Response{data=model.PublicProblem}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/problems/{id} [get]
func (c *ProblemController) GetProblem(ctx *gin.Context) {
	problemID := util.MustParseUint(ctx.Param("id"))
	if problemID == 0 {
		util.BadRequest(ctx, "无效的题目 ID")
		return
	}

	problem, err := c.ProblemService.GetProblem(problemID)
	if err != nil {
		if errors.Is(err, util.ErrContentUnavailable) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, problem)
}

// CreateProblemRequest 新题录入请求
type CreateProblemRequest struct {
	TopicAreaID      uint                  `json:"topicAreaId" binding:"required"`
	Title            string                `json:"title" binding:"required"`
	QuestionText     string                `json:"questionText" binding:"required"`
	QuestionImageURL string                `json:"questionImageUrl"`
	DifficultyLevel  model.DifficultyLevel `json:"difficultyLevel" binding:"omitempty,oneof=easy medium hard"`
	Year             int                   `json:"year"`
	ProblemNumber    int                   `json:"problemNumber"`
	Options          []CreateOptionRequest `json:"options" binding:"required,min=2,dive"`
}

// CreateOptionRequest 新题的一个选项
type CreateOptionRequest struct {
	OptionLetter   string `json:"optionLetter" binding:"required,len=1"`
	AnswerText     string `json:"answerText" binding:"required"`
	AnswerImageURL string `json:"answerImageUrl"`
	IsCorrect      bool   `json:"isCorrect"`
}

// CreateProblem godoc
// @Summary 录入新题（管理员）
// @Description 创建一道题目及其选项，要求恰好一个正确选项
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateProblemRequest true "题目内容"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/admin/problems [post]
func (c *ProblemController) CreateProblem(ctx *gin.Context) {
	var req CreateProblemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	difficulty := req.DifficultyLevel
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	options := make([]model.AnswerOption, 0, len(req.Options))
	for _, o := range req.Options {
		options = append(options, model.AnswerOption{
			OptionLetter:   o.OptionLetter,
			AnswerText:     o.AnswerText,
			AnswerImageURL: o.AnswerImageURL,
			IsCorrect:      o.IsCorrect,
		})
	}

	problem := &model.Problem{
		TopicAreaID:      req.TopicAreaID,
		Title:            req.Title,
		QuestionText:     req.QuestionText,
		QuestionImageURL: req.QuestionImageURL,
		DifficultyLevel:  difficulty,
		Year:             req.Year,
		ProblemNumber:    req.ProblemNumber,
		IsActive:         true,
		Options:          options,
	}

	if err := c.ProblemService.CreateProblem(problem); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, gin.H{"id": problem.ID})
}
