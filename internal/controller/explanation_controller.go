package controller

import (
	"errors"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExplanationController struct {
	ExplanationService *service.ExplanationService
}

func NewExplanationController(explanationService *service.ExplanationService) *ExplanationController {
	return &ExplanationController{ExplanationService: explanationService}
}

// ExplainRequest AI 解析请求。attempt 从 1 起计，重试时递增
type ExplainRequest struct {
	ProblemID        uint `json:"problemId" binding:"required"`
	SelectedOptionID uint `json:"selectedOptionId" binding:"required"`
	Attempt          int  `json:"attempt"`
}

// Explain godoc
// @Summary 生成错题解析
// @Description 调用配置的 AI 服务生成讲解文本；attempt > 1 时采用更简单的表述
// @Tags 解析
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ExplainRequest true "题目与所选选项"
// @Success 200 {object} util.Response{data=object} "解析文本"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 503 {object} util.Response "解析服务暂不可用"
// @Router /api/quiz/explanation [post]
func (c *ExplanationController) Explain(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ExplainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Attempt < 1 {
		req.Attempt = 1
	}

	text, err := c.ExplanationService.Generate(ctx.Request.Context(), req.ProblemID, req.SelectedOptionID, req.Attempt)
	if err != nil {
		if errors.Is(err, util.ErrExplanationUnavailable) {
			util.Error(ctx, 503, "解析服务暂不可用")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"explanation": text})
}
