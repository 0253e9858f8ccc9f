package controller

import (
	"errors"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	SessionService *service.SessionService
}

func NewQuizController(sessionService *service.SessionService) *QuizController {
	return &QuizController{SessionService: sessionService}
}

// StartSessionRequest 开始会话请求。topic 为主题 ID 字符串或 "mix"
type StartSessionRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// StartSession godoc
// @Summary 开始测验会话
// @Description 为当前用户装载一批题目并开始新会话；已有会话会被丢弃
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StartSessionRequest true "主题选择"
// @Success 200 {object} util.Response{data=service.StartResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "所选主题没有可用题目"
// @Router /api/quiz/start [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SessionService.Start(ctx.Request.Context(), claims.UserID, req.Topic)
	if err != nil {
		if errors.Is(err, util.ErrContentUnavailable) {
			util.Error(ctx, 404, "所选主题暂无可用题目")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// SubmitAnswerRequest 提交作答请求
type SubmitAnswerRequest struct {
	OptionID uint `json:"optionId" binding:"required"`
}

// SubmitAnswer godoc
// @Summary 提交当前题作答
// @Description 仅接受当前题目的选项；返回即时反馈与正确答案
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SubmitAnswerRequest true "所选选项"
// @Success 200 {object} util.Response{data=model.SubmitFeedback}
// @Failure 400 {object} util.Response "选项不属于当前题目"
// @Failure 409 {object} util.Response "没有进行中的会话"
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.SessionService.Submit(ctx.Request.Context(), claims.UserID, req.OptionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoActiveSession):
			util.Error(ctx, 409, "没有进行中的测验会话")
		case errors.Is(err, util.ErrInvalidSubmission):
			util.BadRequest(ctx, "所选选项不属于当前题目")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, feedback)
}

// Advance godoc
// @Summary 进入下一题
// @Description 从反馈态推进到下一题；无剩余题目时返回会话结果
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AdvanceResult}
// @Failure 400 {object} util.Response "当前不在反馈态"
// @Failure 409 {object} util.Response "没有进行中的会话"
// @Router /api/quiz/advance [post]
func (c *QuizController) Advance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.SessionService.Advance(claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoActiveSession):
			util.Error(ctx, 409, "没有进行中的测验会话")
		case errors.Is(err, util.ErrInvalidSubmission):
			util.BadRequest(ctx, "当前不在反馈态")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Results godoc
// @Summary 会话结果
// @Description 返回当前会话的统计结果；未结束时为部分结果预览
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.SessionResult}
// @Failure 409 {object} util.Response "没有进行中的会话"
// @Router /api/quiz/results [get]
func (c *QuizController) Results(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.SessionService.Results(claims.UserID)
	if err != nil {
		util.Error(ctx, 409, "没有进行中的测验会话")
		return
	}

	util.Success(ctx, results)
}

// Current godoc
// @Summary 当前题目
// @Description 返回会话当前展示的题目，用于页面刷新后恢复
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.PublicProblem}
// @Failure 409 {object} util.Response "没有进行中的会话"
// @Router /api/quiz/current [get]
func (c *QuizController) Current(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	problem, err := c.SessionService.CurrentProblem(claims.UserID)
	if err != nil {
		util.Error(ctx, 409, "没有进行中的测验会话")
		return
	}

	util.Success(ctx, problem)
}

// Abandon godoc
// @Summary 放弃当前会话
// @Description 无条件丢弃会话；已落库的作答记录不受影响
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/quiz/abandon [post]
func (c *QuizController) Abandon(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.SessionService.Abandon(claims.UserID)
	util.Success(ctx, nil)
}
