package controller

import (
	"errors"
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// Overall godoc
// @Summary 总体统计
// @Description 正确率、平均每题用时、连对纪录与近一月正确率变化
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.OverallStats}
// @Failure 503 {object} util.Response "统计数据暂不可用"
// @Router /api/stats/overall [get]
func (c *StatsController) Overall(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.StatsService.GetOverallStats(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStatsUnavailable) {
			util.Error(ctx, 503, "统计数据暂不可用")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, stats)
}

// ByTopic godoc
// @Summary 分主题统计
// @Description 每个启用主题的作答数与正确率，无作答的主题也会返回
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TopicStats}
// @Failure 503 {object} util.Response "统计数据暂不可用"
// @Router /api/stats/topics [get]
func (c *StatsController) ByTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.StatsService.GetTopicStats(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStatsUnavailable) {
			util.Error(ctx, 503, "统计数据暂不可用")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, stats)
}

// Progress godoc
// @Summary 进度曲线
// @Description 按天聚合正确率；range 取 week/month/3months/all
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Param   range query string false "时间窗口" Enums(week, month, 3months, all) default(month)
// @Success 200 {object} util.Response{data=[]model.ProgressPoint}
// @Failure 503 {object} util.Response "统计数据暂不可用"
// @Router /api/stats/progress [get]
func (c *StatsController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	timeRange := ctx.DefaultQuery("range", util.RangeMonth)
	points, err := c.StatsService.GetProgressSeries(claims.UserID, timeRange)
	if err != nil {
		if errors.Is(err, util.ErrStatsUnavailable) {
			util.Error(ctx, 503, "统计数据暂不可用")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, points)
}

// Incorrect godoc
// @Summary 错题回顾
// @Description 返回历史错题（含题目与选项），可按主题过滤
// @Tags 统计
// @Produce  json
// @Security BearerAuth
// @Param   topicAreaId query int false "主题 ID，0 或缺省为全部"
// @Success 200 {object} util.Response{data=[]model.UserAnswer}
// @Failure 503 {object} util.Response "统计数据暂不可用"
// @Router /api/stats/incorrect [get]
func (c *StatsController) Incorrect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	topicAreaID := util.MustParseUint(ctx.Query("topicAreaId"))
	answers, err := c.StatsService.GetIncorrectAnswers(claims.UserID, topicAreaID)
	if err != nil {
		if errors.Is(err, util.ErrStatsUnavailable) {
			util.Error(ctx, 503, "统计数据暂不可用")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, answers)
}
