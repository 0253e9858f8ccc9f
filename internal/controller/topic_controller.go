package controller

import (
	"math_quiz_backend/internal/service"
	"math_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TopicController struct {
	TopicService *service.TopicService
}

func NewTopicController(topicService *service.TopicService) *TopicController {
	return &TopicController{TopicService: topicService}
}

// ListTopics godoc
// @Summary 主题列表
// @Description 返回所有启用的主题，按 order_index 排序
// @Tags 主题
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TopicArea}
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/topics [get]
func (c *TopicController) ListTopics(ctx *gin.Context) {
	topics, err := c.TopicService.ListTopics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}
