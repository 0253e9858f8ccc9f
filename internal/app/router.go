package app

import (
	"math_quiz_backend/docs"
	"math_quiz_backend/internal/config"
	"math_quiz_backend/internal/middleware"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)

		// 管理员内容维护
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/problems", c.problem.CreateProblem)
		}
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// 主题与题目
	rg.GET("/topics", c.topic.ListTopics)
	rg.GET("/problems/:id", c.problem.GetProblem)

	// 测验会话
	quiz := rg.Group("/quiz")
	{
		quiz.POST("/start", c.quiz.StartSession)
		quiz.POST("/submit", c.quiz.SubmitAnswer)
		quiz.POST("/advance", c.quiz.Advance)
		quiz.POST("/abandon", c.quiz.Abandon)
		quiz.GET("/current", c.quiz.Current)
		quiz.GET("/results", c.quiz.Results)
		quiz.POST("/explanation", c.explanation.Explain)
	}

	// 统计
	stats := rg.Group("/stats")
	{
		stats.GET("/overall", c.stats.Overall)
		stats.GET("/topics", c.stats.ByTopic)
		stats.GET("/progress", c.stats.Progress)
		stats.GET("/incorrect", c.stats.Incorrect)
	}
}
