package app

import (
	"perf_eval_backend/docs"
	"perf_eval_backend/internal/config"
	"perf_eval_backend/internal/middleware"
	"perf_eval_backend/internal/model"
	"perf_eval_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// Everything else needs a valid token.
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/auth/me", c.auth.Me)

		a.registerCatalogRoutes(api, c)
		a.registerAssignmentRoutes(api, c)
		a.registerResultRoutes(api, c)
		a.registerReportRoutes(api, c)
		a.registerFeedbackRoutes(api, c)
	}
}

// registerCatalogRoutes wires users, topics and indicators. Reads are open
// to any authenticated user; catalogue writes are admin only.
func (a *App) registerCatalogRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := middleware.RoleMiddleware(model.Admin)

	users := rg.Group("/users")
	{
		users.GET("", admin, c.user.List)
		users.GET("/:id", admin, c.user.Get)
		users.PUT("/:id", admin, c.user.Update)
		users.DELETE("/:id", admin, c.user.Delete)
	}

	topics := rg.Group("/topics")
	{
		topics.GET("", c.topic.List)
		topics.GET("/:id", c.topic.Get)
		topics.GET("/:id/indicators", c.topic.Indicators)
		topics.POST("", admin, c.topic.Create)
		topics.PUT("/:id", admin, c.topic.Update)
		topics.DELETE("/:id", admin, c.topic.Delete)
	}

	indicators := rg.Group("/indicators")
	{
		indicators.GET("", c.indicator.List)
		indicators.GET("/:id", c.indicator.Get)
		indicators.POST("", admin, c.indicator.Create)
		indicators.PUT("/:id", admin, c.indicator.Update)
		indicators.DELETE("/:id", admin, c.indicator.Delete)
	}
}

func (a *App) registerAssignmentRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := middleware.RoleMiddleware(model.Admin)

	assignments := rg.Group("/assignments")
	{
		assignments.GET("", c.assignment.List)
		assignments.GET("/:id", c.assignment.Get)
		assignments.POST("", admin, c.assignment.Create)
		assignments.POST("/bulk", admin, c.assignment.BulkCreate)
		assignments.PUT("/:id", admin, c.assignment.Update)
		assignments.DELETE("/:id", admin, c.assignment.Delete)
		assignments.POST("/:id/results/init", admin, c.assignment.InitResults)

		assignments.GET("/:id/results/mine", c.result.Mine)
		assignments.GET("/:id/results/evaluatee/:evaluateeId", c.result.ByEvaluatee)
		assignments.GET("/:id/results/summary/:evaluateeId", c.result.Summary)
		assignments.GET("/:id/comments/:evaluateeId", c.comment.ByPair)
		assignments.GET("/:id/signatures/:evaluateeId", c.signature.ByPair)
	}
}

func (a *App) registerResultRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := middleware.RoleMiddleware(model.Admin)
	evaluator := middleware.RoleMiddleware(model.Evaluator)
	evaluatee := middleware.RoleMiddleware(model.Evaluatee)

	results := rg.Group("/results")
	{
		results.GET("", admin, c.result.List)
		results.GET("/:id", c.result.Get)
		results.DELETE("/:id", admin, c.result.Delete)

		results.POST("/self", evaluatee, c.result.SaveSelf)
		results.POST("/self/bulk", evaluatee, c.result.SaveSelfBulk)

		results.POST("/evaluate", evaluator, c.result.Evaluate)
		results.POST("/evaluate/bulk", evaluator, c.result.EvaluateBulk)
		results.POST("/approve", evaluator, c.result.Approve)
	}
}

func (a *App) registerReportRoutes(rg *gin.RouterGroup, c *controllers) {
	reports := rg.Group("/reports")
	{
		reports.GET("/assignments/:id/evaluatees/:evaluateeId", c.report.Individual)
		reports.GET("/assignments/:id/overall", c.report.Overall)
		reports.GET("/assignments/:id/topics", c.report.Topics)
		reports.GET("/assignments/:id/export", c.report.Export)
	}
}

func (a *App) registerFeedbackRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := middleware.RoleMiddleware(model.Admin)
	evaluator := middleware.RoleMiddleware(model.Evaluator)

	comments := rg.Group("/comments")
	{
		comments.GET("", admin, c.comment.List)
		comments.GET("/mine", evaluator, c.comment.Mine)
		comments.POST("", evaluator, c.comment.Create)
		comments.PUT("/:id", evaluator, c.comment.Update)
		comments.DELETE("/:id", evaluator, c.comment.Delete)
	}

	signatures := rg.Group("/signatures")
	{
		signatures.GET("", admin, c.signature.List)
		signatures.GET("/mine", evaluator, c.signature.Mine)
		signatures.POST("", evaluator, c.signature.Create)
		signatures.DELETE("/:id", evaluator, c.signature.Delete)
	}

	attachments := rg.Group("/attachments")
	{
		attachments.GET("", c.attachment.List)
		attachments.GET("/mine", c.attachment.Mine)
		attachments.GET("/:id", c.attachment.Get)
		attachments.GET("/:id/url", c.attachment.URL)
		attachments.POST("", c.attachment.Upload)
		attachments.PUT("/:id/meta", c.attachment.UpdateMeta)
		attachments.PUT("/:id/file", c.attachment.ReplaceFile)
		attachments.DELETE("/:id", c.attachment.Delete)
	}
}
