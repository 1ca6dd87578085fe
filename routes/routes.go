package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ismaelescalante7/challenge-leverbox/config"
	"github.com/ismaelescalante7/challenge-leverbox/controllers"
	"github.com/ismaelescalante7/challenge-leverbox/middleware"
	"github.com/ismaelescalante7/challenge-leverbox/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	controllers.RegisterValidation()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))

	responder := controllers.NewResponder(cfg.App.Debug, logger)
	taskService := services.NewTaskService(db, logger)
	catalogService := services.NewCatalogService(db, logger)

	taskController := &controllers.TaskController{Service: taskService, Responder: responder}
	priorityController := &controllers.PriorityController{Service: catalogService, Responder: responder}
	tagController := &controllers.TagController{Service: catalogService, Responder: responder}
	systemController := &controllers.SystemController{
		DB:        db,
		AppName:   cfg.App.Name,
		Env:       cfg.App.Env,
		Started:   time.Now(),
		Responder: responder,
	}

	api := r.Group("/api")
	api.GET("/health", systemController.Health)

	protected := api.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.AuthMiddleware([]byte(cfg.Auth.Secret)), middleware.WriteScope())
	}

	protected.GET("/system/info", systemController.Info)

	tasks := protected.Group("/tasks")
	{
		tasks.GET("", taskController.GetTasks)
		tasks.POST("", taskController.CreateTask)
		tasks.GET("/search", taskController.SearchTasks)
		tasks.GET("/by-status/:status", taskController.GetTasksByStatus)
		tasks.PATCH("/bulk-update", taskController.BulkUpdate)
		tasks.DELETE("/bulk-delete", taskController.BulkDelete)
		tasks.GET("/:id", taskController.GetTask)
		tasks.PUT("/:id", taskController.UpdateTask)
		tasks.PATCH("/:id", taskController.UpdateTask)
		tasks.PATCH("/:id/status", taskController.UpdateTaskStatus)
		tasks.DELETE("/:id", taskController.DeleteTask)
	}

	protected.GET("/priorities", priorityController.GetPriorities)
	protected.POST("/priorities", priorityController.CreatePriority)
	protected.DELETE("/priorities/:id", priorityController.DeletePriority)

	protected.GET("/tags", tagController.GetTags)
	protected.POST("/tags", tagController.CreateTag)
	protected.DELETE("/tags/:id", tagController.DeleteTag)

	return r
}
