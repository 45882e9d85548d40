package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelnest/internal/demo"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	registerValidations()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// Multipart bodies above this spill to disk; covers are capped separately
	if cfg.CoverValidator != nil && cfg.CoverValidator.MaxBytes() > 0 {
		router.MaxMultipartMemory = cfg.CoverValidator.MaxBytes() + 1<<20
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version, cfg.CleanupStatus)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	api.Use(demo.NewMiddleware(cfg.DemoMode).Handler())

	// Catalogue endpoints
	if cfg.BookStore != nil {
		booksController := NewBooksController(cfg.BookStore, cfg.CoverValidator)
		api.GET("/books", booksController.ListBooks)
		api.POST("/books", booksController.CreateBook)
		api.GET("/books/:id", booksController.GetBook)
		api.PATCH("/books/:id/status", booksController.UpdateStatus)
		api.DELETE("/books/:id", booksController.DeleteBook)
		api.GET("/books/:id/cover", booksController.GetCover)
		api.GET("/genres", booksController.ListGenres)
	}

	// Insights endpoints
	if cfg.StatsStore != nil {
		statsController := NewStatsController(cfg.StatsStore, cfg.BucketListCounter)
		api.GET("/stats", statsController.GetStats)
	}

	// Bucket list endpoints
	if cfg.BookStore != nil && cfg.BucketListStore != nil {
		bucketController := NewBucketListController(cfg.BookStore, cfg.BucketListStore, cfg.CleanupEnqueuer)
		api.GET("/bucket-list", bucketController.ListBucketList)
		api.POST("/bucket-list/cleanup", bucketController.Cleanup)
		api.GET("/bucket-list/:id", bucketController.GetMembership)
		api.POST("/bucket-list/:id", bucketController.AddToBucketList)
		api.DELETE("/bucket-list/:id", bucketController.RemoveFromBucketList)
	}

	// Task status endpoint
	if cfg.TaskStatus != nil {
		tasksController := NewTasksController(cfg.TaskStatus)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
