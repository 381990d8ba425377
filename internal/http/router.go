package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(auth.SecurityHeadersMiddleware())

	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
			ExposeHeaders:    []string{RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, uint(0))
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version, nil)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Catalogue
	if cfg.Books != nil {
		books := NewBooksController(cfg.Books, log)
		api.POST("/books", books.CreateBook)
		api.GET("/books", books.GetAllBooks)
		api.GET("/books/:id", books.GetBook)
	}
	if cfg.Courses != nil {
		courses := NewCoursesController(cfg.Courses, log)
		api.POST("/courses", courses.CreateCourse)
		api.GET("/courses", courses.GetAllCourses)
		api.GET("/courses/:id", courses.GetCourse)
	}

	// Progress
	if cfg.Progress != nil {
		userBooks := NewUserBooksController(cfg.Progress, log)
		api.POST("/user-books", userBooks.StartBook)
		api.GET("/user-books", userBooks.ListUserBooks)
		api.GET("/user-books/stats", userBooks.Stats)
		api.GET("/user-books/:id", userBooks.GetUserBook)
		api.POST("/user-books/:id/recordings", userBooks.LogReading)
		api.GET("/user-books/:id/recordings", userBooks.ListRecordings)
		api.GET("/user-books/:id/daily", userBooks.DailyHistory)

		userCourses := NewUserCoursesController(cfg.Progress, log)
		api.POST("/user-courses", userCourses.StartCourse)
		api.GET("/user-courses", userCourses.ListUserCourses)
		api.GET("/user-courses/stats", userCourses.Stats)
		api.GET("/user-courses/:id", userCourses.GetUserCourse)
		api.POST("/user-courses/:id/recordings", userCourses.LogStudy)
		api.GET("/user-courses/:id/recordings", userCourses.ListRecordings)
		api.GET("/user-courses/:id/daily", userCourses.DailyHistory)
		api.POST("/user-courses/:id/complete", userCourses.Complete)
	}

	// Audit trail
	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit, log)
		api.GET("/audit", auditController.GetAuditEvents)
	}

	// Task management endpoints
	if cfg.Tasks != nil {
		tasksController := NewTasksController(cfg.Tasks, log)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/admin/reconcile", tasksController.Reconcile)
	}

	return router
}
