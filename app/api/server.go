package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio-dev/folio/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	if cfg.Get().Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Public read surface
	r.GET("/health", handler.GetHealth)
	r.GET("/profile", handler.GetProfile)
	r.GET("/timeline", handler.GetTimeline)
	r.GET("/activity", handler.GetActivity)
	r.GET("/feed.xml", handler.GetBlogFeed)

	r.GET("/blog/posts", handler.GetBlogPosts)
	r.GET("/blog/posts/:slug", handler.GetBlogPost)
	r.GET("/blog/posts/:slug/comments", handler.GetBlogComments)
	r.POST("/blog/posts/:slug/comments", handler.CreateBlogComment)
	r.POST("/blog/posts/:slug/like", handler.LikeBlogPost)

	// Public write surface
	r.POST("/contact", handler.SubmitContactMessage)
	r.POST("/contact/task-request", handler.SubmitTaskRequest)

	// Admin endpoints. Each handler re-verifies the caller against the
	// database, so there is no shared-secret middleware here.
	api := r.Group("/api")
	{
		api.POST("/timeline", handler.AdminCreateTimelineEvent)
		api.PUT("/timeline/:id", handler.AdminUpdateTimelineEvent)
		api.DELETE("/timeline/:id", handler.AdminDeleteTimelineEvent)

		api.GET("/tasks", handler.AdminGetTasks)
		api.POST("/tasks", handler.AdminCreateTask)
		api.PUT("/tasks/:id", handler.AdminUpdateTask)
		api.DELETE("/tasks/:id", handler.AdminDeleteTask)
		api.POST("/tasks/:id/convert-schedule", handler.AdminConvertTaskToSchedule)

		api.GET("/schedules", handler.AdminGetSchedules)
		api.POST("/schedules", handler.AdminCreateSchedule)
		api.PUT("/schedules/:id", handler.AdminUpdateSchedule)
		api.DELETE("/schedules/:id", handler.AdminDeleteSchedule)

		api.GET("/contact/messages", handler.AdminGetContactMessages)
		api.PATCH("/contact/messages/:id/status", handler.AdminUpdateContactStatus)
		api.POST("/contact/messages/:id/convert-task", handler.AdminConvertContactToTask)
		api.POST("/contact/messages/:id/convert-schedule", handler.AdminConvertContactToSchedule)
		api.DELETE("/contact/messages/:id", handler.AdminDeleteContactMessage)

		api.GET("/blog/posts", handler.AdminGetBlogPosts)
		api.POST("/blog/posts", handler.AdminCreateBlogPost)
		api.PUT("/blog/posts/:id", handler.AdminUpdateBlogPost)
		api.DELETE("/blog/posts/:id", handler.AdminDeleteBlogPost)
		api.GET("/blog/comments/pending", handler.AdminGetPendingComments)
		api.POST("/blog/comments/:id/approve", handler.AdminApproveComment)
		api.DELETE("/blog/comments/:id", handler.AdminDeleteComment)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Folio",
			"version": cfg.Get().Version,
			"endpoints": map[string]string{
				"profile":  "/profile",
				"timeline": "/timeline",
				"activity": "/activity",
				"blog":     "/blog/posts",
				"feed":     "/feed.xml",
				"contact":  "/contact (POST)",
				"health":   "/health",
				"admin":    "/api/* (requires X-API-Key header)",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// requestToken extracts the caller's API token from the X-API-Key header,
// falling back to Authorization: Bearer.
func requestToken(c *gin.Context) string {
	token := c.GetHeader("X-API-Key")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	return token
}
