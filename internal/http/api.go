package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth       service.AuthService
	categories service.CategoryService
	tasks      service.TaskService
	exports    service.ExportService
	logger     *logrus.Logger
}

func NewHandler(auth service.AuthService, categories service.CategoryService, tasks service.TaskService, exports service.ExportService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		auth:       auth,
		categories: categories,
		tasks:      tasks,
		exports:    exports,
		logger:     logger,
	}
}

// RegisterRoutes mounts the API at the root and again under /api.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.logger))

	h.mount(router.Group(""))
	h.mount(router.Group("/api"))
}

func (h *Handler) mount(r *gin.RouterGroup) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.register)
		authRoutes.POST("/login", h.login)
		authRoutes.GET("/me", h.requireAuth(), h.me)
	}

	protected := r.Group("")
	protected.Use(h.requireAuth())
	{
		protected.GET("/categories", h.listCategories)
		protected.POST("/categories", h.createCategory)
		protected.PUT("/categories/:id", h.updateCategory)
		protected.DELETE("/categories/:id", h.deleteCategory)

		protected.GET("/tasks", h.listTasks)
		protected.POST("/tasks", h.createTask)
		protected.GET("/tasks/:id", h.getTask)
		protected.PUT("/tasks/:id", h.updateTask)
		protected.DELETE("/tasks/:id", h.deleteTask)

		protected.POST("/exports", h.createExport)
		protected.GET("/exports", h.listExports)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
