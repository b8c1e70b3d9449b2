package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/container"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// TaskModule wires task HTTP handlers behind the auth middleware.
// Protected: GET/POST /api/todos, PUT /api/todos/:id,
// PATCH /api/todos/:id/toggle, PATCH /api/todos/:id/archive,
// DELETE /api/todos/:id, POST /api/todos/bulk/complete,
// DELETE /api/todos/bulk/delete
type TaskModule struct {
	Handler *handlers.TaskHandler
	Tokens  *helpers.TokenManager
}

func NewTaskModule(h *handlers.TaskHandler, tokens *helpers.TokenManager) *TaskModule {
	return &TaskModule{Handler: h, Tokens: tokens}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/todos")
	auth.Use(middleware.Auth(m.Tokens))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Create)
		// bulk routes before :id so gin does not treat "bulk" as an id
		auth.POST("/bulk/complete", m.Handler.BulkToggle)
		auth.DELETE("/bulk/delete", m.Handler.BulkDelete)
		auth.PUT("/:id", m.Handler.Update)
		auth.PATCH("/:id/toggle", m.Handler.Toggle)
		auth.PATCH("/:id/archive", m.Handler.Archive)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
