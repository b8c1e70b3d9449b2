package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/pkg/response"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate"`
}

// updateTaskRequest uses pointers so an absent field and a zero value
// stay distinguishable; only present fields overwrite stored ones.
type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Tags        *[]string  `json:"tags"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
	Archived    *bool      `json:"archived"`
}

type bulkRequest struct {
	TaskIDs []string `json:"taskIds" binding:"required"`
}

// writeTaskError maps service errors to status codes. Forbidden is
// surfaced as 404 so the response never confirms that another user's
// task exists.
func writeTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, application.ErrTaskNotFound), errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusNotFound, "task not found", nil)
	case errors.Is(err, application.ErrTitleRequired):
		response.Error[any](c, http.StatusBadRequest, "task title is required", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// List GET /api/todos
func (h *TaskHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	tasks, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks, "tasks", nil)
}

// Create POST /api/todos
func (h *TaskHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), uid, application.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "task created", nil)
}

// Update PUT /api/todos/:id
func (h *TaskHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), application.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
		Archived:    req.Archived,
	})
	if err != nil {
		writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task updated", nil)
}

// Toggle PATCH /api/todos/:id/toggle
func (h *TaskHandler) Toggle(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Toggle(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task toggled", nil)
}

// Archive PATCH /api/todos/:id/archive
func (h *TaskHandler) Archive(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.Archive(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task archive flag flipped", nil)
}

// Delete DELETE /api/todos/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true}, "task deleted", nil)
}

// BulkToggle POST /api/todos/bulk/complete
func (h *TaskHandler) BulkToggle(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res := h.Svc.BulkToggle(c.Request.Context(), uid, req.TaskIDs)
	response.Success(c, http.StatusOK, res, "bulk toggle complete", nil)
}

// BulkDelete DELETE /api/todos/bulk/delete
func (h *TaskHandler) BulkDelete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res := h.Svc.BulkDelete(c.Request.Context(), uid, req.TaskIDs)
	response.Success(c, http.StatusOK, res, "bulk delete complete", nil)
}
