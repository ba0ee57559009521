package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type taskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	CategoryID  idValue `json:"category_id"`
	Completed   *bool   `json:"completed"`
	Priority    string  `json:"priority"`
}

func (r taskRequest) fields() (domain.TaskFields, error) {
	due, err := parseDueDate(r.DueDate)
	if err != nil {
		return domain.TaskFields{}, err
	}
	priority, err := domain.ParsePriority(r.Priority)
	if err != nil {
		return domain.TaskFields{}, err
	}
	fields := domain.TaskFields{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		CategoryID:  int64(r.CategoryID),
		Priority:    priority,
	}
	if r.Completed != nil {
		fields.Completed = *r.Completed
	}
	return fields, nil
}

var errTaskNotFound = domain.NotFound("task not found")

func (h *Handler) listTasks(c *gin.Context) {
	status, err := domain.ParseTaskStatus(c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	filter := repository.TaskFilter{
		Status:   status,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	tasks, err := h.tasks.ListTasks(c.Request.Context(), principal(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	c.JSON(http.StatusOK, gin.H{"tasks": resp})
}

func (h *Handler) getTask(c *gin.Context) {
	id, err := pathID(c, errTaskNotFound)
	if err != nil {
		h.respondError(c, err)
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), principal(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": taskToResponse(*task)})
}

func (h *Handler) createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errBadBody)
		return
	}
	fields, err := req.fields()
	if err != nil {
		h.respondError(c, err)
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), principal(c), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": taskToResponse(*task)})
}

func (h *Handler) updateTask(c *gin.Context) {
	id, err := pathID(c, errTaskNotFound)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errBadBody)
		return
	}
	fields, err := req.fields()
	if err != nil {
		h.respondError(c, err)
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), principal(c), id, fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": taskToResponse(*task)})
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, err := pathID(c, errTaskNotFound)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), principal(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
