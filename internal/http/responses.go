package http

import (
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/service"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type TaskResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	DueDate      *string `json:"due_date"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Completed    bool    `json:"completed"`
	Priority     string  `json:"priority"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ExportResponse struct {
	Key        string `json:"key"`
	Location   string `json:"location,omitempty"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	CreatedAt  string `json:"created_at,omitempty"`
	Categories int    `json:"categories,omitempty"`
	Tasks      int    `json:"tasks,omitempty"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

func categoryToResponse(category domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
	}
}

func taskToResponse(task domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		CategoryID:   task.CategoryID,
		CategoryName: task.CategoryName,
		Completed:    task.Completed,
		Priority:     string(task.Priority),
		CreatedAt:    task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    task.UpdatedAt.Format(time.RFC3339),
	}
	if task.DueDate != nil {
		v := task.DueDate.Format(domain.DateLayout)
		resp.DueDate = &v
	}
	return resp
}

func exportToResponse(export service.Export) ExportResponse {
	resp := ExportResponse{
		Key:        export.Key,
		Location:   export.Location,
		URL:        export.URL,
		Size:       export.Size,
		Categories: export.Categories,
		Tasks:      export.Tasks,
	}
	if !export.CreatedAt.IsZero() {
		resp.CreatedAt = export.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
