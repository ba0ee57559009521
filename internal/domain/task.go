package domain

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority accepts the three priorities case-insensitively. An empty value yields Medium.
func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", Validation(fmt.Sprintf("priority must be one of %s, %s, %s", PriorityHigh, PriorityMedium, PriorityLow))
}

// DateLayout is the wire and storage format of due dates.
const DateLayout = "2006-01-02"

// Task represents a single to-do item tracked by the system.
type Task struct {
	ID           int64
	UserID       int64
	CategoryID   int64
	CategoryName string
	Title        string
	Description  *string
	DueDate      *time.Time
	Completed    bool
	Priority     Priority
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskFields is the client-writable part of a task, used for both create and full update.
type TaskFields struct {
	Title       string
	Description *string
	DueDate     *time.Time
	CategoryID  int64
	Completed   bool
	Priority    Priority
}

// Normalize trims the fields, applies defaults and checks the required ones.
func (f *TaskFields) Normalize() error {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return Validation("title is required")
	}
	if f.CategoryID <= 0 {
		return Validation("category is required")
	}
	if f.Description != nil && strings.TrimSpace(*f.Description) == "" {
		f.Description = nil
	}
	p, err := ParsePriority(string(f.Priority))
	if err != nil {
		return err
	}
	f.Priority = p
	if f.DueDate != nil {
		d := time.Date(f.DueDate.Year(), f.DueDate.Month(), f.DueDate.Day(), 0, 0, 0, 0, time.UTC)
		f.DueDate = &d
	}
	return nil
}

// TaskStatus narrows task listings by completion state.
type TaskStatus string

const (
	TaskStatusAny       TaskStatus = ""
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusPending   TaskStatus = "pending"
)

// ParseTaskStatus validates a status filter value.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch s := TaskStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case TaskStatusAny, TaskStatusCompleted, TaskStatusPending:
		return s, nil
	}
	return "", Validation("status must be completed or pending")
}
