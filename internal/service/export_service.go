package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

// ErrExportsDisabled is returned when no storage bucket is configured.
var ErrExportsDisabled = errors.New("exports are not configured")

// Export describes one stored snapshot of a user's data.
type Export struct {
	Key        string
	Location   string
	URL        string
	Size       int64
	CreatedAt  time.Time
	Categories int
	Tasks      int
}

// ExportOptions locates exports in object storage.
type ExportOptions struct {
	Bucket    string
	KeyPrefix string
	URLTTL    time.Duration
}

// ExportService snapshots a user's categories and tasks to object storage.
type ExportService interface {
	Export(ctx context.Context, owner int64) (*Export, error)
	ListExports(ctx context.Context, owner int64) ([]Export, error)
}

type exportService struct {
	categories repository.CategoryRepository
	tasks      repository.TaskRepository
	storage    storage.Service
	opts       ExportOptions
	now        func() time.Time
}

// NewExportService returns a service that answers ErrExportsDisabled when store is nil
// or no bucket is configured.
func NewExportService(categories repository.CategoryRepository, tasks repository.TaskRepository, store storage.Service, opts ExportOptions) ExportService {
	if opts.URLTTL <= 0 {
		opts.URLTTL = 15 * time.Minute
	}
	opts.KeyPrefix = strings.Trim(opts.KeyPrefix, "/")
	return &exportService{
		categories: categories,
		tasks:      tasks,
		storage:    store,
		opts:       opts,
		now:        time.Now,
	}
}

type snapshot struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Categories []snapshotCategory `json:"categories"`
	Tasks      []snapshotTask     `json:"tasks"`
}

type snapshotCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type snapshotTask struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     *string   `json:"due_date"`
	CategoryID  int64     `json:"category_id"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *exportService) enabled() bool {
	return s.storage != nil && s.opts.Bucket != ""
}

// ownerPrefix ends with a slash so user-1 never lists user-12's objects.
func (s *exportService) ownerPrefix(owner int64) string {
	prefix := fmt.Sprintf("user-%d/", owner)
	if s.opts.KeyPrefix != "" {
		prefix = s.opts.KeyPrefix + "/" + prefix
	}
	return prefix
}

func (s *exportService) Export(ctx context.Context, owner int64) (*Export, error) {
	if !s.enabled() {
		return nil, ErrExportsDisabled
	}

	categories, err := s.categories.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, owner, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	snap := snapshot{
		Version:    1,
		ExportedAt: now,
		Categories: make([]snapshotCategory, len(categories)),
		Tasks:      make([]snapshotTask, len(tasks)),
	}
	for i, c := range categories {
		snap.Categories[i] = snapshotCategory{ID: c.ID, Name: c.Name}
	}
	for i, t := range tasks {
		st := snapshotTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			CategoryID:  t.CategoryID,
			Category:    t.CategoryName,
			Completed:   t.Completed,
			Priority:    string(t.Priority),
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		if t.DueDate != nil {
			d := t.DueDate.Format(domain.DateLayout)
			st.DueDate = &d
		}
		snap.Tasks[i] = st
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := fmt.Sprintf("%s%s-%s.json", s.ownerPrefix(owner), now.Format("20060102T150405Z"), uuid.NewString())
	location, err := s.storage.PutObject(ctx, s.opts.Bucket, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, domain.Infrastructure("upload export", err)
	}
	url, err := s.storage.GetObjectURL(ctx, s.opts.Bucket, key, s.opts.URLTTL)
	if err != nil {
		return nil, domain.Infrastructure("presign export", err)
	}

	return &Export{
		Key:        key,
		Location:   location,
		URL:        url,
		Size:       int64(len(body)),
		CreatedAt:  now,
		Categories: len(categories),
		Tasks:      len(tasks),
	}, nil
}

func (s *exportService) ListExports(ctx context.Context, owner int64) ([]Export, error) {
	if !s.enabled() {
		return nil, ErrExportsDisabled
	}

	prefix := s.ownerPrefix(owner)
	objects, err := s.storage.ListObjects(ctx, s.opts.Bucket, prefix)
	if err != nil {
		return nil, domain.Infrastructure("list exports", err)
	}

	exports := make([]Export, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasPrefix(obj.Key, prefix) {
			continue
		}
		url, err := s.storage.GetObjectURL(ctx, s.opts.Bucket, obj.Key, s.opts.URLTTL)
		if err != nil {
			return nil, domain.Infrastructure("presign export", err)
		}
		e := Export{
			Key:  obj.Key,
			URL:  url,
			Size: obj.Size,
		}
		if obj.LastModified != nil {
			e.CreatedAt = obj.LastModified.UTC()
		}
		exports = append(exports, e)
	}
	sort.Slice(exports, func(i, j int) bool {
		return exports[i].Key > exports[j].Key
	})
	return exports, nil
}
