package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/storage"
)

type memoryStorage struct {
	objects map[string][]byte
	fail    error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) PutObject(_ context.Context, bucket, key string, body io.Reader, _ string) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return "s3://" + bucket + "/" + key, nil
}

func (m *memoryStorage) ListObjects(_ context.Context, _, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memoryStorage) GetObjectURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://" + bucket + ".example/" + key + "?signed", nil
}

func TestExportSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := newMemoryStorage()
	exports := NewExportService(f.categories, f.tasks, store, ExportOptions{Bucket: "exports", KeyPrefix: "/tb/"})

	session, err := f.auth.Register(ctx, "ann@example.com", "pw", "Ann")
	require.NoError(t, err)
	owner := session.User.ID
	categories, err := f.categories.List(ctx, owner)
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, owner, domain.TaskFields{Title: "Buy milk", CategoryID: categories[0].ID})
	require.NoError(t, err)

	export, err := exports.Export(ctx, owner)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(export.Key, "tb/user-"))
	assert.Equal(t, "s3://exports/"+export.Key, export.Location)
	assert.Equal(t, 3, export.Categories)
	assert.Equal(t, 1, export.Tasks)

	var snap snapshot
	require.NoError(t, json.NewDecoder(bytes.NewReader(store.objects[export.Key])).Decode(&snap))
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "Buy milk", snap.Tasks[0].Title)
	assert.Equal(t, "Medium", snap.Tasks[0].Priority)

	listed, err := exports.ListExports(ctx, owner)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, export.Key, listed[0].Key)
}

func TestExportsAreOwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := newMemoryStorage()
	exports := NewExportService(f.categories, f.tasks, store, ExportOptions{Bucket: "exports"})

	store.objects["user-12/old.json"] = []byte("{}")
	store.objects["user-1/mine.json"] = []byte("{}")

	listed, err := exports.ListExports(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "user-1/mine.json", listed[0].Key)
}

func TestExportsDisabled(t *testing.T) {
	f := newFixture(t)
	exports := NewExportService(f.categories, f.tasks, nil, ExportOptions{})

	_, err := exports.Export(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExportsDisabled)
	_, err = exports.ListExports(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExportsDisabled)
}

func TestExportUploadFailureIsInfrastructure(t *testing.T) {
	f := newFixture(t)
	store := newMemoryStorage()
	store.fail = errors.New("bucket unreachable")
	exports := NewExportService(f.categories, f.tasks, store, ExportOptions{Bucket: "exports"})

	_, err := exports.Export(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
}
