package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error)
	GetFn         func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn        func(ctx context.Context, opts store.ListOptions) ([]*domain.Task, error)
	UpdateFn      func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn      func(ctx context.Context, id int64) error
	StatsFn       func(ctx context.Context) (*domain.Stats, error)
	IsAvailableFn func(ctx context.Context) bool

	// Err is returned by every method whose function field is nil.
	Err error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input)
	}
	return nil, m.Err
}

// Get implements store.TaskStore
func (m *MockTaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.Err
}

// List implements store.TaskStore
func (m *MockTaskStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, opts)
	}
	return nil, m.Err
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, m.Err
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// Stats implements store.TaskStore
func (m *MockTaskStore) Stats(ctx context.Context) (*domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return nil, m.Err
}

// IsAvailable implements store.TaskStore
func (m *MockTaskStore) IsAvailable(ctx context.Context) bool {
	if m.IsAvailableFn != nil {
		return m.IsAvailableFn(ctx)
	}
	return m.Err == nil
}
