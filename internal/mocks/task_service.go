package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskService implements service.TaskService for testing. It records
// the arguments of the last call to each method.
type MockTaskService struct {
	CreateTaskFn  func(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error)
	GetTaskFn     func(ctx context.Context, id int64) (*domain.Task, error)
	ListTasksFn   func(ctx context.Context, opts store.ListOptions) ([]*domain.Task, error)
	UpdateTaskFn  func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn  func(ctx context.Context, id int64) error
	GetStatsFn    func(ctx context.Context) (*domain.Stats, error)
	IsAvailableFn func(ctx context.Context) bool

	// Default values used when functions aren't explicitly defined
	Task      *domain.Task
	Tasks     []*domain.Task
	Stats     *domain.Stats
	Err       error
	Available bool

	mu          sync.Mutex
	LastInput   domain.NewTaskInput
	LastPatch   domain.TaskPatch
	LastListOps store.ListOptions
	LastID      int64
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error) {
	m.mu.Lock()
	m.LastInput = input
	m.mu.Unlock()
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return m.Task, m.Err
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	m.LastID = id
	m.mu.Unlock()
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.Err
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(ctx context.Context, opts store.ListOptions) ([]*domain.Task, error) {
	m.mu.Lock()
	m.LastListOps = opts
	m.mu.Unlock()
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, opts)
	}
	return m.Tasks, m.Err
}

// UpdateTask implements service.TaskService
func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	m.mu.Lock()
	m.LastID = id
	m.LastPatch = patch
	m.mu.Unlock()
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return m.Task, m.Err
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.LastID = id
	m.mu.Unlock()
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Err
}

// GetStats implements service.TaskService
func (m *MockTaskService) GetStats(ctx context.Context) (*domain.Stats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx)
	}
	return m.Stats, m.Err
}

// IsAvailable implements service.TaskService
func (m *MockTaskService) IsAvailable(ctx context.Context) bool {
	if m.IsAvailableFn != nil {
		return m.IsAvailableFn(ctx)
	}
	return m.Available
}
