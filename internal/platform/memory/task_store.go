package memory

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// Compile-time check that TaskStore satisfies the store contract.
var _ store.TaskStore = (*TaskStore)(nil)

// TaskStore implements store.TaskStore with a map guarded by a single
// reader/writer lock. The lock covers both the task map and the identifier
// counter, and every method holds it for its whole duration.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	lastID int64
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used to report rejected writes.
func WithLogger(log *slog.Logger) Option {
	return func(s *TaskStore) {
		if log != nil {
			s.logger = log.With(slog.String("component", "memory_task_store"))
		}
	}
}

// NewTaskStore creates an empty TaskStore. Identifiers start at 1.
func NewTaskStore(opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks:  make(map[int64]*domain.Task),
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create implements store.TaskStore.Create.
// The built task is validated before it is stored; a rejected task does not
// consume an identifier.
func (s *TaskStore) Create(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := domain.NewTask(s.lastID+1, input, s.now())
	if err := s.validate(ctx, "create", task); err != nil {
		return nil, err
	}

	s.lastID = task.ID
	s.tasks[task.ID] = task

	return task.Clone(), nil
}

// Get implements store.TaskStore.Get.
func (s *TaskStore) Get(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, notFound("get", id)
	}
	return task.Clone(), nil
}

// List implements store.TaskStore.List.
// Identifiers are assigned monotonically, so sorting by id yields insertion order.
func (s *TaskStore) List(_ context.Context, opts store.ListOptions) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if opts.Matches(task) {
			matched = append(matched, task)
		}
	}
	slices.SortFunc(matched, func(a, b *domain.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})

	start, end := opts.Window(len(matched))
	result := make([]*domain.Task, 0, end-start)
	for _, task := range matched[start:end] {
		result = append(result, task.Clone())
	}
	return result, nil
}

// Update implements store.TaskStore.Update.
// The patch is applied to a copy, so a rejected update leaves the stored
// task untouched.
func (s *TaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		return nil, notFound("update", id)
	}

	updated := current.Clone()
	updated.Apply(patch, s.now())
	if err := s.validate(ctx, "update", updated); err != nil {
		return nil, err
	}

	s.tasks[id] = updated
	return updated.Clone(), nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return notFound("delete", id)
	}
	delete(s.tasks, id)
	return nil
}

// Stats implements store.TaskStore.Stats.
func (s *TaskStore) Stats(_ context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return domain.StatsFromTasks(tasks), nil
}

// IsAvailable implements store.TaskStore.IsAvailable.
// An in-memory store has no external dependency, so it is always available.
func (s *TaskStore) IsAvailable(_ context.Context) bool {
	return true
}

// Len returns the number of tasks currently stored.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func notFound(operation string, id int64) error {
	return store.NewStoreError("task", operation, fmt.Sprintf("no task with id %d", id), store.ErrTaskNotFound)
}

// validate rejects a task that breaks the domain invariants. It wraps both
// store.ErrInvalidEntity and the domain validation error.
func (s *TaskStore) validate(ctx context.Context, operation string, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("task validation failed during "+operation,
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", operation, "task failed validation",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}
	return nil
}
