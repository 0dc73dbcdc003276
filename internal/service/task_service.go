package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask validates input and stores a new task
	CreateTask(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks returns a filtered, paginated view of the tasks
	ListTasks(ctx context.Context, opts store.ListOptions) ([]*domain.Task, error)

	// UpdateTask applies a partial update to an existing task
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask permanently removes a task
	DeleteTask(ctx context.Context, id int64) error

	// GetStats returns aggregate statistics over all tasks
	GetStats(ctx context.Context) (*domain.Stats, error)

	// IsAvailable reports whether the backing store can serve requests
	IsAvailable(ctx context.Context) bool
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore    store.TaskStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}
	if eventEmitter == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "eventEmitter cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:    taskStore,
		eventEmitter: eventEmitter,
		logger:       logger.With(slog.String("component", "task_service")),
	}, nil
}

// log prefers the request-scoped logger carried in ctx.
func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error) {
	log := s.log(ctx)

	if err := input.Validate(); err != nil {
		log.Debug("rejected task input", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "invalid task input", err)
	}

	task, err := s.taskStore.Create(ctx, input)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("priority", string(task.Priority)))

	s.emit(ctx, events.TaskCreated, task.ID, task)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.Get(ctx, id)
	if err != nil {
		s.log(ctx).Debug("task lookup failed",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, opts store.ListOptions) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, opts)
	if err != nil {
		s.log(ctx).Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	s.log(ctx).Debug("listed tasks",
		slog.Int("skip", opts.Skip),
		slog.Int("limit", opts.Limit),
		slog.Int("returned", len(tasks)))
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	log := s.log(ctx)

	if err := patch.Validate(); err != nil {
		log.Debug("rejected task patch",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("update_task", "invalid task patch", err)
	}

	task, err := s.taskStore.Update(ctx, id, patch)
	if err != nil {
		log.Debug("task update failed",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated",
		slog.Int64("task_id", task.ID),
		slog.Bool("completed", task.Completed))

	s.emit(ctx, events.TaskUpdated, task.ID, task)
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		s.log(ctx).Debug("task delete failed",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.log(ctx).Info("task deleted", slog.Int64("task_id", id))

	s.emit(ctx, events.TaskDeleted, id, nil)
	return nil
}

// GetStats implements TaskService.GetStats
func (s *taskServiceImpl) GetStats(ctx context.Context) (*domain.Stats, error) {
	stats, err := s.taskStore.Stats(ctx)
	if err != nil {
		s.log(ctx).Error("failed to compute stats", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_stats", "failed to compute statistics", err)
	}
	return stats, nil
}

// IsAvailable implements TaskService.IsAvailable
func (s *taskServiceImpl) IsAvailable(ctx context.Context) bool {
	return s.taskStore.IsAvailable(ctx)
}

// emit publishes a lifecycle event. The mutation has already been applied,
// so failures are logged rather than returned to the caller.
func (s *taskServiceImpl) emit(ctx context.Context, eventType string, taskID int64, task *domain.Task) {
	var payload interface{}
	if task != nil {
		payload = task
	}

	event, err := events.NewTaskEvent(eventType, taskID, payload)
	if err != nil {
		s.log(ctx).Error("failed to build task event",
			slog.String("event_type", eventType),
			slog.Int64("task_id", taskID),
			slog.String("error", err.Error()))
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.log(ctx).Warn("task event handlers reported errors",
			slog.String("event_type", eventType),
			slog.Int64("task_id", taskID),
			slog.String("error", err.Error()))
	}
}
