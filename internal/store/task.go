package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// ListOptions restricts and paginates a task listing.
// Nil filters impose no constraint; set filters combine with logical AND.
type ListOptions struct {
	// Skip is the number of matching tasks to drop from the front.
	Skip int
	// Limit is the maximum number of tasks returned after skipping.
	Limit int
	// Completed, when set, keeps only tasks whose completion matches.
	Completed *bool
	// Priority, when set, keeps only tasks with that priority.
	Priority *domain.Priority
}

// Matches reports whether task satisfies every filter in the options.
func (o ListOptions) Matches(task *domain.Task) bool {
	if o.Completed != nil && task.Completed != *o.Completed {
		return false
	}
	if o.Priority != nil && task.Priority != *o.Priority {
		return false
	}
	return true
}

// Window returns the half-open range [start, end) of an n-element sequence
// selected by Skip and Limit. Out-of-range and negative values are clamped
// so the result is always a valid slice bound.
func (o ListOptions) Window(n int) (start, end int) {
	start = max(o.Skip, 0)
	limit := max(o.Limit, 0)
	if start > n {
		start = n
	}
	end = n
	if limit < n-start {
		end = start + limit
	}
	return start, end
}

// TaskStore defines the interface for task data persistence.
// Every method is atomic with respect to every other call on the same store,
// so any interleaving of concurrent calls behaves like some serial order.
// Returned tasks are copies; mutating them never affects stored state.
// Version: 1.0
type TaskStore interface {
	// Create assigns the next identifier and stores a new, incomplete task
	// with CreatedAt and UpdatedAt set to the current time.
	// Input is expected to be validated by the caller.
	Create(ctx context.Context, input domain.NewTaskInput) (*domain.Task, error)

	// Get retrieves a task by its identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the tasks matching opts in ascending identifier order,
	// restricted to the window [opts.Skip, opts.Skip+opts.Limit).
	// An empty result is an empty, non-nil slice.
	List(ctx context.Context, opts ListOptions) ([]*domain.Task, error)

	// Update applies the fields set in patch and refreshes UpdatedAt.
	// Returns ErrTaskNotFound, without mutating anything, if the task does not exist.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task permanently. Its identifier is never reused.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Stats aggregates counts over the tasks currently stored.
	Stats(ctx context.Context) (*domain.Stats, error)

	// IsAvailable reports whether the store can serve requests.
	IsAvailable(ctx context.Context) bool
}
