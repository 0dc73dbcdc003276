package domain

import "time"

// Priority represents how urgent a task is.
type Priority string

// Possible priority values
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"

	// DefaultPriority is assigned when a task is created without a priority.
	DefaultPriority = PriorityMedium
)

// AllPriorities returns every valid priority in canonical order.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// Task represents one unit of work tracked by the API.
// Description is nil when the task has no description.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask builds an active, not yet completed task from validated input.
// The caller is responsible for assigning a unique id.
func NewTask(id int64, input NewTaskInput, now time.Time) *Task {
	priority := input.Priority
	if priority == "" {
		priority = DefaultPriority
	}

	return &Task{
		ID:          id,
		Title:       input.Title,
		Description: cloneString(input.Description),
		Priority:    priority,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a deep copy of the task. Mutating the copy, including
// through its Description pointer, never affects the original.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Description = cloneString(t.Description)
	return &c
}

// Apply writes every field set in patch onto the task and advances
// UpdatedAt to now. UpdatedAt always moves strictly forward, even when
// the clock reports a time at or before the previous update.
func (t *Task) Apply(patch TaskPatch, now time.Time) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = cloneString(patch.Description)
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}

	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID <= 0 {
		return NewValidationError("id", "must be positive", ErrInvalidID)
	}
	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if !t.Priority.Valid() {
		return NewValidationError("priority", "is not a known priority", ErrInvalidPriority)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return NewValidationError("updated_at", "cannot precede created_at", ErrValidation)
	}
	return nil
}

// NewTaskInput carries the fields accepted when creating a task.
type NewTaskInput struct {
	Title       string
	Description *string
	Priority    Priority
}

// Validate checks the invariants the domain owns. Length limits are
// enforced at the request boundary.
func (in NewTaskInput) Validate() error {
	if in.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return NewValidationError("priority", "is not a known priority", ErrInvalidPriority)
	}
	return nil
}

// TaskPatch describes a partial update. A nil field is left untouched;
// there is no way to clear a field, so an explicit null from a client is
// a no-op.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Completed   *bool
}

// IsEmpty reports whether the patch sets no field at all.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Completed == nil
}

// Validate checks the invariants the domain owns for the fields present.
func (p TaskPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return NewValidationError("priority", "is not a known priority", ErrInvalidPriority)
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
