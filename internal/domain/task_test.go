package domain

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestNewTask(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	task := NewTask(1, NewTaskInput{Title: "A", Priority: PriorityHigh}, now)

	if task.ID != 1 {
		t.Errorf("Expected ID 1, got %d", task.ID)
	}
	if task.Completed {
		t.Error("Expected new task to be incomplete")
	}
	if task.Priority != PriorityHigh {
		t.Errorf("Expected priority %s, got %s", PriorityHigh, task.Priority)
	}
	if !task.CreatedAt.Equal(now) || !task.UpdatedAt.Equal(now) {
		t.Errorf("Expected timestamps %v, got %v/%v", now, task.CreatedAt, task.UpdatedAt)
	}
	if task.Description != nil {
		t.Error("Expected nil description")
	}
	if err := task.Validate(); err != nil {
		t.Errorf("Expected valid task, got %v", err)
	}
}

func TestNewTaskDefaultPriority(t *testing.T) {
	t.Parallel()
	task := NewTask(7, NewTaskInput{Title: "No priority"}, time.Now().UTC())

	if task.Priority != DefaultPriority {
		t.Errorf("Expected default priority %s, got %s", DefaultPriority, task.Priority)
	}
}

func TestNewTaskCopiesDescription(t *testing.T) {
	t.Parallel()
	desc := "original"
	task := NewTask(1, NewTaskInput{Title: "A", Description: &desc}, time.Now().UTC())

	desc = "changed"
	if *task.Description != "original" {
		t.Errorf("Expected description to be copied, got %q", *task.Description)
	}
}

func TestTaskClone(t *testing.T) {
	t.Parallel()
	orig := NewTask(1, NewTaskInput{Title: "A", Description: strPtr("d")}, time.Now().UTC())

	c := orig.Clone()
	c.Title = "B"
	*c.Description = "mutated"

	if orig.Title != "A" {
		t.Errorf("Expected original title untouched, got %q", orig.Title)
	}
	if *orig.Description != "d" {
		t.Errorf("Expected original description untouched, got %q", *orig.Description)
	}

	var nilTask *Task
	if nilTask.Clone() != nil {
		t.Error("Expected nil clone of nil task")
	}
}

func TestTaskApply(t *testing.T) {
	t.Parallel()
	created := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	task := NewTask(1, NewTaskInput{Title: "T0", Description: strPtr("D0"), Priority: PriorityLow}, created)

	done := true
	task.Apply(TaskPatch{Completed: &done}, created.Add(time.Second))

	if task.Title != "T0" || *task.Description != "D0" || task.Priority != PriorityLow {
		t.Errorf("Expected untouched fields to be preserved, got %+v", task)
	}
	if !task.Completed {
		t.Error("Expected task to be completed")
	}
	if !task.UpdatedAt.Equal(created.Add(time.Second)) {
		t.Errorf("Expected UpdatedAt to advance, got %v", task.UpdatedAt)
	}
	if !task.CreatedAt.Equal(created) {
		t.Errorf("Expected CreatedAt unchanged, got %v", task.CreatedAt)
	}
}

func TestTaskApplyClockDoesNotGoBackwards(t *testing.T) {
	t.Parallel()
	created := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	task := NewTask(1, NewTaskInput{Title: "T"}, created)

	task.Apply(TaskPatch{}, created)
	if !task.UpdatedAt.After(created) {
		t.Errorf("Expected UpdatedAt after %v, got %v", created, task.UpdatedAt)
	}

	prev := task.UpdatedAt
	task.Apply(TaskPatch{}, created.Add(-time.Hour))
	if !task.UpdatedAt.After(prev) {
		t.Errorf("Expected UpdatedAt after %v, got %v", prev, task.UpdatedAt)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{"valid", Task{ID: 1, Title: "A", Priority: PriorityLow, CreatedAt: now, UpdatedAt: now}, nil},
		{"zero id", Task{ID: 0, Title: "A", Priority: PriorityLow, CreatedAt: now, UpdatedAt: now}, ErrInvalidID},
		{"empty title", Task{ID: 1, Title: "", Priority: PriorityLow, CreatedAt: now, UpdatedAt: now}, ErrEmptyTitle},
		{"whitespace title is allowed", Task{ID: 1, Title: "  ", Priority: PriorityLow, CreatedAt: now, UpdatedAt: now}, nil},
		{"bad priority", Task{ID: 1, Title: "A", Priority: "urgent", CreatedAt: now, UpdatedAt: now}, ErrInvalidPriority},
		{"updated before created", Task{ID: 1, Title: "A", Priority: PriorityLow, CreatedAt: now, UpdatedAt: now.Add(-time.Second)}, ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.task.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTaskPatch(t *testing.T) {
	t.Parallel()

	if !(TaskPatch{}).IsEmpty() {
		t.Error("Expected zero patch to be empty")
	}

	empty := ""
	if err := (TaskPatch{Title: &empty}).Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}

	bad := Priority("urgent")
	if err := (TaskPatch{Priority: &bad}).Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}

	done := true
	p := TaskPatch{Completed: &done}
	if p.IsEmpty() {
		t.Error("Expected patch with completed set to be non-empty")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestNewTaskInputValidate(t *testing.T) {
	t.Parallel()

	if err := (NewTaskInput{Title: "ok"}).Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := (NewTaskInput{}).Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
	if err := (NewTaskInput{Title: "ok", Priority: "nope"}).Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
}
