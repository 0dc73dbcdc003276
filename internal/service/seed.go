package service

import (
	"context"
	"fmt"

	"github.com/phrazzld/task-api/internal/domain"
)

// DemoTasks returns the sample tasks inserted when demo seeding is enabled.
func DemoTasks() []domain.NewTaskInput {
	describe := func(s string) *string { return &s }

	return []domain.NewTaskInput{
		{Title: "Setup CI Pipeline", Description: describe("Configure GitHub Actions"), Priority: domain.PriorityHigh},
		{Title: "Write Unit Tests", Description: describe("Add unit tests"), Priority: domain.PriorityHigh},
		{Title: "Docker Configuration", Description: describe("Create Dockerfile"), Priority: domain.PriorityMedium},
		{Title: "Documentation", Description: describe("Write API docs"), Priority: domain.PriorityLow},
	}
}

// SeedDemoTasks creates every task from DemoTasks through svc, in order.
// It stops at the first failure.
func SeedDemoTasks(ctx context.Context, svc TaskService) ([]*domain.Task, error) {
	inputs := DemoTasks()
	created := make([]*domain.Task, 0, len(inputs))

	for _, input := range inputs {
		task, err := svc.CreateTask(ctx, input)
		if err != nil {
			return created, fmt.Errorf("failed to seed demo task %q: %w", input.Title, err)
		}
		created = append(created, task)
	}

	return created, nil
}
