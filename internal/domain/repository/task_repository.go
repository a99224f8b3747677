package repository

import (
	"context"
	"errors"

	"taskman/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrTaskNotFound is returned when no task matches a scoped lookup. A task
// owned by someone else is indistinguishable from a missing one.
var ErrTaskNotFound = errors.New("task not found")

// SortOrder for list queries.
type SortOrder int

const (
	SortAscending  SortOrder = 1
	SortDescending SortOrder = -1
)

// TaskFilter narrows a task listing. Nil/zero fields mean "no constraint":
// a nil Completed matches both states and a zero Limit means unbounded.
type TaskFilter struct {
	Completed *bool
	Limit     int64
	Skip      int64
	SortField string
	SortOrder SortOrder
}

// TaskRepository defines the standard operations for task persistence.
type TaskRepository interface {
	// FindByOwner lists a single owner's tasks, applying the filter.
	FindByOwner(ctx context.Context, owner primitive.ObjectID, filter TaskFilter) ([]*entity.Task, error)

	// FindScoped retrieves a task matching both id and owner.
	FindScoped(ctx context.Context, id, owner primitive.ObjectID) (*entity.Task, error)

	// Create persists a new task.
	Create(ctx context.Context, task *entity.Task) error

	// Update modifies an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// DeleteScoped removes a task matching both id and owner and returns the
	// deleted task.
	DeleteScoped(ctx context.Context, id, owner primitive.ObjectID) (*entity.Task, error)

	// DeleteByOwner removes every task belonging to the owner. Used for the
	// cascade when an account is deleted.
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error
}
