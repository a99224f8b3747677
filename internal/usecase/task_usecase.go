package usecase

import (
	"context"

	"taskman/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTaskInput defines the data required to create a task. The owner is
// never taken from the request body; it is forced to the authenticated caller.
type CreateTaskInput struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateTaskInput is the partial-update type for PATCH /tasks/:id. The
// settable fields form a closed whitelist; anything else is rejected before
// this struct is populated.
type UpdateTaskInput struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ListTasksInput carries the optional filter, pagination and sort of a task
// listing. Zero values mean "no constraint".
type ListTasksInput struct {
	Completed *bool
	Limit     int64
	Skip      int64
	SortBy    string // "field:asc" or "field:desc", default ascending
}

// TaskUsecase defines the interface for task-related business operations.
// Every operation is scoped to the owning user; a task owned by someone else
// behaves exactly like a missing one.
type TaskUsecase interface {
	Create(ctx context.Context, owner primitive.ObjectID, input *CreateTaskInput) (*entity.Task, error)

	List(ctx context.Context, owner primitive.ObjectID, input *ListTasksInput) ([]*entity.Task, error)

	Get(ctx context.Context, owner primitive.ObjectID, id string) (*entity.Task, error)

	Update(ctx context.Context, owner primitive.ObjectID, id string, input *UpdateTaskInput) (*entity.Task, error)

	Delete(ctx context.Context, owner primitive.ObjectID, id string) (*entity.Task, error)
}
