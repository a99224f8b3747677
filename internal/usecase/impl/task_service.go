package impl

import (
	"context"
	"log/slog"
	"strings"

	"taskman/internal/domain/entity"
	domainerrors "taskman/internal/domain/errors"
	"taskman/internal/domain/repository"
	"taskman/internal/usecase"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
)

// sortableTaskFields is the closed set of fields a listing may sort on.
var sortableTaskFields = map[string]bool{
	"createdAt":   true,
	"updatedAt":   true,
	"description": true,
	"completed":   true,
}

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger
}

// TaskServiceParams holds dependencies for taskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	Logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		logger:   params.Logger,
	}
}

// Create stores a new task with the owner forced to the authenticated caller.
func (srv *taskService) Create(ctx context.Context, owner primitive.ObjectID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	task := &entity.Task{
		Description: strings.TrimSpace(input.Description),
		Completed:   input.Completed,
		Owner:       owner,
	}
	if task.Description == "" {
		return nil, domainerrors.ErrDescriptionRequired
	}

	if err := srv.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// List returns the caller's tasks with optional filtering, pagination and sorting.
func (srv *taskService) List(ctx context.Context, owner primitive.ObjectID, input *usecase.ListTasksInput) ([]*entity.Task, error) {
	filter := repository.TaskFilter{
		Completed: input.Completed,
		Limit:     input.Limit,
		Skip:      input.Skip,
	}

	if input.SortBy != "" {
		field, order, ok := parseSortBy(input.SortBy)
		if ok {
			filter.SortField = field
			filter.SortOrder = order
		}
	}

	return srv.taskRepo.FindByOwner(ctx, owner, filter)
}

// parseSortBy splits "field:asc|desc" and checks the field against the
// sortable whitelist. Unknown fields and malformed values sort by nothing.
func parseSortBy(sortBy string) (string, repository.SortOrder, bool) {
	field, direction, _ := strings.Cut(sortBy, ":")
	if !sortableTaskFields[field] {
		return "", 0, false
	}

	order := repository.SortAscending
	if direction == "desc" {
		order = repository.SortDescending
	}

	return field, order, true
}

// Get retrieves one of the caller's tasks. A malformed id and a task owned
// by someone else both surface as not-found.
func (srv *taskService) Get(ctx context.Context, owner primitive.ObjectID, id string) (*entity.Task, error) {
	objectID, err := parseTaskID(id)
	if err != nil {
		return nil, err
	}

	task, err := srv.taskRepo.FindScoped(ctx, objectID, owner)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, err
	}

	return task, nil
}

// Update applies a whitelisted partial update to one of the caller's tasks.
func (srv *taskService) Update(ctx context.Context, owner primitive.ObjectID, id string, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	task, err := srv.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
		if task.Description == "" {
			return nil, domainerrors.ErrDescriptionRequired
		}
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := srv.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, err
	}

	return task, nil
}

// Delete removes one of the caller's tasks and returns the deleted task.
func (srv *taskService) Delete(ctx context.Context, owner primitive.ObjectID, id string) (*entity.Task, error) {
	objectID, err := parseTaskID(id)
	if err != nil {
		return nil, err
	}

	task, err := srv.taskRepo.DeleteScoped(ctx, objectID, owner)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, err
	}

	return task, nil
}

// parseTaskID enforces the 24-character hexadecimal id format. Anything else
// is reported as not-found, never as a distinct error.
func parseTaskID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domainerrors.ErrTaskNotFound
	}

	return objectID, nil
}
