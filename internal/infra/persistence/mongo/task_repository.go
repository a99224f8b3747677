package mongo

import (
	"context"
	"time"

	"taskman/internal/domain/entity"
	"taskman/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// taskRepository implements the domain.TaskRepository interface on MongoDB.
type taskRepository struct {
	coll *mongo.Collection
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *mongo.Database) repository.TaskRepository {
	return &taskRepository{coll: db.Collection(tasksCollection)}
}

// FindByOwner lists a single owner's tasks, applying the filter.
func (repo *taskRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID, filter repository.TaskFilter) ([]*entity.Task, error) {
	query := bson.M{"owner": owner}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}
	if filter.SortField != "" {
		order := filter.SortOrder
		if order == 0 {
			order = repository.SortAscending
		}
		opts.SetSort(bson.D{{Key: filter.SortField, Value: int(order)}})
	}

	cursor, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}
	defer cursor.Close(ctx)

	tasks := []*entity.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, errors.Wrap(err, "failed to decode tasks")
	}

	return tasks, nil
}

// FindScoped retrieves a task matching both id and owner.
func (repo *taskRepository) FindScoped(ctx context.Context, id, owner primitive.ObjectID) (*entity.Task, error) {
	var task entity.Task
	err := repo.coll.FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task")
	}

	return &task, nil
}

// Create persists a new task.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}

	if _, err := repo.coll.InsertOne(ctx, task); err != nil {
		return errors.Wrap(err, "failed to create task")
	}

	return nil
}

// Update modifies an existing task.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	task.UpdatedAt = time.Now().UTC()

	result, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": task.ID, "owner": task.Owner}, task)
	if err != nil {
		return errors.Wrap(err, "failed to update task")
	}
	if result.MatchedCount == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// DeleteScoped removes a task matching both id and owner and returns it.
func (repo *taskRepository) DeleteScoped(ctx context.Context, id, owner primitive.ObjectID) (*entity.Task, error) {
	var task entity.Task
	err := repo.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "owner": owner}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to delete task")
	}

	return &task, nil
}

// DeleteByOwner removes every task belonging to the owner.
func (repo *taskRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error {
	if _, err := repo.coll.DeleteMany(ctx, bson.M{"owner": owner}); err != nil {
		return errors.Wrap(err, "failed to delete tasks for owner")
	}

	return nil
}
