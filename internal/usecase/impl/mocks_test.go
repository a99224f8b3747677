package impl

import (
	"context"
	"io"
	"log/slog"

	"taskman/internal/domain/entity"
	"taskman/internal/domain/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserRepository is a testify mock of repository.UserRepository.
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

// mockTaskRepository is a testify mock of repository.TaskRepository.
type mockTaskRepository struct {
	mock.Mock
}

func (m *mockTaskRepository) FindByOwner(ctx context.Context, owner primitive.ObjectID, filter repository.TaskFilter) ([]*entity.Task, error) {
	args := m.Called(ctx, owner, filter)
	if tasks, ok := args.Get(0).([]*entity.Task); ok {
		return tasks, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTaskRepository) FindScoped(ctx context.Context, id, owner primitive.ObjectID) (*entity.Task, error) {
	args := m.Called(ctx, id, owner)
	if task, ok := args.Get(0).(*entity.Task); ok {
		return task, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskRepository) DeleteScoped(ctx context.Context, id, owner primitive.ObjectID) (*entity.Task, error) {
	args := m.Called(ctx, id, owner)
	if task, ok := args.Get(0).(*entity.Task); ok {
		return task, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTaskRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error {
	return m.Called(ctx, owner).Error(0)
}

// mockMailer is a testify mock of service.Mailer.
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

// mockProcessor is a testify mock of service.ImageProcessor.
type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(data []byte, width, height int) ([]byte, error) {
	args := m.Called(data, width, height)
	if out, ok := args.Get(0).([]byte); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}
