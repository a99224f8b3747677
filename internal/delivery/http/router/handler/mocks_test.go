package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "taskman/internal/delivery/context"
	"taskman/internal/domain/entity"
	"taskman/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestContext builds an echo context for a JSON request, optionally with
// an authenticated user already resolved, the way the auth middleware
// would leave it.
func newTestContext(t *testing.T, method, target, body string, user *entity.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if user != nil {
		deliverycontext.SetCurrentUser(c, user, "test-token")
	}

	return c, rec
}

// mockUserUsecase is a testify mock of usecase.UserUsecase.
type mockUserUsecase struct {
	mock.Mock
}

func (m *mockUserUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.AuthOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserUsecase) Logout(ctx context.Context, user *entity.User, token string) error {
	return m.Called(ctx, user, token).Error(0)
}

func (m *mockUserUsecase) LogoutAll(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserUsecase) List(ctx context.Context) ([]entity.PublicView, error) {
	args := m.Called(ctx)
	if views, ok := args.Get(0).([]entity.PublicView); ok {
		return views, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserUsecase) Update(ctx context.Context, user *entity.User, input *usecase.UpdateUserInput) (entity.PublicView, error) {
	args := m.Called(ctx, user, input)

	return args.Get(0).(entity.PublicView), args.Error(1)
}

func (m *mockUserUsecase) Delete(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserUsecase) SetAvatar(ctx context.Context, user *entity.User, data []byte) error {
	return m.Called(ctx, user, data).Error(0)
}

func (m *mockUserUsecase) RemoveAvatar(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserUsecase) GetAvatar(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}

	return nil, args.Error(1)
}

// mockTaskUsecase is a testify mock of usecase.TaskUsecase.
type mockTaskUsecase struct {
	mock.Mock
}

func (m *mockTaskUsecase) Create(ctx context.Context, owner primitive.ObjectID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	args := m.Called(ctx, owner, input)
	if task, ok := args.Get(0).(*entity.Task); ok {
		return task, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTaskUsecase) List(ctx context.Context, owner primitive.ObjectID, input *usecase.ListTasksInput) ([]*entity.Task, error) {
	args := m.Called(ctx, owner, input)
	if tasks, ok := args.Get(0).([]*entity.Task); ok {
		return tasks, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTaskUsecase) Get(ctx context.Context, owner primitive.ObjectID, id string) (*entity.Task, error) {
	args := m.Called(ctx, owner, id)
	if task, ok := args.Get(0).(*entity.Task); ok {
		return task, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTaskUsecase) Update(ctx context.Context, owner primitive.ObjectID, id string, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	args := m.Called(ctx, owner, id, input)
	if task, ok := args.Get(0).(*entity.Task); ok {
		return task, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTaskUsecase) Delete(ctx context.Context, owner primitive.ObjectID, id string) (*entity.Task, error) {
	args := m.Called(ctx, owner, id)
	if task, ok := args.Get(0).(*entity.Task); ok {
		return task, args.Error(1)
	}

	return nil, args.Error(1)
}
