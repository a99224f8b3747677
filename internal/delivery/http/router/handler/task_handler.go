package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "taskman/internal/delivery/context"
	"taskman/internal/delivery/http/response"
	domainerrors "taskman/internal/domain/errors"
	"taskman/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// allowedTaskUpdates is the closed whitelist of PATCH /tasks/:id fields.
var allowedTaskUpdates = map[string]bool{
	"description": true,
	"completed":   true,
}

// TaskHandler holds dependencies for task-related handlers.
type TaskHandler struct {
	uc     usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{uc: uc, logger: logger}
}

// Create handles POST /tasks. The owner always comes from the authenticated
// caller; an "owner" field in the body is ignored.
func (h *TaskHandler) Create(c echo.Context) error {
	var input usecase.CreateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "invalid task input")
	}

	user := deliverycontext.CurrentUser(c)
	task, err := h.uc.Create(c.Request().Context(), user.ID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, task)
}

// List handles GET /tasks with optional completed/limit/skip/sortBy query
// parameters. Unparsable limit or skip values are treated as absent.
func (h *TaskHandler) List(c echo.Context) error {
	input := usecase.ListTasksInput{
		SortBy: c.QueryParam("sortBy"),
	}

	if raw := c.QueryParam("completed"); raw != "" {
		completed := raw == "true"
		input.Completed = &completed
	}
	if limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64); err == nil && limit > 0 {
		input.Limit = limit
	}
	if skip, err := strconv.ParseInt(c.QueryParam("skip"), 10, 64); err == nil && skip > 0 {
		input.Skip = skip
	}

	user := deliverycontext.CurrentUser(c)
	tasks, err := h.uc.List(c.Request().Context(), user.ID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, tasks)
}

// ListAll handles GET /tasks/readAll. Formerly returned every task in the
// system to anyone; now requires authentication and is scoped to the caller.
func (h *TaskHandler) ListAll(c echo.Context) error {
	user := deliverycontext.CurrentUser(c)
	tasks, err := h.uc.List(c.Request().Context(), user.ID, &usecase.ListTasksInput{})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, tasks)
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	id := c.Param("id")

	user := deliverycontext.CurrentUser(c)
	task, err := h.uc.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrTaskNotFound) {
			return c.String(http.StatusNotFound, "Can not find valid task of id "+id)
		}

		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, task)
}

// Update handles PATCH /tasks/:id. An unknown body key is rejected and
// processing stops there.
func (h *TaskHandler) Update(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "invalid update input")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return response.BadRequest(c, "invalid update input")
	}
	for key := range raw {
		if !allowedTaskUpdates[key] {
			return c.String(http.StatusBadRequest, "Can not update NON-existent property!")
		}
	}

	var input usecase.UpdateTaskInput
	if err := json.Unmarshal(body, &input); err != nil {
		return response.BadRequest(c, "invalid update input")
	}

	id := c.Param("id")
	user := deliverycontext.CurrentUser(c)
	task, err := h.uc.Update(c.Request().Context(), user.ID, id, &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrTaskNotFound) {
			return c.String(http.StatusNotFound, "Can not find valid task of id "+id)
		}

		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id and echoes the deleted task back.
func (h *TaskHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	user := deliverycontext.CurrentUser(c)
	task, err := h.uc.Delete(c.Request().Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrTaskNotFound) {
			return c.String(http.StatusNotFound, "Can not delete this task")
		}

		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, task)
}
