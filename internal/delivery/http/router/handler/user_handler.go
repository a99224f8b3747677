// Package handler contains the HTTP handlers for the application.
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"taskman/config"
	deliverycontext "taskman/internal/delivery/context"
	"taskman/internal/delivery/http/response"
	domainerrors "taskman/internal/domain/errors"
	"taskman/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// allowedUserUpdates is the closed whitelist of PATCH /users/me fields.
var allowedUserUpdates = map[string]bool{
	"email":    true,
	"password": true,
	"age":      true,
	"name":     true,
}

var imageFilenamePattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png)$`)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc             usecase.UserUsecase
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger, cfg *config.Config) *UserHandler {
	return &UserHandler{
		uc:             uc,
		logger:         logger,
		maxUploadBytes: cfg.Avatar.MaxUploadBytes,
	}
}

// Register handles POST /users.
func (h *UserHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, output)
}

// Login handles POST /users/login.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, output)
}

// Logout handles POST /users/logout. Only the token used for this request is
// invalidated; other sessions stay live.
func (h *UserHandler) Logout(c echo.Context) error {
	user := deliverycontext.CurrentUser(c)
	token := deliverycontext.CurrentToken(c)

	if err := h.uc.Logout(c.Request().Context(), user, token); err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]string{"message": "signed out"})
}

// LogoutAll handles POST /users/logoutAll.
func (h *UserHandler) LogoutAll(c echo.Context) error {
	user := deliverycontext.CurrentUser(c)

	if err := h.uc.LogoutAll(c.Request().Context(), user); err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]string{"message": "signed out of all sessions"})
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c echo.Context) error {
	user := deliverycontext.CurrentUser(c)

	return response.JSON(c, http.StatusOK, user.Public())
}

// List handles GET /users. Formerly public; now requires authentication and
// only exposes the public projection of each account.
func (h *UserHandler) List(c echo.Context) error {
	views, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, views)
}

// Update handles PATCH /users/me. The raw body keys are checked against the
// whitelist before decoding, so an unknown field is rejected instead of
// silently dropped.
func (h *UserHandler) Update(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "invalid update input")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return response.BadRequest(c, "invalid update input")
	}
	for key := range raw {
		if !allowedUserUpdates[key] {
			return response.BadRequest(c, domainerrors.ErrUnknownUpdateField.Message())
		}
	}

	var input usecase.UpdateUserInput
	if err := json.Unmarshal(body, &input); err != nil {
		return response.BadRequest(c, "invalid update input")
	}

	user := deliverycontext.CurrentUser(c)
	view, err := h.uc.Update(c.Request().Context(), user, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, view)
}

// Delete handles DELETE /users/me.
func (h *UserHandler) Delete(c echo.Context) error {
	user := deliverycontext.CurrentUser(c)

	if err := h.uc.Delete(c.Request().Context(), user); err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]string{"message": "account deleted"})
}

// UploadAvatar handles POST /users/me/avatar (multipart field "avatar").
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return response.BadRequest(c, "avatar file is required")
	}
	if fileHeader.Size > h.maxUploadBytes {
		return errors.WithStack(domainerrors.ErrAvatarTooLarge)
	}
	if !imageFilenamePattern.MatchString(fileHeader.Filename) {
		return errors.WithStack(domainerrors.ErrAvatarBadType)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "unable to read the uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return response.BadRequest(c, "unable to read the uploaded file")
	}
	if int64(len(data)) > h.maxUploadBytes {
		return errors.WithStack(domainerrors.ErrAvatarTooLarge)
	}

	user := deliverycontext.CurrentUser(c)
	if err := h.uc.SetAvatar(c.Request().Context(), user, data); err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]string{"message": "avatar uploaded"})
}

// DeleteAvatar handles DELETE /users/me/avatar.
func (h *UserHandler) DeleteAvatar(c echo.Context) error {
	user := deliverycontext.CurrentUser(c)

	if err := h.uc.RemoveAvatar(c.Request().Context(), user); err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]string{"message": "avatar deleted"})
}

// GetAvatar handles GET /users/:id/avatar, the one public avatar route.
func (h *UserHandler) GetAvatar(c echo.Context) error {
	data, err := h.uc.GetAvatar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", data)
}
