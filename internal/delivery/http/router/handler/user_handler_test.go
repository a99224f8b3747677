package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"taskman/config"
	"taskman/internal/domain/entity"
	"taskman/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func createTestUserHandler(t *testing.T) (*UserHandler, *mockUserUsecase) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Avatar = config.AvatarConfig{MaxUploadBytes: 1_000_000, Width: 250, Height: 250}

	uc := &mockUserUsecase{}

	return NewUserHandler(uc, newDiscardLogger(), cfg), uc
}

func TestUserHandler_Register(t *testing.T) {
	h, uc := createTestUserHandler(t)

	user := &entity.User{
		ID:       primitive.NewObjectID(),
		Name:     "A",
		Email:    "a@x.com",
		Password: "hashed-secret",
		Tokens:   []string{"issued-token"},
	}
	uc.On("Register", mock.Anything, &usecase.RegisterInput{
		Name:     "A",
		Email:    "a@x.com",
		Password: "secret1",
	}).Return(&usecase.AuthOutput{User: user.Public(), Token: "issued-token"}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/users",
		`{"name":"A","email":"a@x.com","password":"secret1"}`, nil)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `"issued-token"`, string(body["token"]))

	// The user projection never leaks credentials or session state.
	var view map[string]any
	require.NoError(t, json.Unmarshal(body["user"], &view))
	assert.Equal(t, "a@x.com", view["email"])
	assert.NotContains(t, view, "password")
	assert.NotContains(t, view, "tokens")
	assert.NotContains(t, view, "avatar")
}

func TestUserHandler_Update_UnknownFieldRejected(t *testing.T) {
	h, uc := createTestUserHandler(t)
	user := &entity.User{ID: primitive.NewObjectID(), Name: "A", Email: "a@x.com"}

	c, rec := newTestContext(t, http.MethodPatch, "/users/me",
		`{"name":"B","role":"admin"}`, user)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"cannot update non-existent property"}`, rec.Body.String())
	uc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_Update_WhitelistedFields(t *testing.T) {
	h, uc := createTestUserHandler(t)
	user := &entity.User{ID: primitive.NewObjectID(), Name: "A", Email: "a@x.com"}

	name := "B"
	uc.On("Update", mock.Anything, user, &usecase.UpdateUserInput{Name: &name}).
		Return(entity.PublicView{Name: "B", Email: "a@x.com"}, nil)

	c, rec := newTestContext(t, http.MethodPatch, "/users/me", `{"name":"B"}`, user)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestUserHandler_Logout_UsesPresentedToken(t *testing.T) {
	h, uc := createTestUserHandler(t)
	user := &entity.User{ID: primitive.NewObjectID()}

	uc.On("Logout", mock.Anything, user, "test-token").Return(nil)

	c, rec := newTestContext(t, http.MethodPost, "/users/logout", "", user)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestUserHandler_Me(t *testing.T) {
	h, _ := createTestUserHandler(t)
	user := &entity.User{
		ID:       primitive.NewObjectID(),
		Name:     "A",
		Email:    "a@x.com",
		Password: "hashed-secret",
	}

	c, rec := newTestContext(t, http.MethodGet, "/users/me", "", user)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hashed-secret")
}

func TestUserHandler_GetAvatar(t *testing.T) {
	h, uc := createTestUserHandler(t)
	id := primitive.NewObjectID().Hex()

	uc.On("GetAvatar", mock.Anything, id).Return([]byte("png-bytes"), nil)

	c, rec := newTestContext(t, http.MethodGet, "/users/"+id+"/avatar", "", nil)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.GetAvatar(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestImageFilenamePattern(t *testing.T) {
	assert.True(t, imageFilenamePattern.MatchString("photo.jpg"))
	assert.True(t, imageFilenamePattern.MatchString("photo.JPEG"))
	assert.True(t, imageFilenamePattern.MatchString("photo.png"))
	assert.False(t, imageFilenamePattern.MatchString("document.pdf"))
	assert.False(t, imageFilenamePattern.MatchString("photo.png.exe"))
}
