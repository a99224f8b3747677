package context

import (
	"github.com/labstack/echo/v4"

	"taskman/internal/domain/entity"
)

const (
	// KeyCurrentUser is the echo context key holding the authenticated user.
	KeyCurrentUser = "current_user"

	// KeyCurrentToken is the echo context key holding the raw bearer token
	// that authenticated the current request.
	KeyCurrentToken = "current_token"
)

// SetCurrentUser attaches the authenticated user and the request's token to
// the echo context.
func SetCurrentUser(c echo.Context, user *entity.User, token string) {
	c.Set(KeyCurrentUser, user)
	c.Set(KeyCurrentToken, token)
}

// CurrentUser returns the authenticated user attached by the auth
// middleware, or nil outside an authenticated route.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(KeyCurrentUser).(*entity.User)

	return user
}

// CurrentToken returns the raw bearer token of the current request.
func CurrentToken(c echo.Context) string {
	token, _ := c.Get(KeyCurrentToken).(string)

	return token
}
