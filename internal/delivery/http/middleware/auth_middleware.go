package middleware

import (
	"strings"

	deliverycontext "taskman/internal/delivery/context"
	"taskman/internal/delivery/http/response"
	domainerrors "taskman/internal/domain/errors"
	"taskman/internal/domain/repository"
	"taskman/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthMiddleware validates bearer tokens and resolves the calling user.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate rejects the request unless it carries a bearer token that
// verifies AND still appears in the resolved user's live-token list; the
// second check is what makes remote logout effective even though the token's
// signature never expires. Every failure mode answers the same 401 body so
// callers learn nothing about the cause.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			return m.reject(c)
		}

		userID, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return m.reject(c)
		}

		objectID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return m.reject(c)
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), objectID)
		if err != nil || !user.HasToken(tokenString) {
			return m.reject(c)
		}

		deliverycontext.SetCurrentUser(c, user, tokenString)

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context) error {
	return response.Unauthorized(c, domainerrors.ErrAuthentication.Message())
}
