package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/pkg/jwt"
	"storefront/internal/pkg/response"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	Verify(accessToken string) (string, error)
}

// UserLookup loads the user named by a verified token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// JWTAuth authenticates the request from the accessToken cookie (or a Bearer
// header) and sets user_id and role in the gin context.
func JWTAuth(verifier TokenVerifier, users UserLookup, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.AccessTokenFromRequest(c.Request)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Unauthorized - No access token provided")
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Abort(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Unauthorized - Access token expired")
				return
			}
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Unauthorized - Invalid access token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			if err != nil {
				log.Debug("token user lookup failed", "user_id", userID, "error", err)
			}
			response.Abort(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}
