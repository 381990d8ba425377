package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/apperr"
	"github.com/mrlokans/tracker/internal/config"
	"github.com/mrlokans/tracker/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyAuthType = "auth_type" // "bearer" or "none"
)

// AuthType indicates how the user was authenticated
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBearer AuthType = "bearer"
)

// UserLookup resolves API tokens.
type UserLookup interface {
	GetUserByToken(ctx context.Context, token string) (*entities.User, error)
}

// Middleware handles authentication for HTTP requests.
type Middleware struct {
	users         UserLookup
	config        config.Auth
	defaultUserID uint
	publicPaths   map[string]bool
	log           *zap.Logger
}

// NewMiddleware creates a new authentication middleware. defaultUserID is
// the caller in "none" mode.
func NewMiddleware(users UserLookup, cfg config.Auth, defaultUserID uint, log *zap.Logger) *Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &Middleware{
		users:         users,
		config:        cfg,
		defaultUserID: defaultUserID,
		publicPaths: map[string]bool{
			"/health": true,
			"/ping":   true,
		},
		log: log,
	}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.config.Mode == config.AuthModeToken {
		return m.tokenHandler()
	}
	return m.noAuthHandler()
}

// noAuthHandler acts as the default user for every request.
func (m *Middleware) noAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserID, m.defaultUserID)
		c.Set(ContextKeyAuthType, AuthTypeNone)
		c.Next()
	}
}

func (m *Middleware) tokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		user, err := m.tryBearerAuth(c)
		if err != nil {
			m.log.Error("token lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Set(ContextKeyAuthType, AuthTypeBearer)
		c.Next()
	}
}

// tryBearerAuth returns nil without error when the request carries no valid
// token.
func (m *Middleware) tryBearerAuth(c *gin.Context) (*entities.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, nil
	}

	user, err := m.users.GetUserByToken(c.Request.Context(), strings.TrimSpace(parts[1]))
	if errors.Is(err, apperr.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserID retrieves the authenticated user's ID from the context, or 0 when
// the request was not authenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUsername retrieves the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}

// GetAuthType retrieves the authentication method used.
func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}
