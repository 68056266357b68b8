package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quizbase/quizbase/internal/entity"
	userRepo "github.com/quizbase/quizbase/internal/modules/user/repository"
	"github.com/quizbase/quizbase/pkg/apperror"
	"github.com/quizbase/quizbase/pkg/response"
)

const (
	ContextUserID = "user_id"
	ContextUser   = "user"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

func NewAuthMiddleware(repo userRepo.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{userRepo: repo, secret: secret}
}

// RequireAuth aborts anonymous requests. On success the token subject is
// stored in the context as user_id.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := m.resolve(c)
		if !ok {
			response.Error(c, apperror.ErrAuthRequired)
			c.Abort()
			return
		}
		c.Set(ContextUserID, id)
		c.Next()
	}
}

// RequireAdmin loads the live user behind the token and checks the role.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, exists := c.Get(ContextUserID)
		if !exists {
			response.Error(c, apperror.ErrAuthRequired)
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), id.(uuid.UUID))
		if err != nil {
			response.Error(c, apperror.ErrAuthRequired)
			c.Abort()
			return
		}

		if !user.Enabled || !user.IsAdmin() {
			response.Error(c, apperror.ErrForbidden)
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// OptionalAuth resolves the token when one is present but never aborts, so
// endpoints like /me and /check-auth can answer for anonymous callers too.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := m.resolve(c); ok {
			c.Set(ContextUserID, id)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (uuid.UUID, bool) {
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return uuid.Nil, false
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// UserID returns the authenticated caller's id from the gin context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// AdminUser returns the user loaded by RequireAdmin.
func AdminUser(c *gin.Context) (*entity.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}
