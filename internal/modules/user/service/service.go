package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quizbase/quizbase/internal/entity"
	"github.com/quizbase/quizbase/internal/modules/user/dto"
	"github.com/quizbase/quizbase/internal/modules/user/repository"
	"github.com/quizbase/quizbase/pkg/apperror"
)

const defaultAdminUsername = "admin"

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	IsFirstUser(ctx context.Context) (bool, error)
	CreateDefaultAdmin(ctx context.Context) (*entity.User, error)
}

type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

type authService struct {
	repo repository.UserRepository
	cfg  Config
	log  *zap.Logger
}

func NewAuthService(repo repository.UserRepository, cfg Config, log *zap.Logger) AuthService {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	return &authService{repo: repo, cfg: cfg, log: log}
}

func (s *authService) IsFirstUser(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Register creates a new account. The very first registrant becomes an
// admin; everyone after that is a regular user.
func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*entity.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", apperror.ErrValidation)
	}

	taken, err := s.repo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username %w", apperror.ErrDuplicate)
	}

	registered, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, fmt.Errorf("email %w", apperror.ErrDuplicate)
	}

	first, err := s.IsFirstUser(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := entity.RoleUser
	if first {
		role = entity.RoleAdmin
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Enabled:      true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Concurrent registrations with the same name race past the
		// exists checks; the unique constraint is the backstop.
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username or email %w", apperror.ErrDuplicate)
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Enabled {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:  dto.FromUser(user),
		Token: token,
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrAuthRequired
		}
		return nil, err
	}
	return user, nil
}

// CreateDefaultAdmin is idempotent: an existing "admin" account is returned
// unchanged. The fallback password exists for local development only and is
// logged loudly so operators set ADMIN_PASSWORD in anything real.
func (s *authService) CreateDefaultAdmin(ctx context.Context) (*entity.User, error) {
	existing, err := s.repo.FindByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	password := s.cfg.AdminPassword
	if password == "" {
		password = "admin123"
		s.log.Warn("ADMIN_PASSWORD not set, using the well-known default; change it before exposing this service")
	}

	email := s.cfg.AdminEmail
	if email == "" {
		email = "admin@example.com"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &entity.User{
		Username:     defaultAdminUsername,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Enabled:      true,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.log.Info("default admin account created", zap.String("username", defaultAdminUsername))
	return admin, nil
}

func (s *authService) generateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
