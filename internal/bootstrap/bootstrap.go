package bootstrap

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quizbase/quizbase/internal/entity"
	"github.com/quizbase/quizbase/internal/modules/user/service"
)

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Topic{},
		&entity.Subtopic{},
		&entity.Question{},
	)
}

// EnsureAdmin guarantees a usable admin account exists so a fresh deploy
// is never locked out of the write endpoints.
func EnsureAdmin(ctx context.Context, auth service.AuthService, log *zap.Logger) (*entity.User, error) {
	admin, err := auth.CreateDefaultAdmin(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("default admin ready", zap.String("username", admin.Username))
	return admin, nil
}
