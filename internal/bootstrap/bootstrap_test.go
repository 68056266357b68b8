package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quizbase/quizbase/internal/entity"
	questionrepo "github.com/quizbase/quizbase/internal/modules/question/repository"
	questionservice "github.com/quizbase/quizbase/internal/modules/question/service"
	"github.com/quizbase/quizbase/internal/modules/user/repository"
	"github.com/quizbase/quizbase/internal/modules/user/service"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func authService(db *gorm.DB) service.AuthService {
	return service.NewAuthService(repository.NewUserRepository(db), service.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, zap.NewNop())
}

func TestEnsureAdminIdempotent(t *testing.T) {
	db := setupDB(t)
	svc := authService(db)
	ctx := context.Background()

	first, err := EnsureAdmin(ctx, svc, zap.NewNop())
	require.NoError(t, err)
	require.True(t, first.IsAdmin())

	second, err := EnsureAdmin(ctx, svc, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSeedDemoContentOnlyOnce(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	admin, err := EnsureAdmin(ctx, authService(db), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, SeedDemoContent(ctx, db, admin, zap.NewNop()))

	var topics, questions int64
	require.NoError(t, db.Model(&entity.Topic{}).Count(&topics).Error)
	require.NoError(t, db.Model(&entity.Question{}).Count(&questions).Error)
	require.NotZero(t, topics)
	require.NotZero(t, questions)

	// second run is a no-op
	require.NoError(t, SeedDemoContent(ctx, db, admin, zap.NewNop()))

	var topicsAfter int64
	require.NoError(t, db.Model(&entity.Topic{}).Count(&topicsAfter).Error)
	require.Equal(t, topics, topicsAfter)
}

func TestSeededSearchStreamFindsOnlyStreamAPI(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	admin, err := EnsureAdmin(ctx, authService(db), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, SeedDemoContent(ctx, db, admin, zap.NewNop()))

	svc := questionservice.NewQuestionService(
		questionrepo.NewTopicRepository(db),
		questionrepo.NewSubtopicRepository(db),
		questionrepo.NewQuestionRepository(db),
		nil,
	)

	results, err := svc.SearchQuestions(ctx, "stream")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "What is the Stream API and when should you use it?", results[0].Question)
}

func TestSeededQuestionsBelongToAdmin(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	admin, err := EnsureAdmin(ctx, authService(db), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, SeedDemoContent(ctx, db, admin, zap.NewNop()))

	var stray int64
	require.NoError(t, db.Model(&entity.Question{}).
		Where("created_by_id <> ?", admin.ID).
		Count(&stray).Error)
	require.Zero(t, stray)
}
