package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quizbase/quizbase/internal/entity"
	"github.com/quizbase/quizbase/internal/modules/question/dto"
	"github.com/quizbase/quizbase/internal/modules/question/repository"
	"github.com/quizbase/quizbase/pkg/apperror"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Topic{},
		&entity.Subtopic{},
		&entity.Question{},
	))
	return db
}

func newService(t *testing.T, db *gorm.DB) QuestionService {
	t.Helper()
	return NewQuestionService(
		repository.NewTopicRepository(db),
		repository.NewSubtopicRepository(db),
		repository.NewQuestionRepository(db),
		nil, // no cache in tests
	)
}

func seedAdmin(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	admin := &entity.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: "x",
		Role:         entity.RoleAdmin,
		Enabled:      true,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func questionReq(subtopicID uint) dto.QuestionRequest {
	return dto.QuestionRequest{
		Question:       "What is a goroutine?",
		QuickAnswer:    "A lightweight thread managed by the Go runtime.",
		DetailedAnswer: "Goroutines multiplex onto OS threads via the scheduler.",
		CodeExample:    "go func() { fmt.Println(\"hi\") }()",
		SubtopicID:     subtopicID,
	}
}

func TestCreateTopicDuplicateName(t *testing.T) {
	svc := newService(t, setupDB(t))
	ctx := context.Background()

	_, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🐹"})
	require.NoError(t, err)

	_, err = svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🔧"})
	require.ErrorIs(t, err, apperror.ErrDuplicate)
}

func TestCreateSubtopicUnknownTopic(t *testing.T) {
	svc := newService(t, setupDB(t))

	_, err := svc.CreateSubtopic(context.Background(), dto.CreateSubtopicRequest{Name: "Basics", TopicID: 42})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSubtopicNameUniquePerTopic(t *testing.T) {
	svc := newService(t, setupDB(t))
	ctx := context.Background()

	goTopic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🐹"})
	require.NoError(t, err)
	rustTopic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Rust", Icon: "🦀"})
	require.NoError(t, err)

	_, err = svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Basics", TopicID: goTopic.ID})
	require.NoError(t, err)

	// same name in the same topic is rejected
	_, err = svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Basics", TopicID: goTopic.ID})
	require.ErrorIs(t, err, apperror.ErrDuplicate)

	// same name in a different topic is fine
	_, err = svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Basics", TopicID: rustTopic.ID})
	require.NoError(t, err)
}

func TestCreateQuestionUnknownSubtopic(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	admin := seedAdmin(t, db)

	_, err := svc.CreateQuestion(context.Background(), questionReq(42), admin)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateQuestionResponseCarriesNames(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	admin := seedAdmin(t, db)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🐹"})
	require.NoError(t, err)
	subtopic, err := svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Concurrency", TopicID: topic.ID})
	require.NoError(t, err)

	created, err := svc.CreateQuestion(ctx, questionReq(subtopic.ID), admin)
	require.NoError(t, err)
	require.Equal(t, "Go", created.TopicName)
	require.Equal(t, "Concurrency", created.SubtopicName)
	require.Equal(t, "admin", created.CreatedBy)
}

func TestQuestionRoundTripBySubtopic(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	admin := seedAdmin(t, db)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🐹"})
	require.NoError(t, err)
	subtopic, err := svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Concurrency", TopicID: topic.ID})
	require.NoError(t, err)

	created, err := svc.CreateQuestion(ctx, questionReq(subtopic.ID), admin)
	require.NoError(t, err)

	fetched, err := svc.GetQuestionsBySubtopicID(ctx, subtopic.ID)
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	require.Equal(t, *created, fetched[0])
	require.Equal(t, "Go", fetched[0].TopicName)
	require.Equal(t, "Concurrency", fetched[0].SubtopicName)
	require.Equal(t, "admin", fetched[0].CreatedBy)
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	admin := seedAdmin(t, db)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Java", Icon: "☕"})
	require.NoError(t, err)
	subtopic, err := svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Streams", TopicID: topic.ID})
	require.NoError(t, err)

	req := questionReq(subtopic.ID)
	req.Question = "What is the Stream API?"
	req.QuickAnswer = "A declarative pipeline over collections."
	_, err = svc.CreateQuestion(ctx, req, admin)
	require.NoError(t, err)

	for _, term := range []string{"stream", "STREAM", "ream ap"} {
		results, err := svc.SearchQuestions(ctx, term)
		require.NoError(t, err)
		require.Len(t, results, 1, "term %q", term)
		require.Equal(t, "What is the Stream API?", results[0].Question)
	}

	results, err := svc.SearchQuestions(ctx, "nonexistent")
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestSearchMatchesAnswersToo(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	admin := seedAdmin(t, db)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🐹"})
	require.NoError(t, err)
	subtopic, err := svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Runtime", TopicID: topic.ID})
	require.NoError(t, err)

	req := questionReq(subtopic.ID)
	req.DetailedAnswer = "The scheduler uses work stealing across processors."
	_, err = svc.CreateQuestion(ctx, req, admin)
	require.NoError(t, err)

	results, err := svc.SearchQuestions(ctx, "work stealing")
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestUpdateQuestionKeepsSubtopicAndCreator(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	admin := seedAdmin(t, db)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🐹"})
	require.NoError(t, err)
	subtopic, err := svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Basics", TopicID: topic.ID})
	require.NoError(t, err)
	created, err := svc.CreateQuestion(ctx, questionReq(subtopic.ID), admin)
	require.NoError(t, err)

	update := dto.QuestionRequest{
		Question:       "What is a channel?",
		QuickAnswer:    "A typed conduit between goroutines.",
		DetailedAnswer: "Channels synchronize and communicate.",
		CodeExample:    "ch := make(chan int)",
		SubtopicID:     9999, // ignored on update
	}
	updated, err := svc.UpdateQuestion(ctx, created.ID, update)
	require.NoError(t, err)
	require.Equal(t, "What is a channel?", updated.Question)
	require.Equal(t, "Basics", updated.SubtopicName)
	require.Equal(t, "admin", updated.CreatedBy)

	var stored entity.Question
	require.NoError(t, db.First(&stored, created.ID).Error)
	require.Equal(t, subtopic.ID, stored.SubtopicID)
	require.Equal(t, admin.ID, stored.CreatedByID)
}

func TestUpdateQuestionNotFound(t *testing.T) {
	svc := newService(t, setupDB(t))

	_, err := svc.UpdateQuestion(context.Background(), 42, questionReq(1))
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	admin := seedAdmin(t, db)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🐹"})
	require.NoError(t, err)
	subtopic, err := svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Basics", TopicID: topic.ID})
	require.NoError(t, err)
	created, err := svc.CreateQuestion(ctx, questionReq(subtopic.ID), admin)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuestion(ctx, created.ID))

	var count int64
	require.NoError(t, db.Model(&entity.Question{}).Count(&count).Error)
	require.Zero(t, count)

	require.ErrorIs(t, svc.DeleteQuestion(ctx, created.ID), apperror.ErrNotFound)
}

func TestGetAllTopicsNestsTree(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db)
	admin := seedAdmin(t, db)
	ctx := context.Background()

	topic, err := svc.CreateTopic(ctx, dto.CreateTopicRequest{Name: "Go", Icon: "🐹"})
	require.NoError(t, err)
	subtopic, err := svc.CreateSubtopic(ctx, dto.CreateSubtopicRequest{Name: "Basics", TopicID: topic.ID})
	require.NoError(t, err)
	_, err = svc.CreateQuestion(ctx, questionReq(subtopic.ID), admin)
	require.NoError(t, err)

	topics, err := svc.GetAllTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	require.Len(t, topics[0].Subtopics, 1)
	require.Len(t, topics[0].Subtopics[0].Questions, 1)
	require.Equal(t, "Go", topics[0].Subtopics[0].Questions[0].TopicName)
}

func TestGetTopicByIDNotFound(t *testing.T) {
	svc := newService(t, setupDB(t))

	_, err := svc.GetTopicByID(context.Background(), 42)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetSubtopicsUnknownTopicReturnsEmpty(t *testing.T) {
	svc := newService(t, setupDB(t))

	subtopics, err := svc.GetSubtopicsByTopicID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, subtopics)
	require.Empty(t, subtopics)
}
