package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/quizbase/quizbase/internal/cache"
	"github.com/quizbase/quizbase/internal/entity"
	"github.com/quizbase/quizbase/internal/modules/question/dto"
	"github.com/quizbase/quizbase/internal/modules/question/repository"
	"github.com/quizbase/quizbase/pkg/apperror"
)

const (
	topicTreeCacheKey = "questions:topic-tree"
	topicTreeCacheTTL = 5 * time.Minute
)

type QuestionService interface {
	GetAllTopics(ctx context.Context) ([]dto.TopicResponse, error)
	GetTopicByID(ctx context.Context, id uint) (*dto.TopicResponse, error)
	GetSubtopicsByTopicID(ctx context.Context, topicID uint) ([]dto.SubtopicResponse, error)
	GetQuestionsBySubtopicID(ctx context.Context, subtopicID uint) ([]dto.QuestionResponse, error)
	SearchQuestions(ctx context.Context, term string) ([]dto.QuestionResponse, error)
	CreateTopic(ctx context.Context, req dto.CreateTopicRequest) (*dto.TopicResponse, error)
	CreateSubtopic(ctx context.Context, req dto.CreateSubtopicRequest) (*dto.SubtopicResponse, error)
	CreateQuestion(ctx context.Context, req dto.QuestionRequest, creator *entity.User) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id uint) error
}

type questionService struct {
	topics    repository.TopicRepository
	subtopics repository.SubtopicRepository
	questions repository.QuestionRepository
	cache     *cache.Cache
}

func NewQuestionService(
	topics repository.TopicRepository,
	subtopics repository.SubtopicRepository,
	questions repository.QuestionRepository,
	c *cache.Cache,
) QuestionService {
	return &questionService{
		topics:    topics,
		subtopics: subtopics,
		questions: questions,
		cache:     c,
	}
}

func (s *questionService) GetAllTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, topicTreeCacheKey, topicTreeCacheTTL,
		func(ctx context.Context) ([]dto.TopicResponse, error) {
			topics, err := s.topics.FindAll(ctx)
			if err != nil {
				return nil, err
			}
			responses := make([]dto.TopicResponse, 0, len(topics))
			for i := range topics {
				responses = append(responses, dto.FromTopic(&topics[i]))
			}
			return responses, nil
		})
}

func (s *questionService) GetTopicByID(ctx context.Context, id uint) (*dto.TopicResponse, error) {
	topic, err := s.topics.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("topic: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	resp := dto.FromTopic(topic)
	return &resp, nil
}

// GetSubtopicsByTopicID returns an empty list for an unknown topic, matching
// the read semantics of the other list endpoints.
func (s *questionService) GetSubtopicsByTopicID(ctx context.Context, topicID uint) ([]dto.SubtopicResponse, error) {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.SubtopicResponse{}, nil
		}
		return nil, err
	}

	subtopics, err := s.subtopics.FindByTopicID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SubtopicResponse, 0, len(subtopics))
	for i := range subtopics {
		responses = append(responses, dto.FromSubtopic(&subtopics[i], topic.Name))
	}
	return responses, nil
}

func (s *questionService) GetQuestionsBySubtopicID(ctx context.Context, subtopicID uint) ([]dto.QuestionResponse, error) {
	questions, err := s.questions.FindBySubtopicID(ctx, subtopicID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, dto.FromQuestion(&questions[i]))
	}
	return responses, nil
}

func (s *questionService) SearchQuestions(ctx context.Context, term string) ([]dto.QuestionResponse, error) {
	questions, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, dto.FromQuestion(&questions[i]))
	}
	return responses, nil
}

func (s *questionService) CreateTopic(ctx context.Context, req dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	exists, err := s.topics.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("topic with this name %w", apperror.ErrDuplicate)
	}

	topic := &entity.Topic{Name: req.Name, Icon: req.Icon}
	if err := s.topics.Create(ctx, topic); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, topicTreeCacheKey)
	resp := dto.FromTopic(topic)
	return &resp, nil
}

func (s *questionService) CreateSubtopic(ctx context.Context, req dto.CreateSubtopicRequest) (*dto.SubtopicResponse, error) {
	topic, err := s.topics.FindByID(ctx, req.TopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("topic: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.subtopics.ExistsByNameAndTopicID(ctx, req.Name, req.TopicID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("subtopic with this name %w in this topic", apperror.ErrDuplicate)
	}

	subtopic := &entity.Subtopic{Name: req.Name, TopicID: req.TopicID}
	if err := s.subtopics.Create(ctx, subtopic); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, topicTreeCacheKey)
	resp := dto.FromSubtopic(subtopic, topic.Name)
	return &resp, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, req dto.QuestionRequest, creator *entity.User) (*dto.QuestionResponse, error) {
	subtopic, err := s.subtopics.FindByID(ctx, req.SubtopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subtopic: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	question := &entity.Question{
		Question:       req.Question,
		QuickAnswer:    req.QuickAnswer,
		DetailedAnswer: req.DetailedAnswer,
		CodeExample:    req.CodeExample,
		SubtopicID:     subtopic.ID,
		CreatedByID:    creator.ID,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	question.Subtopic = subtopic
	question.CreatedBy = creator

	s.cache.Invalidate(ctx, topicTreeCacheKey)
	resp := dto.FromQuestion(question)
	return &resp, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	question.Question = req.Question
	question.QuickAnswer = req.QuickAnswer
	question.DetailedAnswer = req.DetailedAnswer
	question.CodeExample = req.CodeExample

	if err := s.questions.UpdateText(ctx, question); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, topicTreeCacheKey)
	resp := dto.FromQuestion(question)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id uint) error {
	if _, err := s.questions.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("question: %w", apperror.ErrNotFound)
		}
		return err
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, topicTreeCacheKey)
	return nil
}
