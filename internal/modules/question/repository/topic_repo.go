package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizbase/quizbase/internal/entity"
)

type TopicRepository interface {
	Create(ctx context.Context, topic *entity.Topic) error
	FindAll(ctx context.Context) ([]entity.Topic, error)
	FindByID(ctx context.Context, id uint) (*entity.Topic, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(ctx context.Context, topic *entity.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

// FindAll returns the full tree: subtopics, their questions and the question
// authors, eagerly loaded in one pass.
func (r *topicRepository) FindAll(ctx context.Context) ([]entity.Topic, error) {
	var topics []entity.Topic
	err := r.db.WithContext(ctx).
		Preload("Subtopics.Questions.CreatedBy").
		Order("id").
		Find(&topics).Error
	return topics, err
}

func (r *topicRepository) FindByID(ctx context.Context, id uint) (*entity.Topic, error) {
	var topic entity.Topic
	if err := r.db.WithContext(ctx).
		Preload("Subtopics.Questions.CreatedBy").
		First(&topic, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Topic{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}
