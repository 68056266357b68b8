package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizbase/quizbase/internal/entity"
)

type SubtopicRepository interface {
	Create(ctx context.Context, subtopic *entity.Subtopic) error
	FindByID(ctx context.Context, id uint) (*entity.Subtopic, error)
	FindByTopicID(ctx context.Context, topicID uint) ([]entity.Subtopic, error)
	ExistsByNameAndTopicID(ctx context.Context, name string, topicID uint) (bool, error)
}

type subtopicRepository struct {
	db *gorm.DB
}

func NewSubtopicRepository(db *gorm.DB) SubtopicRepository {
	return &subtopicRepository{db: db}
}

func (r *subtopicRepository) Create(ctx context.Context, subtopic *entity.Subtopic) error {
	return r.db.WithContext(ctx).Create(subtopic).Error
}

func (r *subtopicRepository) FindByID(ctx context.Context, id uint) (*entity.Subtopic, error) {
	var subtopic entity.Subtopic
	if err := r.db.WithContext(ctx).
		Preload("Topic").
		First(&subtopic, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subtopic, nil
}

func (r *subtopicRepository) FindByTopicID(ctx context.Context, topicID uint) ([]entity.Subtopic, error) {
	var subtopics []entity.Subtopic
	err := r.db.WithContext(ctx).
		Preload("Questions.CreatedBy").
		Where("topic_id = ?", topicID).
		Order("id").
		Find(&subtopics).Error
	return subtopics, err
}

func (r *subtopicRepository) ExistsByNameAndTopicID(ctx context.Context, name string, topicID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Subtopic{}).
		Where("name = ? AND topic_id = ?", name, topicID).
		Count(&count).Error
	return count > 0, err
}
