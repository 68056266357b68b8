package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizbase/quizbase/internal/entity"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	FindByID(ctx context.Context, id uint) (*entity.Question, error)
	FindBySubtopicID(ctx context.Context, subtopicID uint) ([]entity.Question, error)
	Search(ctx context.Context, term string) ([]entity.Question, error)
	UpdateText(ctx context.Context, question *entity.Question) error
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	if err := r.db.WithContext(ctx).
		Preload("Subtopic.Topic").
		Preload("CreatedBy").
		First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindBySubtopicID(ctx context.Context, subtopicID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Preload("Subtopic.Topic").
		Preload("CreatedBy").
		Where("subtopic_id = ?", subtopicID).
		Order("id").
		Find(&questions).Error
	return questions, err
}

// Search does a case-insensitive substring match across the question text
// and both answers. LOWER/LIKE instead of ILIKE keeps it portable between
// postgres and the sqlite used in tests.
func (r *questionRepository) Search(ctx context.Context, term string) ([]entity.Question, error) {
	like := "%" + term + "%"
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Preload("Subtopic.Topic").
		Preload("CreatedBy").
		Where(
			"LOWER(question) LIKE LOWER(?) OR LOWER(quick_answer) LIKE LOWER(?) OR LOWER(detailed_answer) LIKE LOWER(?)",
			like, like, like,
		).
		Order("id").
		Find(&questions).Error
	return questions, err
}

// UpdateText overwrites the four text fields; subtopic and creator never
// change on update.
func (r *questionRepository) UpdateText(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Where("id = ?", question.ID).
		Select("question", "quick_answer", "detailed_answer", "code_example").
		Updates(question).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Question{}, "id = ?", id).Error
}
