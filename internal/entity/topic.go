package entity

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Icon      string     `gorm:"size:50;not null" json:"icon"`
	Subtopics []Subtopic `gorm:"constraint:OnDelete:CASCADE" json:"subtopics,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// Subtopic names are unique within a topic, not globally.
type Subtopic struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null;uniqueIndex:idx_subtopic_topic_name" json:"name"`
	TopicID   uint       `gorm:"not null;uniqueIndex:idx_subtopic_topic_name" json:"topic_id"`
	Topic     *Topic     `json:"topic,omitempty"`
	Questions []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

type Question struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Question       string    `gorm:"type:text;not null" json:"question"`
	QuickAnswer    string    `gorm:"type:text;not null" json:"quick_answer"`
	DetailedAnswer string    `gorm:"type:text;not null" json:"detailed_answer"`
	CodeExample    string    `gorm:"type:text;not null" json:"code_example"`
	SubtopicID     uint      `gorm:"not null" json:"subtopic_id"`
	Subtopic       *Subtopic `json:"subtopic,omitempty"`
	CreatedByID    uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy      *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
