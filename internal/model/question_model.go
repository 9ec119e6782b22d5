package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuestionCategory string

const (
	CategoryAptitude    QuestionCategory = "aptitude"
	CategoryPersonality QuestionCategory = "personality"
	CategoryInterest    QuestionCategory = "interest"
)

func (c QuestionCategory) Valid() bool {
	switch c {
	case CategoryAptitude, CategoryPersonality, CategoryInterest:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Option is a selectable answer. Value is unique within its question.
type Option struct {
	Label string   `json:"label"`
	Value string   `json:"value"`
	Tags  []string `json:"tags"`
}

type Question struct {
	ID         uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Text       string                      `gorm:"type:text;not null" json:"text"`
	Options    datatypes.JSONSlice[Option] `gorm:"type:jsonb;not null" json:"options"`
	Category   QuestionCategory            `gorm:"type:varchar(20);not null;index:idx_questions_catalog,priority:1" json:"category"`
	Difficulty Difficulty                  `gorm:"type:varchar(10);not null" json:"difficulty"`
	IsActive   bool                        `gorm:"not null;index:idx_questions_catalog,priority:2" json:"is_active"`
	Order      int                         `gorm:"column:display_order;not null;index:idx_questions_catalog,priority:3" json:"order"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (q *Question) TableName() string {
	return "questions"
}

// FindOption returns the option whose value equals value exactly.
func (q *Question) FindOption(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}
