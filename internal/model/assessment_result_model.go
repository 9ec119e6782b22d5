package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ProcessedAnswer is a validated answer with the tags of the selected option.
type ProcessedAnswer struct {
	QuestionID     string   `json:"question_id"`
	SelectedOption string   `json:"selected_option"`
	Tags           []string `json:"tags"`
}

type Recommendation struct {
	InstitutionID uuid.UUID `json:"institution_id"`
	MatchScore    int       `json:"match_score"`
	Reason        string    `json:"reason"`
}

// AssessmentResult is written once per submission and never updated.
type AssessmentResult struct {
	ID              uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	LearnerID       string                               `gorm:"type:varchar(64);not null;index:idx_results_learner_created,priority:1" json:"learner_id"`
	Answers         datatypes.JSONSlice[ProcessedAnswer] `gorm:"type:jsonb;not null" json:"answers"`
	MatchedTags     pq.StringArray                       `gorm:"type:text[];not null" json:"matched_tags"`
	Score           int                                  `gorm:"not null" json:"score"`
	TotalQuestions  int                                  `gorm:"not null" json:"total_questions"`
	Recommendations datatypes.JSONSlice[Recommendation]  `gorm:"type:jsonb;not null" json:"recommendations"`
	CompletedAt     time.Time                            `gorm:"not null" json:"completed_at"`
	CreatedAt       time.Time                            `gorm:"index:idx_results_learner_created,priority:2,sort:desc" json:"created_at"`
}

func (r *AssessmentResult) TableName() string {
	return "assessment_results"
}

// InstitutionIDs lists recommended institutions in ranked order.
func (r *AssessmentResult) InstitutionIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		ids = append(ids, rec.InstitutionID)
	}
	return ids
}
