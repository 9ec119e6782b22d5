package dto

import (
	"time"

	"github.com/fadilmartias/pathfinder/internal/model"
	"github.com/fadilmartias/pathfinder/internal/service"
	"github.com/fadilmartias/pathfinder/internal/usecase"
	"github.com/google/uuid"
)

// OptionDTO hides tags so learners cannot steer their profile.
type OptionDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type QuestionDTO struct {
	ID         uuid.UUID              `json:"id"`
	Text       string                 `json:"text"`
	Options    []OptionDTO            `json:"options"`
	Category   model.QuestionCategory `json:"category"`
	Difficulty model.Difficulty       `json:"difficulty"`
}

type QuestionListDTO struct {
	Questions      []QuestionDTO `json:"questions"`
	TotalQuestions int           `json:"total_questions"`
}

type SubmitRequest struct {
	LearnerID string           `json:"learner_id"`
	Answers   []service.Answer `json:"answers"`
}

type InstitutionSummaryDTO struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Location model.Location `json:"location"`
	Rating   float64        `json:"rating"`
	Rank     int            `json:"rank"`
	Website  string         `json:"website,omitempty"`
}

type RecommendationDTO struct {
	InstitutionID uuid.UUID              `json:"institution_id"`
	MatchScore    int                    `json:"match_score"`
	Reason        string                 `json:"reason"`
	Institution   *InstitutionSummaryDTO `json:"institution"`
}

type ResultDTO struct {
	ID             uuid.UUID `json:"id"`
	MatchedTags    []string  `json:"matched_tags"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

type OutcomeDTO struct {
	Result          ResultDTO               `json:"result"`
	Recommendations []RecommendationDTO     `json:"recommendations"`
	Colleges        []InstitutionSummaryDTO `json:"colleges"`
}

func NewQuestionList(questions []model.Question) QuestionListDTO {
	out := QuestionListDTO{Questions: make([]QuestionDTO, len(questions)), TotalQuestions: len(questions)}
	for i, q := range questions {
		opts := make([]OptionDTO, len(q.Options))
		for j, o := range q.Options {
			opts[j] = OptionDTO{Label: o.Label, Value: o.Value}
		}
		out.Questions[i] = QuestionDTO{
			ID:         q.ID,
			Text:       q.Text,
			Options:    opts,
			Category:   q.Category,
			Difficulty: q.Difficulty,
		}
	}
	return out
}

func NewInstitutionSummary(inst model.Institution) InstitutionSummaryDTO {
	return InstitutionSummaryDTO{
		ID:       inst.ID,
		Name:     inst.Name,
		Location: inst.Location,
		Rating:   inst.Rating,
		Rank:     inst.Rank,
		Website:  inst.Website,
	}
}

// NewOutcome flattens a stored result. A recommendation whose institution
// was removed keeps its score with a nil institution.
func NewOutcome(o *usecase.Outcome) OutcomeDTO {
	r := o.Result
	tags := []string(r.MatchedTags)
	if tags == nil {
		tags = []string{}
	}
	out := OutcomeDTO{
		Result: ResultDTO{
			ID:             r.ID,
			MatchedTags:    tags,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			CompletedAt:    r.CompletedAt,
		},
		Recommendations: make([]RecommendationDTO, len(r.Recommendations)),
		Colleges:        []InstitutionSummaryDTO{},
	}
	for i, rec := range r.Recommendations {
		out.Recommendations[i] = RecommendationDTO{
			InstitutionID: rec.InstitutionID,
			MatchScore:    rec.MatchScore,
			Reason:        rec.Reason,
		}
		if inst, ok := o.Institutions[rec.InstitutionID]; ok {
			summary := NewInstitutionSummary(inst)
			out.Recommendations[i].Institution = &summary
			out.Colleges = append(out.Colleges, summary)
		}
	}
	return out
}

func NewOutcomeList(outcomes []*usecase.Outcome) []OutcomeDTO {
	out := make([]OutcomeDTO, len(outcomes))
	for i, o := range outcomes {
		out[i] = NewOutcome(o)
	}
	return out
}
