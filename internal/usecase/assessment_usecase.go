package usecase

import (
	"context"
	"log"
	"time"

	"github.com/fadilmartias/pathfinder/internal/apperror"
	"github.com/fadilmartias/pathfinder/internal/config"
	"github.com/fadilmartias/pathfinder/internal/model"
	"github.com/fadilmartias/pathfinder/internal/repository"
	"github.com/fadilmartias/pathfinder/internal/response"
	"github.com/fadilmartias/pathfinder/internal/service"
	"github.com/google/uuid"
)

var ErrMissingLearner = apperror.ErrUnauthenticated

// Outcome is a stored result together with the institutions it recommends.
// Institutions that no longer exist are absent from the map.
type Outcome struct {
	Result       *model.AssessmentResult
	Institutions map[uuid.UUID]model.Institution
}

// RecommendedInstitutions returns the recommended institutions in ranked order.
func (o *Outcome) RecommendedInstitutions() []model.Institution {
	out := make([]model.Institution, 0, len(o.Result.Recommendations))
	for _, rec := range o.Result.Recommendations {
		if inst, ok := o.Institutions[rec.InstitutionID]; ok {
			out = append(out, inst)
		}
	}
	return out
}

type AssessmentUsecase struct {
	questionRepo    repository.QuestionRepositoryInterface
	institutionRepo repository.InstitutionRepositoryInterface
	resultRepo      repository.AssessmentResultRepositoryInterface
	matcher         service.MatchingServiceInterface
	engine          *config.EngineConfig
	now             func() time.Time
	newID           func() uuid.UUID
}

func NewAssessmentUsecase(
	questionRepo repository.QuestionRepositoryInterface,
	institutionRepo repository.InstitutionRepositoryInterface,
	resultRepo repository.AssessmentResultRepositoryInterface,
	matcher service.MatchingServiceInterface,
	engine *config.EngineConfig,
) *AssessmentUsecase {
	return &AssessmentUsecase{
		questionRepo:    questionRepo,
		institutionRepo: institutionRepo,
		resultRepo:      resultRepo,
		matcher:         matcher,
		engine:          engine,
		now:             time.Now,
		newID:           uuid.New,
	}
}

func (uc *AssessmentUsecase) GetQuestions(ctx context.Context) ([]model.Question, error) {
	return uc.questionRepo.FindActive(ctx, uc.engine.QuestionBatchSize)
}

// Submit validates answers, ranks institutions and stores exactly one new
// result. Nothing is written unless every step succeeds. There is no
// idempotency key: repeating a request stores another result.
func (uc *AssessmentUsecase) Submit(ctx context.Context, learnerID string, answers []service.Answer) (*Outcome, error) {
	if learnerID == "" {
		return nil, ErrMissingLearner
	}
	if len(answers) == 0 {
		return nil, apperror.NewValidationError(apperror.KindCount, "", "at least one answer is required")
	}

	normalized := make([]service.Answer, len(answers))
	ids := make([]string, len(answers))
	for i, a := range answers {
		if u, err := uuid.Parse(a.QuestionID); err == nil {
			a.QuestionID = u.String()
		}
		normalized[i] = a
		ids[i] = a.QuestionID
	}

	questions, err := uc.questionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		catalog[q.ID.String()] = q
	}

	profile, err := uc.matcher.BuildProfile(normalized, catalog)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.institutionRepo.FindActiveByTags(ctx, profile.Tags(), uc.engine.CandidatePoolSize)
	if err != nil {
		return nil, err
	}
	ranked, err := uc.matcher.Rank(ctx, profile, candidates)
	if err != nil {
		return nil, err
	}

	recommendations := make([]model.Recommendation, len(ranked))
	institutions := make(map[uuid.UUID]model.Institution, len(ranked))
	for i, m := range ranked {
		recommendations[i] = model.Recommendation{
			InstitutionID: m.Institution.ID,
			MatchScore:    m.Score,
			Reason:        m.Reason,
		}
		institutions[m.Institution.ID] = m.Institution
	}

	now := uc.now()
	result := &model.AssessmentResult{
		ID:              uc.newID(),
		LearnerID:       learnerID,
		Answers:         profile.Answers(),
		MatchedTags:     profile.Tags(),
		Score:           profile.AptitudeScore(),
		TotalQuestions:  profile.AnsweredCount(),
		Recommendations: recommendations,
		CompletedAt:     now,
		CreatedAt:       now,
	}
	if err := uc.resultRepo.Save(ctx, result); err != nil {
		return nil, err
	}

	log.Printf("assessment: learner=%s answers=%d tags=%d candidates=%d recommendations=%d result=%s",
		learnerID, profile.AnsweredCount(), profile.Len(), len(candidates), len(ranked), result.ID)

	return &Outcome{Result: result, Institutions: institutions}, nil
}

// History lists a learner's results, newest first. A non-positive pageSize
// returns every result.
func (uc *AssessmentUsecase) History(ctx context.Context, learnerID string, page, pageSize int) ([]*Outcome, *response.Pagination, error) {
	if learnerID == "" {
		return nil, nil, ErrMissingLearner
	}
	if page < 1 {
		page = 1
	}
	offset := 0
	if pageSize > 0 {
		offset = (page - 1) * pageSize
	}

	results, total, err := uc.resultRepo.FindByLearner(ctx, learnerID, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}

	var ids []uuid.UUID
	for i := range results {
		ids = append(ids, results[i].InstitutionIDs()...)
	}
	institutions, err := uc.loadInstitutions(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	outcomes := make([]*Outcome, len(results))
	for i := range results {
		outcomes[i] = &Outcome{Result: &results[i], Institutions: institutions}
	}
	return outcomes, response.NewPagination(page, pageSize, len(results), total), nil
}

// GetResult returns ErrNotFound both for missing results and for results
// owned by another learner.
func (uc *AssessmentUsecase) GetResult(ctx context.Context, resultID, learnerID string) (*Outcome, error) {
	if learnerID == "" {
		return nil, ErrMissingLearner
	}
	result, err := uc.resultRepo.FindByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if result.LearnerID != learnerID {
		return nil, apperror.ErrNotFound
	}

	institutions, err := uc.loadInstitutions(ctx, result.InstitutionIDs())
	if err != nil {
		return nil, err
	}
	return &Outcome{Result: result, Institutions: institutions}, nil
}

func (uc *AssessmentUsecase) loadInstitutions(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Institution, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	out := make(map[uuid.UUID]model.Institution, len(unique))
	if len(unique) == 0 {
		return out, nil
	}
	institutions, err := uc.institutionRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, inst := range institutions {
		out[inst.ID] = inst
	}
	return out, nil
}
