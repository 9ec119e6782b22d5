package usecase

import (
	"context"
	"sort"

	"github.com/fadilmartias/pathfinder/internal/apperror"
	"github.com/fadilmartias/pathfinder/internal/model"
	"github.com/google/uuid"
)

type fakeQuestionRepo struct {
	questions []model.Question
	err       error
	upserted  []model.Question
}

func (f *fakeQuestionRepo) FindActive(_ context.Context, limit int) ([]model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Question
	for _, q := range f.questions {
		if q.IsActive {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeQuestionRepo) FindByIDs(_ context.Context, ids []string) ([]model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Question
	for _, q := range f.questions {
		if want[q.ID.String()] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Upsert(_ context.Context, questions []model.Question) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, questions...)
	return nil
}

type fakeInstitutionRepo struct {
	institutions []model.Institution
	err          error
	lookupErr    error
	upserted     []model.Institution
	lastTags     []string
}

func (f *fakeInstitutionRepo) FindActiveByTags(_ context.Context, tags []string, limit int) ([]model.Institution, error) {
	f.lastTags = tags
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []model.Institution
	for _, inst := range f.institutions {
		if !inst.IsActive {
			continue
		}
		for _, t := range inst.InterestTags {
			if want[t] {
				out = append(out, inst)
				break
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeInstitutionRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Institution, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Institution
	for _, inst := range f.institutions {
		if want[inst.ID] {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (f *fakeInstitutionRepo) Upsert(_ context.Context, institutions []model.Institution) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, institutions...)
	return nil
}

type fakeResultRepo struct {
	results []model.AssessmentResult
	saveErr error
}

func (f *fakeResultRepo) Save(_ context.Context, result *model.AssessmentResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeResultRepo) FindByLearner(_ context.Context, learnerID string, offset, limit int) ([]model.AssessmentResult, int64, error) {
	var mine []model.AssessmentResult
	for _, r := range f.results {
		if r.LearnerID == learnerID {
			mine = append(mine, r)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	total := int64(len(mine))
	if limit > 0 {
		if offset >= len(mine) {
			return []model.AssessmentResult{}, total, nil
		}
		end := offset + limit
		if end > len(mine) {
			end = len(mine)
		}
		mine = mine[offset:end]
	}
	return mine, total, nil
}

func (f *fakeResultRepo) FindByID(_ context.Context, id string) (*model.AssessmentResult, error) {
	for i := range f.results {
		if f.results[i].ID.String() == id {
			r := f.results[i]
			return &r, nil
		}
	}
	return nil, apperror.ErrNotFound
}
