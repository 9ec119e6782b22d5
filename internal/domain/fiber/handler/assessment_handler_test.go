package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/pathfinder/internal/apperror"
	"github.com/fadilmartias/pathfinder/internal/config"
	"github.com/fadilmartias/pathfinder/internal/middleware"
	"github.com/fadilmartias/pathfinder/internal/model"
	"github.com/fadilmartias/pathfinder/internal/service"
	"github.com/fadilmartias/pathfinder/internal/usecase"
	"github.com/fadilmartias/pathfinder/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "handler-test-secret"

var (
	questionID = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	techID     = uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000001")
)

type questionStore struct{ questions []model.Question }

func (s *questionStore) FindActive(context.Context, int) ([]model.Question, error) {
	return s.questions, nil
}

func (s *questionStore) FindByIDs(_ context.Context, ids []string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.questions {
		for _, id := range ids {
			if q.ID.String() == id {
				out = append(out, q)
				break
			}
		}
	}
	return out, nil
}

func (s *questionStore) Upsert(context.Context, []model.Question) error { return nil }

type institutionStore struct{ institutions []model.Institution }

func (s *institutionStore) FindActiveByTags(_ context.Context, tags []string, _ int) ([]model.Institution, error) {
	var out []model.Institution
	for _, inst := range s.institutions {
		if service.NewTagSet(inst.InterestTags...).Intersects(service.NewTagSet(tags...)) {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (s *institutionStore) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Institution, error) {
	var out []model.Institution
	for _, inst := range s.institutions {
		for _, id := range ids {
			if inst.ID == id {
				out = append(out, inst)
				break
			}
		}
	}
	return out, nil
}

func (s *institutionStore) Upsert(context.Context, []model.Institution) error { return nil }

type resultStore struct {
	results []model.AssessmentResult
	err     error
}

func (s *resultStore) Save(_ context.Context, r *model.AssessmentResult) error {
	if s.err != nil {
		return s.err
	}
	s.results = append(s.results, *r)
	return nil
}

func (s *resultStore) FindByLearner(_ context.Context, learnerID string, _, _ int) ([]model.AssessmentResult, int64, error) {
	var out []model.AssessmentResult
	for i := len(s.results) - 1; i >= 0; i-- {
		if s.results[i].LearnerID == learnerID {
			out = append(out, s.results[i])
		}
	}
	return out, int64(len(out)), nil
}

func (s *resultStore) FindByID(_ context.Context, id string) (*model.AssessmentResult, error) {
	for i := range s.results {
		if s.results[i].ID.String() == id {
			r := s.results[i]
			return &r, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func newTestApp(results *resultStore) *fiber.App {
	questions := &questionStore{questions: []model.Question{{
		ID:       questionID,
		Text:     "Favourite subject?",
		IsActive: true,
		Category: model.CategoryInterest,
		Options: []model.Option{
			{Label: "Computers", Value: "a", Tags: []string{"Tech"}},
			{Label: "Painting", Value: "b", Tags: []string{"Art"}},
		},
	}}}
	institutions := &institutionStore{institutions: []model.Institution{
		{ID: techID, Name: "Tech University", Rating: 4.8, InterestTags: []string{"Tech"}, IsActive: true},
	}}

	engine := config.DefaultEngineConfig()
	uc := usecase.NewAssessmentUsecase(questions, institutions, results, service.NewMatchingService(engine), engine)

	app := fiber.New(fiber.Config{ErrorHandler: util.FiberErrorHandler})
	NewAssessmentHandler(uc, secret).RegisterRoutes(app)
	return app
}

func token(t *testing.T, learner string) string {
	t.Helper()
	tok, err := middleware.SignToken(secret, learner, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(t *testing.T, app *fiber.App, method, path, auth string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func submitBody(option string) map[string]any {
	return map[string]any{
		"answers": []map[string]string{{"question_id": questionID.String(), "selected_option": option}},
	}
}

func TestGetQuestionsIsPublicAndHidesTags(t *testing.T) {
	app := newTestApp(&resultStore{})

	code, body := do(t, app, http.MethodGet, "/api/aptitude/questions", "", nil)
	require.Equal(t, fiber.StatusOK, code)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total_questions"])
	q := data["questions"].([]any)[0].(map[string]any)
	opt := q["options"].([]any)[0].(map[string]any)
	assert.Equal(t, "a", opt["value"])
	assert.NotContains(t, opt, "tags")
}

func TestSubmitReturnsRankedOutcome(t *testing.T) {
	results := &resultStore{}
	app := newTestApp(results)

	code, body := do(t, app, http.MethodPost, "/api/aptitude/submit", token(t, "learner-1"), submitBody("a"))
	require.Equal(t, fiber.StatusCreated, code)
	require.Len(t, results.results, 1)
	assert.Equal(t, "learner-1", results.results[0].LearnerID)

	data := body["data"].(map[string]any)
	result := data["result"].(map[string]any)
	assert.Equal(t, []any{"Tech"}, result["matched_tags"])
	assert.Equal(t, float64(100), result["score"])
	assert.Equal(t, float64(1), result["total_questions"])

	recs := data["recommendations"].([]any)
	require.Len(t, recs, 1)
	rec := recs[0].(map[string]any)
	assert.Equal(t, techID.String(), rec["institution_id"])
	assert.Equal(t, float64(100), rec["match_score"])
	assert.Equal(t, "Matches 100% of your interests", rec["reason"])
	assert.Equal(t, "Tech University", rec["institution"].(map[string]any)["name"])
	assert.Len(t, data["colleges"], 1)
}

func TestSubmitErrors(t *testing.T) {
	cases := []struct {
		name     string
		auth     string
		body     any
		store    *resultStore
		wantCode int
		wantKind string
	}{
		{name: "no token", body: submitBody("a"), wantCode: fiber.StatusUnauthorized},
		{name: "invalid option", auth: "learner-1", body: submitBody("z"), wantCode: fiber.StatusBadRequest, wantKind: "invalid_option"},
		{name: "empty answers", auth: "learner-1", body: map[string]any{"answers": []any{}}, wantCode: fiber.StatusBadRequest, wantKind: "count"},
		{
			name:     "learner mismatch",
			auth:     "learner-1",
			body:     map[string]any{"learner_id": "learner-2", "answers": submitBody("a")["answers"]},
			wantCode: fiber.StatusForbidden,
		},
		{
			name:     "storage down",
			auth:     "learner-1",
			body:     submitBody("a"),
			store:    &resultStore{err: apperror.NewStorageError("save result", errors.New("connection refused"))},
			wantCode: fiber.StatusServiceUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.store
			if store == nil {
				store = &resultStore{}
			}
			auth := ""
			if tc.auth != "" {
				auth = token(t, tc.auth)
			}
			code, body := do(t, newTestApp(store), http.MethodPost, "/api/aptitude/submit", auth, tc.body)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, false, body["success"])
			if tc.wantKind != "" {
				assert.Equal(t, tc.wantKind, body["details"].(map[string]any)["kind"])
			}
			if tc.wantCode == fiber.StatusServiceUnavailable {
				assert.Equal(t, true, body["details"].(map[string]any)["may_duplicate"])
			}
		})
	}
}

func TestResultIsScopedToLearner(t *testing.T) {
	results := &resultStore{}
	app := newTestApp(results)
	_, _ = do(t, app, http.MethodPost, "/api/aptitude/submit", token(t, "learner-1"), submitBody("a"))
	require.Len(t, results.results, 1)
	path := "/api/aptitude/result/" + results.results[0].ID.String()

	code, body := do(t, app, http.MethodGet, path, token(t, "learner-1"), nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, results.results[0].ID.String(), body["data"].(map[string]any)["result"].(map[string]any)["id"])

	code, _ = do(t, app, http.MethodGet, path, token(t, "learner-2"), nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = do(t, app, http.MethodGet, "/api/aptitude/result/not-a-uuid", token(t, "learner-1"), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestHistoryListsNewestFirst(t *testing.T) {
	results := &resultStore{}
	app := newTestApp(results)
	_, _ = do(t, app, http.MethodPost, "/api/aptitude/submit", token(t, "learner-1"), submitBody("a"))
	_, _ = do(t, app, http.MethodPost, "/api/aptitude/submit", token(t, "learner-1"), submitBody("b"))
	_, _ = do(t, app, http.MethodPost, "/api/aptitude/submit", token(t, "learner-2"), submitBody("a"))

	code, body := do(t, app, http.MethodGet, "/api/aptitude/history", token(t, "learner-1"), nil)
	require.Equal(t, fiber.StatusOK, code)

	items := body["data"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, []any{"Art"}, first["matched_tags"])
	assert.Equal(t, float64(2), body["pagination"].(map[string]any)["total_items"])

	code, _ = do(t, app, http.MethodGet, "/api/aptitude/history?page=0", token(t, "learner-1"), nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
