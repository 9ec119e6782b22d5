package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/fadilmartias/pathfinder/internal/config"
	"github.com/fadilmartias/pathfinder/internal/model"
	"golang.org/x/sync/errgroup"
)

type MatchingServiceInterface interface {
	BuildProfile(answers []Answer, catalog map[string]model.Question) (*TagProfile, error)
	Rank(ctx context.Context, profile *TagProfile, candidates []model.Institution) ([]MatchScore, error)
}

// MatchScore is one ranked recommendation.
type MatchScore struct {
	Institution model.Institution
	Score       int
	Reason      string
}

type MatchingService struct {
	PoolSize   int
	OutputSize int
	Workers    int
}

func NewMatchingService(cfg *config.EngineConfig) *MatchingService {
	return &MatchingService{
		PoolSize:   cfg.CandidatePoolSize,
		OutputSize: cfg.RecommendationSize,
		Workers:    cfg.ScoringWorkers,
	}
}

func (s *MatchingService) BuildProfile(answers []Answer, catalog map[string]model.Question) (*TagProfile, error) {
	return BuildProfile(answers, catalog)
}

// Rank scores the candidate pool in parallel and returns at most OutputSize
// entries ordered by score. Equal scores keep their pool order.
func (s *MatchingService) Rank(ctx context.Context, profile *TagProfile, candidates []model.Institution) ([]MatchScore, error) {
	pool := SelectCandidatePool(profile, candidates, s.PoolSize)
	scored := make([]MatchScore, len(pool))

	g, gctx := errgroup.WithContext(ctx)
	if s.Workers > 0 {
		g.SetLimit(s.Workers)
	}
	for i := range pool {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = MatchScore{
				Institution: pool[i],
				Score:       Score(profile, pool[i].InterestTags),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if s.OutputSize >= 0 && len(scored) > s.OutputSize {
		scored = scored[:s.OutputSize]
	}
	for i := range scored {
		scored[i].Reason = MatchReason(scored[i].Score)
	}
	return scored, nil
}

// SelectCandidatePool keeps active institutions sharing at least one tag with
// the profile, orders them by rating desc then rank asc, and caps the result
// at poolSize. A non-positive poolSize means no cap.
func SelectCandidatePool(profile *TagProfile, candidates []model.Institution, poolSize int) []model.Institution {
	pool := make([]model.Institution, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, inst := range candidates {
		if !inst.IsActive {
			continue
		}
		key := inst.ID.String()
		if _, dup := seen[key]; dup {
			continue
		}
		if !profile.tags.Intersects(NewTagSet(inst.InterestTags...)) {
			continue
		}
		seen[key] = struct{}{}
		pool = append(pool, inst)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Rating != pool[j].Rating {
			return pool[i].Rating > pool[j].Rating
		}
		return pool[i].Rank < pool[j].Rank
	})

	if poolSize > 0 && len(pool) > poolSize {
		pool = pool[:poolSize]
	}
	return pool
}

func MatchReason(score int) string {
	return fmt.Sprintf("Matches %d%% of your interests", score)
}
