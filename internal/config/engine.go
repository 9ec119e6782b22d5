package config

import (
	"log"
	"os"
	"runtime"
	"strconv"
	"sync"
)

const (
	DefaultQuestionBatchSize  = 20
	DefaultCandidatePoolSize  = 10
	DefaultRecommendationSize = 5
)

// EngineConfig bounds the recommendation pipeline.
type EngineConfig struct {
	QuestionBatchSize  int
	CandidatePoolSize  int
	RecommendationSize int
	ScoringWorkers     int
}

var (
	engineConfig *EngineConfig
	engineOnce   sync.Once
)

func LoadEngineConfig() *EngineConfig {
	engineOnce.Do(func() {
		engineConfig = &EngineConfig{
			QuestionBatchSize:  positiveIntEnv("QUESTION_BATCH_SIZE", DefaultQuestionBatchSize),
			CandidatePoolSize:  positiveIntEnv("CANDIDATE_POOL_SIZE", DefaultCandidatePoolSize),
			RecommendationSize: positiveIntEnv("RECOMMENDATION_SIZE", DefaultRecommendationSize),
			ScoringWorkers:     positiveIntEnv("SCORING_WORKERS", runtime.GOMAXPROCS(0)),
		}
	})
	return engineConfig
}

// DefaultEngineConfig returns the reference sizes without reading the environment.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		QuestionBatchSize:  DefaultQuestionBatchSize,
		CandidatePoolSize:  DefaultCandidatePoolSize,
		RecommendationSize: DefaultRecommendationSize,
		ScoringWorkers:     runtime.GOMAXPROCS(0),
	}
}

func positiveIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s=%q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return v
}
