package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fadilmartias/pathfinder/internal/config"
	"github.com/fadilmartias/pathfinder/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

type CatalogImportServiceInterface interface {
	Load(ctx context.Context, source string) (*Catalog, error)
}

// Catalog is a validated set of questions and institutions ready to upsert.
type Catalog struct {
	Questions    []model.Question
	Institutions []model.Institution
}

type CatalogImportService struct {
	client   *resty.Client
	APIToken string
}

func NewCatalogImportService(cfg *config.CatalogConfig) *CatalogImportService {
	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(3).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})
	return &CatalogImportService{client: client, APIToken: cfg.APIToken}
}

// Load reads a catalog document from an http(s) URL or a file path.
func (s *CatalogImportService) Load(ctx context.Context, source string) (*Catalog, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("catalog source cannot be empty")
	}

	var raw []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = s.fetch(ctx, source)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", source, err)
	}
	return ParseCatalog(raw)
}

func (s *CatalogImportService) fetch(ctx context.Context, url string) ([]byte, error) {
	req := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if s.APIToken != "" {
		req.SetAuthToken(s.APIToken)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	log.Printf("catalog: fetched %d bytes from %s", len(resp.Body()), url)
	return resp.Body(), nil
}

// ParseCatalog validates the shape of every record and rejects the whole
// document on the first violation.
func ParseCatalog(raw []byte) (*Catalog, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("catalog is not valid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("catalog must be a JSON object")
	}

	questions := doc.Get("questions")
	institutions := doc.Get("institutions")
	if !questions.Exists() && !institutions.Exists() {
		return nil, fmt.Errorf("catalog has neither questions nor institutions")
	}

	catalog := &Catalog{}
	if questions.Exists() {
		if !questions.IsArray() {
			return nil, fmt.Errorf("questions: must be an array")
		}
		seen := map[uuid.UUID]bool{}
		for i, item := range questions.Array() {
			if !item.IsObject() {
				return nil, fmt.Errorf("questions[%d]: must be an object", i)
			}
			q, err := parseQuestion(item)
			if err != nil {
				return nil, fmt.Errorf("questions[%d].%w", i, err)
			}
			if seen[q.ID] {
				return nil, fmt.Errorf("questions[%d].id: duplicate %s", i, q.ID)
			}
			seen[q.ID] = true
			catalog.Questions = append(catalog.Questions, q)
		}
	}

	if institutions.Exists() {
		if !institutions.IsArray() {
			return nil, fmt.Errorf("institutions: must be an array")
		}
		seen := map[uuid.UUID]bool{}
		for i, item := range institutions.Array() {
			if !item.IsObject() {
				return nil, fmt.Errorf("institutions[%d]: must be an object", i)
			}
			inst, err := parseInstitution(item)
			if err != nil {
				return nil, fmt.Errorf("institutions[%d].%w", i, err)
			}
			if seen[inst.ID] {
				return nil, fmt.Errorf("institutions[%d].id: duplicate %s", i, inst.ID)
			}
			seen[inst.ID] = true
			catalog.Institutions = append(catalog.Institutions, inst)
		}
	}

	return catalog, nil
}

func parseQuestion(item gjson.Result) (model.Question, error) {
	text, err := requiredString(item, "text")
	if err != nil {
		return model.Question{}, err
	}

	options := item.Get("options")
	if !options.IsArray() || len(options.Array()) < 2 {
		return model.Question{}, fmt.Errorf("options: at least two options are required")
	}
	var opts []model.Option
	values := map[string]bool{}
	for j, o := range options.Array() {
		if !o.IsObject() {
			return model.Question{}, fmt.Errorf("options[%d]: must be an object", j)
		}
		label, err := requiredString(o, "label")
		if err != nil {
			return model.Question{}, fmt.Errorf("options[%d].%w", j, err)
		}
		value, err := requiredString(o, "value")
		if err != nil {
			return model.Question{}, fmt.Errorf("options[%d].%w", j, err)
		}
		if values[value] {
			return model.Question{}, fmt.Errorf("options[%d].value: duplicate %q", j, value)
		}
		values[value] = true
		tags, err := stringList(o, "tags")
		if err != nil {
			return model.Question{}, fmt.Errorf("options[%d].%w", j, err)
		}
		opts = append(opts, model.Option{Label: label, Value: value, Tags: tags})
	}

	category := model.CategoryAptitude
	if c, err := optionalString(item, "category"); err != nil {
		return model.Question{}, err
	} else if c != "" {
		category = model.QuestionCategory(c)
	}
	if !category.Valid() {
		return model.Question{}, fmt.Errorf("category: unknown value %q", category)
	}

	difficulty := model.DifficultyMedium
	if d, err := optionalString(item, "difficulty"); err != nil {
		return model.Question{}, err
	} else if d != "" {
		difficulty = model.Difficulty(d)
	}
	if !difficulty.Valid() {
		return model.Question{}, fmt.Errorf("difficulty: unknown value %q", difficulty)
	}

	active, err := optionalBool(item, true, "is_active", "isActive")
	if err != nil {
		return model.Question{}, err
	}
	order, err := optionalInt(item, "order")
	if err != nil {
		return model.Question{}, err
	}
	id, err := recordID(item, "question:"+text)
	if err != nil {
		return model.Question{}, err
	}

	return model.Question{
		ID:         id,
		Text:       text,
		Options:    opts,
		Category:   category,
		Difficulty: difficulty,
		IsActive:   active,
		Order:      order,
	}, nil
}

func parseInstitution(item gjson.Result) (model.Institution, error) {
	name, err := requiredString(item, "name")
	if err != nil {
		return model.Institution{}, err
	}

	var loc model.Location
	if l := item.Get("location"); l.Exists() {
		if !l.IsObject() {
			return model.Institution{}, fmt.Errorf("location: must be an object")
		}
		for _, f := range []struct {
			key string
			dst *string
		}{{"state", &loc.State}, {"city", &loc.City}, {"address", &loc.Address}} {
			v, err := optionalString(l, f.key)
			if err != nil {
				return model.Institution{}, fmt.Errorf("location.%w", err)
			}
			*f.dst = v
		}
	}

	streams, err := stringList(item, "streams")
	if err != nil {
		return model.Institution{}, err
	}
	tags, err := stringList(item, "interest_tags", "interestTags")
	if err != nil {
		return model.Institution{}, err
	}

	rank, err := optionalInt(item, "rank")
	if err != nil {
		return model.Institution{}, err
	}
	if rank < 0 {
		return model.Institution{}, fmt.Errorf("rank: must not be negative")
	}

	rating := 0.0
	if r := item.Get("rating"); r.Exists() {
		if r.Type != gjson.Number {
			return model.Institution{}, fmt.Errorf("rating: must be a number")
		}
		rating = r.Float()
	}
	if rating < 0 || rating > 5 {
		return model.Institution{}, fmt.Errorf("rating: %v is outside [0,5]", rating)
	}

	website, err := optionalString(item, "website")
	if err != nil {
		return model.Institution{}, err
	}
	if website != "" && !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		return model.Institution{}, fmt.Errorf("website: %q is not an http(s) URL", website)
	}

	active, err := optionalBool(item, true, "is_active", "isActive")
	if err != nil {
		return model.Institution{}, err
	}
	id, err := recordID(item, "institution:"+name+"|"+loc.City)
	if err != nil {
		return model.Institution{}, err
	}

	return model.Institution{
		ID:           id,
		Name:         name,
		Location:     loc,
		Streams:      streams,
		InterestTags: tags,
		Rank:         rank,
		Rating:       rating,
		Website:      website,
		IsActive:     active,
	}, nil
}

func lookup(item gjson.Result, keys ...string) (gjson.Result, string) {
	for _, k := range keys {
		if r := item.Get(k); r.Exists() {
			return r, k
		}
	}
	return gjson.Result{}, keys[0]
}

func requiredString(item gjson.Result, key string) (string, error) {
	v, err := optionalString(item, key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s: required", key)
	}
	return v, nil
}

func optionalString(item gjson.Result, key string) (string, error) {
	r := item.Get(key)
	if !r.Exists() || r.Type == gjson.Null {
		return "", nil
	}
	if r.Type != gjson.String {
		return "", fmt.Errorf("%s: must be a string", key)
	}
	return strings.TrimSpace(r.Str), nil
}

func optionalBool(item gjson.Result, fallback bool, keys ...string) (bool, error) {
	r, key := lookup(item, keys...)
	if !r.Exists() {
		return fallback, nil
	}
	if !r.IsBool() {
		return false, fmt.Errorf("%s: must be a boolean", key)
	}
	return r.Bool(), nil
}

func optionalInt(item gjson.Result, key string) (int, error) {
	r := item.Get(key)
	if !r.Exists() {
		return 0, nil
	}
	if r.Type != gjson.Number || r.Num != float64(r.Int()) {
		return 0, fmt.Errorf("%s: must be an integer", key)
	}
	return int(r.Int()), nil
}

// stringList trims and deduplicates tags, keeping first-seen order.
func stringList(item gjson.Result, keys ...string) ([]string, error) {
	r, key := lookup(item, keys...)
	if !r.Exists() {
		return []string{}, nil
	}
	if !r.IsArray() {
		return nil, fmt.Errorf("%s: must be an array of strings", key)
	}
	out := []string{}
	seen := map[string]bool{}
	for i, t := range r.Array() {
		if t.Type != gjson.String {
			return nil, fmt.Errorf("%s[%d]: must be a string", key, i)
		}
		tag := strings.TrimSpace(t.Str)
		if tag == "" {
			return nil, fmt.Errorf("%s[%d]: must not be blank", key, i)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out, nil
}

// recordID parses an explicit id or derives a stable one, so re-importing
// the same document updates rows instead of duplicating them.
func recordID(item gjson.Result, natural string) (uuid.UUID, error) {
	raw, err := optionalString(item, "id")
	if err != nil {
		return uuid.Nil, err
	}
	if raw == "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte("pathfinder:"+natural)), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("id: %q is not a UUID", raw)
	}
	return id, nil
}
