package service

import (
	"math"
	"sort"

	"github.com/fadilmartias/pathfinder/internal/apperror"
	"github.com/fadilmartias/pathfinder/internal/model"
)

// TagSet is a case-sensitive set of interest tags.
type TagSet map[string]struct{}

func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

func (s TagSet) Len() int { return len(s) }

func (s TagSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Union returns a new set; neither operand is modified.
func (s TagSet) Union(other TagSet) TagSet {
	out := make(TagSet, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

func (s TagSet) IntersectionSize(other TagSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if large.Contains(t) {
			n++
		}
	}
	return n
}

func (s TagSet) Intersects(other TagSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if large.Contains(t) {
			return true
		}
	}
	return false
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Answer is a learner's raw selection for one question.
type Answer struct {
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// TagProfile is built once per submission and never mutated afterwards.
type TagProfile struct {
	tags     TagSet
	answers  []model.ProcessedAnswer
	answered int
	tagged   int
}

// AnsweredCount is the number of validated answers.
func (p *TagProfile) AnsweredCount() int {
	return p.answered
}

// TaggedCount is the number of answers whose option carried at least one tag.
func (p *TagProfile) TaggedCount() int {
	return p.tagged
}

// Tags returns the profile's tags in lexical order.
func (p *TagProfile) Tags() []string {
	return p.tags.Sorted()
}

func (p *TagProfile) Has(tag string) bool {
	return p.tags.Contains(tag)
}

func (p *TagProfile) Len() int {
	return p.tags.Len()
}

// Answers returns the validated answers in submission order.
func (p *TagProfile) Answers() []model.ProcessedAnswer {
	out := make([]model.ProcessedAnswer, len(p.answers))
	copy(out, p.answers)
	return out
}

// AptitudeScore is round(100 * distinct tags / answered), clamped to 100.
func (p *TagProfile) AptitudeScore() int {
	if p.answered == 0 {
		return 0
	}
	score := int(math.Round(100 * float64(p.tags.Len()) / float64(p.answered)))
	if score > 100 {
		return 100
	}
	return score
}

// BuildProfile validates answers against catalog and unions the tags of
// every selected option. Any invalid answer rejects the whole batch.
func BuildProfile(answers []Answer, catalog map[string]model.Question) (*TagProfile, error) {
	if len(answers) == 0 {
		return nil, apperror.NewValidationError(apperror.KindCount, "", "at least one answer is required")
	}

	seen := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		if _, dup := seen[a.QuestionID]; dup {
			return nil, apperror.NewValidationError(apperror.KindUnknownQuestion, a.QuestionID, "question answered more than once")
		}
		seen[a.QuestionID] = struct{}{}
	}

	questions := make([]model.Question, len(answers))
	for i, a := range answers {
		q, ok := catalog[a.QuestionID]
		if !ok {
			return nil, apperror.NewValidationError(apperror.KindUnknownQuestion, a.QuestionID, "question not found")
		}
		questions[i] = q
	}

	profile := &TagProfile{
		tags:     TagSet{},
		answers:  make([]model.ProcessedAnswer, 0, len(answers)),
		answered: len(answers),
	}
	for i, a := range answers {
		opt, ok := questions[i].FindOption(a.SelectedOption)
		if !ok {
			return nil, apperror.NewValidationError(apperror.KindInvalidOption, a.QuestionID, "invalid option selected for question")
		}
		if len(opt.Tags) > 0 {
			profile.tagged++
		}
		profile.tags = profile.tags.Union(NewTagSet(opt.Tags...))

		tags := make([]string, len(opt.Tags))
		copy(tags, opt.Tags)
		profile.answers = append(profile.answers, model.ProcessedAnswer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			Tags:           tags,
		})
	}

	return profile, nil
}
