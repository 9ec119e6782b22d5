package service

import "math"

// JaccardScore returns round(100 * |a ∩ b| / |a ∪ b|). Two empty sets score 0.
func JaccardScore(a, b TagSet) int {
	inter := a.IntersectionSize(b)
	union := a.Len() + b.Len() - inter
	if union == 0 {
		return 0
	}
	return int(math.Round(100 * float64(inter) / float64(union)))
}

// Score compares a profile against an institution's interest tags.
func Score(profile *TagProfile, institutionTags []string) int {
	return JaccardScore(profile.tags, NewTagSet(institutionTags...))
}
