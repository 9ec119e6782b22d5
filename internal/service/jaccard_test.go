package service

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccardScore(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want int
	}{
		{"one of three", []string{"Tech", "Art"}, []string{"Tech", "Science"}, 33},
		{"identical", []string{"Tech", "Art"}, []string{"Art", "Tech"}, 100},
		{"disjoint", []string{"Tech"}, []string{"Law"}, 0},
		{"both empty", nil, nil, 0},
		{"institution untagged", []string{"Tech"}, nil, 0},
		{"profile empty", nil, []string{"Tech"}, 0},
		{"four of five", []string{"a", "b", "c", "d"}, []string{"a", "b", "c", "d", "e"}, 80},
		{"two of three rounds up", []string{"a", "b", "c"}, []string{"a", "b"}, 67},
		{"case sensitive", []string{"Tech"}, []string{"tech"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JaccardScore(NewTagSet(tt.a...), NewTagSet(tt.b...)))
		})
	}
}

func TestJaccardScoreProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	randomSet := func() TagSet {
		s := TagSet{}
		for i := rng.IntN(8); i > 0; i-- {
			s[fmt.Sprintf("t%d", rng.IntN(10))] = struct{}{}
		}
		return s
	}

	for i := 0; i < 500; i++ {
		a, b := randomSet(), randomSet()

		got := JaccardScore(a, b)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
		assert.Equal(t, got, JaccardScore(b, a), "symmetry")
		assert.Equal(t, got, JaccardScore(a, b), "repeatable")

		if a.Len() > 0 {
			assert.Equal(t, 100, JaccardScore(a, a))
		}
	}
}

func TestScoreUsesProfileTags(t *testing.T) {
	p := &TagProfile{tags: NewTagSet("Tech", "Art"), answered: 2}
	assert.Equal(t, 33, Score(p, []string{"Science", "Tech"}))
}
