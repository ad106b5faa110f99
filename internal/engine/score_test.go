package engine

import (
	"testing"

	"github.com/iwanyu/shelf/internal/model"
	"github.com/iwanyu/shelf/internal/rules"
	"github.com/iwanyu/shelf/internal/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	kitchen := model.CategoryMeta{
		Key:       "kitchen",
		Name:      "Kitchen",
		Tokens:    []string{"kitchen"},
		SynTokens: []string{"pan", "pot"},
		Count:     10,
	}

	tests := []struct {
		name  string
		meta  model.CategoryMeta
		title string
		desc  string
		want  int
	}{
		{
			name:  "all signals fire",
			meta:  kitchen,
			title: "Kitchen Pan Set",
			desc:  "pot holder included",
			// 3*1 title + 0 desc + 2*1 synTitle + 1 synDesc + 5 phrase + 3 density
			want: 14,
		},
		{
			name:  "no overlap scores zero",
			meta:  kitchen,
			title: "Wireless Mouse",
			desc:  "",
			want:  0,
		},
		{
			name:  "description hits weigh less than title hits",
			meta:  kitchen,
			title: "Storage Box",
			desc:  "fits any kitchen shelf",
			// 1 desc hit + 5 phrase (name appears in joined text) + 3 density
			want: 9,
		},
		{
			name: "density bonus caps at three",
			meta: model.CategoryMeta{
				Key:    "home decor",
				Name:   "Home Decor",
				Tokens: []string{"home", "decor"},
			},
			title: "Home Decor Home Decor",
			// 2 distinct title hits: 3*2 + 5 phrase + density floor(2/2*3)=3
			want: 14,
		},
		{
			name: "phrase bonus requires the full normalized name",
			meta: model.CategoryMeta{
				Key:    "home decor",
				Name:   "Home Decor",
				Tokens: []string{"home", "decor"},
			},
			title: "Decor for your home",
			// hits fire but "home decor" never appears contiguously
			want: 3*2 + 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.meta, textnorm.Tokenize(tt.title), textnorm.Tokenize(tt.desc))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	meta := model.CategoryMeta{Key: "shoes", Name: "Shoes", Tokens: []string{"shoes"}, SynTokens: []string{"boot", "sneaker"}}
	title := textnorm.Tokenize("Leather Boot Shoes")
	desc := textnorm.Tokenize("sneaker style boot")

	first := Score(meta, title, desc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(meta, title, desc))
	}
}

func TestBestByScoreTieBreaksByPopularity(t *testing.T) {
	a := model.CategoryMeta{Key: "mugs", Name: "Mug", Tokens: []string{"mug"}, Count: 5}
	b := model.CategoryMeta{Key: "cups", Name: "Mug", Tokens: []string{"mug"}, Count: 10}
	title := textnorm.Tokenize("mug")

	for _, metas := range [][]model.CategoryMeta{{a, b}, {b, a}} {
		best, score := bestByScore(metas, title, nil)
		assert.Positive(t, score)
		assert.Equal(t, 10, best.Count)
	}
}

func TestBuildMetas(t *testing.T) {
	targets := []model.CategoryEntry{
		{Key: "shoes & sneakers", Name: "Shoes & Sneakers", Count: 40},
		{Key: "stationery", Name: "Stationery", Count: 3},
	}

	metas := BuildMetas(targets)
	require.Len(t, metas, 2)
	assert.Equal(t, []string{"shoes", "sneakers"}, metas[0].Tokens)
	assert.Contains(t, metas[0].SynTokens, "boot")
	assert.Empty(t, metas[1].SynTokens)
	assert.Equal(t, 40, metas[0].Count)
}

func TestClassifierRulePrecedence(t *testing.T) {
	// Rule decisions must win over any scorer outcome, even when the
	// description is saturated with another category's vocabulary.
	targets := []model.CategoryEntry{
		{Key: "electronics", Name: "Electronics", Count: 55},
		{Key: "shoes & sneakers", Name: "Shoes & Sneakers", Count: 40},
	}
	c := NewClassifier(rules.NewMatcher(rules.Defaults()), targets)

	decision, ok := c.Classify(model.Product{
		ID:          "p1",
		Title:       "Nike Running Sneakers",
		Description: "electronics gadget charger cable electronics",
	})
	require.True(t, ok)
	assert.Equal(t, "shoes & sneakers", decision.CategoryKey)
	assert.Equal(t, model.MethodRule, decision.Method)
}

func TestClassifierFallsBackToMostFrequent(t *testing.T) {
	// "Wireless Mouse" overlaps nothing in a Kitchen-only catalog but still
	// lands in Kitchen: an imperfect, defined fallback.
	targets := []model.CategoryEntry{
		{Key: "kitchen", Name: "Kitchen", Count: 10},
	}
	c := NewClassifier(rules.NewMatcher(rules.Defaults()), targets)

	decision, ok := c.Classify(model.Product{ID: "p1", Title: "Wireless Mouse"})
	require.True(t, ok)
	assert.Equal(t, "kitchen", decision.CategoryKey)
	assert.Equal(t, model.MethodFallback, decision.Method)
}

func TestClassifierSkipsWithoutFallback(t *testing.T) {
	c := NewClassifier(rules.NewMatcher(rules.Defaults()), nil)
	_, ok := c.Classify(model.Product{ID: "p1", Title: "Wireless Mouse"})
	assert.False(t, ok)
}

func TestClassifierScorePath(t *testing.T) {
	targets := []model.CategoryEntry{
		{Key: "electronics", Name: "Electronics", Count: 55},
		{Key: "kitchen", Name: "Kitchen", Count: 10},
	}
	c := NewClassifier(rules.NewMatcher(rules.Defaults()), targets)

	decision, ok := c.Classify(model.Product{ID: "p1", Title: "USB Charger Cable"})
	require.True(t, ok)
	assert.Equal(t, "electronics", decision.CategoryKey)
	assert.Equal(t, model.MethodScore, decision.Method)
}
