package rules

import (
	"testing"

	"github.com/iwanyu/shelf/internal/model"
	"github.com/iwanyu/shelf/internal/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherMatch(t *testing.T) {
	shoes := model.CategoryEntry{Key: "shoes & sneakers", Name: "Shoes & Sneakers", Count: 40}
	electronics := model.CategoryEntry{Key: "electronics", Name: "Electronics", Count: 55}
	tops := model.CategoryEntry{Key: "tops", Name: "Tops", Count: 12}

	tests := []struct {
		name       string
		title      string
		candidates []model.CategoryEntry
		wantKey    string
		wantMatch  bool
	}{
		{
			name:       "sneaker keyword routes to shoes category",
			title:      "Nike Running Sneakers",
			candidates: []model.CategoryEntry{electronics, shoes},
			wantKey:    "shoes & sneakers",
			wantMatch:  true,
		},
		{
			name:       "boot keyword matches boot fragment",
			title:      "Men's Leather Boots",
			candidates: []model.CategoryEntry{electronics, shoes},
			wantKey:    "shoes & sneakers",
			wantMatch:  true,
		},
		{
			name:       "no keyword present",
			title:      "Ceramic Flower Vase",
			candidates: []model.CategoryEntry{electronics, shoes},
			wantMatch:  false,
		},
		{
			name:       "firing rule with no category match yields no decision",
			title:      "Velvet Slippers", // shoes rule fires, but no shoe-like candidate exists
			candidates: []model.CategoryEntry{electronics, tops},
			wantMatch:  false,
		},
		{
			name:       "no candidates at all",
			title:      "Nike Running Sneakers",
			candidates: nil,
			wantMatch:  false,
		},
	}

	m := NewMatcher(Defaults())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := textnorm.Uniq(textnorm.Tokenize(tt.title))
			got, ok := m.Match(tokens, tt.candidates)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantKey, got.Key)
			}
		})
	}
}

func TestMatcherFirstRuleWins(t *testing.T) {
	// "sneaker" (rule 1) and "shirt" (rule 3) both appear; the earlier rule
	// decides even though a shirt-like category is available.
	shoes := model.CategoryEntry{Key: "shoes", Name: "Shoes", Count: 10}
	tops := model.CategoryEntry{Key: "tops", Name: "Tops", Count: 90}

	m := NewMatcher(Defaults())
	tokens := textnorm.Uniq(textnorm.Tokenize("Sneaker Print Shirt"))
	got, ok := m.Match(tokens, []model.CategoryEntry{tops, shoes})
	require.True(t, ok)
	assert.Equal(t, "shoes", got.Key)
}

func TestMatcherNoFallthroughBetweenRules(t *testing.T) {
	// The shoes rule fires on "boots" but maps to nothing; the matcher must
	// NOT go on to try the pants rule even though "shorts" would match it.
	pants := model.CategoryEntry{Key: "pants", Name: "Pants", Count: 20}

	m := NewMatcher(Defaults())
	tokens := textnorm.Uniq(textnorm.Tokenize("Boots and Shorts Bundle"))
	_, ok := m.Match(tokens, []model.CategoryEntry{pants})
	assert.False(t, ok)
}

func TestMatcherPrefersPopularFragmentMatch(t *testing.T) {
	m := NewMatcher(Defaults())
	candidates := []model.CategoryEntry{
		{Key: "kids shoes", Name: "Kids Shoes", Count: 8},
		{Key: "shoes", Name: "Shoes", Count: 30},
	}
	tokens := textnorm.Uniq(textnorm.Tokenize("Canvas Sneakers"))
	got, ok := m.Match(tokens, candidates)
	require.True(t, ok)
	assert.Equal(t, "shoes", got.Key)
}

func TestMatcherPopularityTieKeepsCatalogOrder(t *testing.T) {
	m := NewMatcher(Defaults())
	candidates := []model.CategoryEntry{
		{Key: "shoes", Name: "Shoes", Count: 10},
		{Key: "boots", Name: "Boots", Count: 10},
	}
	tokens := textnorm.Uniq(textnorm.Tokenize("Leather Sneakers"))
	got, ok := m.Match(tokens, candidates)
	require.True(t, ok)
	assert.Equal(t, "shoes", got.Key)
}
