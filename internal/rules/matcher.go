package rules

import (
	"strings"

	"github.com/iwanyu/shelf/internal/model"
	"github.com/iwanyu/shelf/internal/textnorm"
)

// Matcher evaluates an ordered rule list against product token sets.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher over the given rules. The slice order is the
// evaluation order.
func NewMatcher(rules []Rule) *Matcher {
	return &Matcher{rules: rules}
}

// Match finds the first rule whose keywords intersect the product's tokens
// and resolves it against the candidate categories. The boolean is false
// both when no rule fires and when the firing rule maps to no candidate; a
// firing rule that resolves nothing does not hand the product to later
// rules, it hands it to the scorer.
func (m *Matcher) Match(productTokens []string, candidates []model.CategoryEntry) (model.CategoryEntry, bool) {
	tokenSet := textnorm.TokenSet(productTokens)

	for _, rule := range m.rules {
		hit := false
		for _, kw := range rule.Keywords {
			if _, ok := tokenSet[textnorm.NormalizeKey(kw)]; ok {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		return findByNameFragments(candidates, rule.CategoryFragments)
	}

	return model.CategoryEntry{}, false
}

// findByNameFragments picks, among candidates whose normalized name contains
// any fragment, the one with the highest count. Candidates arrive sorted
// count-descending, so ties keep the earliest-listed category.
func findByNameFragments(candidates []model.CategoryEntry, fragments []string) (model.CategoryEntry, bool) {
	var best model.CategoryEntry
	found := false

	for _, c := range candidates {
		name := textnorm.NormalizeKey(c.Name)
		for _, f := range fragments {
			frag := textnorm.NormalizeKey(f)
			if frag == "" || !strings.Contains(name, frag) {
				continue
			}
			if !found || c.Count > best.Count {
				best = c
				found = true
			}
			break
		}
	}

	return best, found
}
