package engine

import (
	"strings"

	"github.com/iwanyu/shelf/internal/catalog"
	"github.com/iwanyu/shelf/internal/model"
	"github.com/iwanyu/shelf/internal/synonym"
	"github.com/iwanyu/shelf/internal/textnorm"
)

// BuildMetas precomputes scoring inputs for every target category. The
// result is built once per run and treated as frozen shared state while
// products are classified.
func BuildMetas(targets []model.CategoryEntry) []model.CategoryMeta {
	metas := make([]model.CategoryMeta, 0, len(targets))
	for _, c := range targets {
		metas = append(metas, model.CategoryMeta{
			Key:       c.Key,
			Name:      c.Name,
			Tokens:    textnorm.Uniq(textnorm.Tokenize(c.Name)),
			SynTokens: synonym.TokensFor(c.Key, c.Name),
			Count:     c.Count,
		})
	}
	return metas
}

// countHits counts how many needle tokens are present in the haystack set.
func countHits(haystack map[string]struct{}, needles []string) int {
	hits := 0
	for _, n := range needles {
		if _, ok := haystack[n]; ok {
			hits++
		}
	}
	return hits
}

// Score computes the weighted relevance between a product's text and one
// category. Title matches dominate (weight 3) because sellers front-load
// their most descriptive words; description matches and synonym description
// matches count once, synonym title matches twice. An exact category-name
// phrase in the text adds 5, and fully covering a short category vocabulary
// adds up to 3 more.
func Score(meta model.CategoryMeta, titleTokens, descTokens []string) int {
	titleSet := textnorm.TokenSet(titleTokens)
	descSet := textnorm.TokenSet(descTokens)

	titleHits := countHits(titleSet, meta.Tokens)
	descHits := countHits(descSet, meta.Tokens)
	synTitleHits := countHits(titleSet, meta.SynTokens)
	synDescHits := countHits(descSet, meta.SynTokens)

	phraseBonus := 0
	if phrase := textnorm.NormalizeKey(meta.Name); phrase != "" {
		text := strings.Join(titleTokens, " ") + " " + strings.Join(descTokens, " ")
		if strings.Contains(text, phrase) {
			phraseBonus = 5
		}
	}

	total := len(meta.Tokens)
	if total < 1 {
		total = 1
	}
	densityBonus := (titleHits + descHits) * 3 / total
	if densityBonus > 3 {
		densityBonus = 3
	}

	return titleHits*3 + descHits + synTitleHits*2 + synDescHits + phraseBonus + densityBonus
}

// bestByScore folds the candidate metas into a running best, preferring the
// higher score and, on equal scores, the more established category.
func bestByScore(metas []model.CategoryMeta, titleTokens, descTokens []string) (model.CategoryMeta, int) {
	var best model.CategoryMeta
	bestScore := -1

	for _, m := range metas {
		s := Score(m, titleTokens, descTokens)
		switch {
		case s > bestScore:
			best = m
			bestScore = s
		case s == bestScore && m.Count > best.Count:
			best = m
		}
	}

	return best, bestScore
}

// Classifier resolves single products against a frozen catalog snapshot:
// rule matcher first, weighted scorer second, run-wide fallback last. It
// holds no mutable state, so one Classifier may serve any number of
// goroutines.
type Classifier struct {
	matcher  Matcher
	targets  []model.CategoryEntry
	metas    []model.CategoryMeta
	fallback model.CategoryEntry
	hasFall  bool
}

// Matcher is the rule-evaluation surface the classifier consumes.
type Matcher interface {
	Match(productTokens []string, candidates []model.CategoryEntry) (model.CategoryEntry, bool)
}

// NewClassifier snapshots the target categories for one run.
func NewClassifier(matcher Matcher, targets []model.CategoryEntry) *Classifier {
	fallback, hasFall := catalog.ChooseFallback(targets)
	return &Classifier{
		matcher:  matcher,
		targets:  targets,
		metas:    BuildMetas(targets),
		fallback: fallback,
		hasFall:  hasFall,
	}
}

// Classify decides a target category for one product. The boolean is false
// only when the best score is non-positive and no fallback category exists;
// that product is silently excluded from the update set.
func (c *Classifier) Classify(p model.Product) (model.Decision, bool) {
	titleTokens := textnorm.Tokenize(p.Title)
	descTokens := textnorm.Tokenize(p.Description)
	allTokens := textnorm.Uniq(append(append([]string{}, titleTokens...), descTokens...))

	if match, ok := c.matcher.Match(allTokens, c.targets); ok {
		return model.Decision{ProductID: p.ID, CategoryKey: match.Key, Method: model.MethodRule}, true
	}

	best, bestScore := bestByScore(c.metas, titleTokens, descTokens)
	if bestScore > 0 {
		return model.Decision{ProductID: p.ID, CategoryKey: best.Key, Method: model.MethodScore}, true
	}
	if c.hasFall {
		return model.Decision{ProductID: p.ID, CategoryKey: c.fallback.Key, Method: model.MethodFallback}, true
	}
	return model.Decision{}, false
}
