// Package catalog derives the set of known categories from the labels
// already present in the product collection. The catalog is rebuilt from
// scratch on every run; nothing here persists between runs.
package catalog

import (
	"sort"
	"strings"

	"github.com/iwanyu/shelf/internal/model"
	"github.com/iwanyu/shelf/internal/textnorm"
)

// Build scans every product and emits one CategoryEntry per distinct
// normalized key, sorted by descending count. The canonical display name for
// a key is its most frequent original casing; the first-encountered variant
// wins ties. Products with an empty category contribute nothing.
func Build(products []model.Product) []model.CategoryEntry {
	type tally struct {
		names map[string]int
		order []string // original casings in first-seen order
		count int
	}

	byKey := make(map[string]*tally)
	var keyOrder []string

	for _, p := range products {
		raw := textnorm.NormalizeWhitespace(p.Category)
		if raw == "" {
			continue
		}
		key := textnorm.NormalizeKey(raw)
		entry := byKey[key]
		if entry == nil {
			entry = &tally{names: make(map[string]int)}
			byKey[key] = entry
			keyOrder = append(keyOrder, key)
		}
		entry.count++
		if _, seen := entry.names[raw]; !seen {
			entry.order = append(entry.order, raw)
		}
		entry.names[raw]++
	}

	entries := make([]model.CategoryEntry, 0, len(byKey))
	for _, key := range keyOrder {
		entry := byKey[key]
		bestName := ""
		bestCount := -1
		for _, name := range entry.order {
			if entry.names[name] > bestCount {
				bestName = name
				bestCount = entry.names[name]
			}
		}
		entries = append(entries, model.CategoryEntry{
			Key:   key,
			Name:  bestName,
			Count: entry.count,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries
}

// IsBadKey reports whether a category key is a generic placeholder. Bad keys
// are never valid classification targets, though products currently carrying
// one are prime classification candidates.
func IsBadKey(key string) bool {
	k := textnorm.NormalizeKey(key)
	return k == "" || k == "general" || k == "uncategorized"
}

// Targets filters entries down to valid classification targets, preserving
// the count-descending order Build produced.
func Targets(entries []model.CategoryEntry) []model.CategoryEntry {
	targets := make([]model.CategoryEntry, 0, len(entries))
	for _, e := range entries {
		if IsBadKey(e.Key) {
			continue
		}
		targets = append(targets, e)
	}
	return targets
}

// fallbackPreference is scanned in order against the already bad-filtered
// target list. Most of these fragments name keys IsBadKey has excluded, so
// in practice they can only match a category whose key contains the fragment
// without equaling it (for example "Miscellaneous Items" via "misc"). This
// mirrors the original categorization script and is deliberately left as-is.
var fallbackPreference = []string{"general", "all", "uncategorized", "misc", "others", "other"}

// ChooseFallback picks the category used when neither a rule nor a positive
// score applies: the first preference-fragment match among the targets, else
// the most frequent target. The boolean is false when no target exists.
func ChooseFallback(targets []model.CategoryEntry) (model.CategoryEntry, bool) {
	for _, frag := range fallbackPreference {
		for _, c := range targets {
			if c.Key == frag || strings.Contains(c.Key, frag) {
				return c, true
			}
		}
	}
	if len(targets) > 0 {
		return targets[0], true
	}
	return model.CategoryEntry{}, false
}
