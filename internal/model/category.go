package model

// CategoryEntry is one distinct category observed in the product collection.
// Key is the normalized (lower-cased, whitespace-collapsed) form of the
// display name and is the stable identity for the category; exactly one
// entry exists per key in a run.
type CategoryEntry struct {
	Key   string
	Name  string // most frequent original casing, first-seen wins ties
	Count int    // products currently carrying this category
}

// CategoryMeta is the precomputed scoring input for one target category.
// Built once per run and treated as frozen while products are classified.
type CategoryMeta struct {
	Key       string
	Name      string
	Tokens    []string // de-duplicated tokens of the display name
	SynTokens []string // de-duplicated synonym tokens, possibly empty
	Count     int
}

// CategoryCount is one row of the store's category distribution report.
type CategoryCount struct {
	Category string
	Count    int
}
