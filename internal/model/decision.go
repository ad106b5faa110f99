package model

// DecisionMethod indicates how a product's target category was chosen.
type DecisionMethod string

// Decision method constants.
const (
	// MethodNormalize means the raw category only needed re-casing to the
	// catalog's canonical spelling.
	MethodNormalize DecisionMethod = "NORMALIZE"
	// MethodRule means an ordered keyword rule decided the category.
	MethodRule DecisionMethod = "RULE"
	// MethodScore means the weighted token scorer decided the category.
	MethodScore DecisionMethod = "SCORE"
	// MethodFallback means no rule fired and no positive score was found,
	// so the run-wide fallback category was used.
	MethodFallback DecisionMethod = "FALLBACK"
)

// Decision is the outcome of classifying one product. Decisions are folded
// into per-category id lists immediately; they are never persisted.
type Decision struct {
	ProductID   string
	CategoryKey string
	Method      DecisionMethod
}
