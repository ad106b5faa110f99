// Package synonym expands a category's vocabulary beyond its literal name so
// the scorer can credit related product wording ("blender" for a Kitchen
// category, "iphone" for Electronics). Lookup never fails: a category with
// no marker match simply gets an empty synonym set.
package synonym

import (
	"strings"

	"github.com/iwanyu/shelf/internal/textnorm"
)

// conceptWords maps canonical concepts to hand-curated vocabulary. A concept
// only contributes when a matching category actually exists in the catalog.
var conceptWords = map[string][]string{
	"electronics": {
		"phone", "smartphone", "iphone", "android", "laptop", "computer",
		"tablet", "charger", "cable", "usb", "earbud", "headphone",
		"speaker", "camera", "tv", "router", "powerbank", "power",
	},
	"kitchen": {
		"kitchen", "cook", "cooking", "pan", "pot", "knife", "spoon",
		"fork", "plate", "bowl", "cup", "kettle", "blender", "microwave",
		"cookware",
	},
	"fashion": {
		"shirt", "tshirt", "t-shirt", "dress", "jeans", "pants", "trouser",
		"skirt", "jacket", "hoodie", "shoe", "sneaker", "bag", "handbag",
		"belt",
	},
	"beauty": {
		"beauty", "makeup", "lipstick", "perfume", "fragrance", "cream",
		"lotion", "shampoo", "conditioner", "soap", "skincare",
	},
	"health": {"health", "vitamin", "supplement", "medical", "wellness", "mask", "sanitizer"},
	"sports": {"sport", "sports", "gym", "fitness", "ball", "yoga", "bicycle", "bike"},
	"toys":   {"toy", "toys", "lego", "doll", "kids", "child"},
	"baby":   {"baby", "diaper", "nappy", "stroller", "milk", "bottle"},
	"home": {
		"home", "decor", "furniture", "chair", "table", "sofa", "curtain",
		"carpet", "bedding", "pillow", "blanket",
	},
	"groceries": {"food", "snack", "grocery", "groceries", "tea", "coffee", "rice", "oil", "sugar"},
}

// conceptFor associates a category key with at most one static concept. The
// marker checks run in a fixed order and the first hit wins, so a key like
// "sports electronics" resolves to electronics, never both.
func conceptFor(key string) string {
	switch {
	case strings.Contains(key, "electronic"):
		return "electronics"
	case strings.Contains(key, "kitchen"):
		return "kitchen"
	case strings.Contains(key, "fashion"), strings.Contains(key, "clothing"), strings.Contains(key, "apparel"):
		return "fashion"
	case strings.Contains(key, "beauty"), strings.Contains(key, "cosmetic"), strings.Contains(key, "skincare"):
		return "beauty"
	case strings.Contains(key, "health"):
		return "health"
	case strings.Contains(key, "sport"):
		return "sports"
	case strings.Contains(key, "toy"):
		return "toys"
	case strings.Contains(key, "baby"):
		return "baby"
	case strings.Contains(key, "home"), strings.Contains(key, "furniture"), strings.Contains(key, "decor"):
		return "home"
	case strings.Contains(key, "grocery"), strings.Contains(key, "food"):
		return "groceries"
	}
	return ""
}

// inferFromName appends synonym phrases for every marker that fires against
// the category key or its display name. Unlike the static concept table,
// several checks may contribute to the same category.
func inferFromName(key, name string) []string {
	n := textnorm.NormalizeKey(name)
	var syn []string

	has := func(haystack, frag string) bool { return strings.Contains(haystack, frag) }

	if has(key, "shoe") || has(n, "shoe") || has(n, "sneaker") || has(n, "boot") {
		syn = append(syn, "shoe", "shoes", "sneaker", "sneakers", "boot", "boots",
			"heel", "heels", "loafer", "sandals", "slipper")
	}
	if has(key, "jacket") || has(n, "jacket") || has(n, "coat") {
		syn = append(syn, "jacket", "jackets", "coat", "coats", "outerwear",
			"hoodie", "parka", "windbreaker", "blazer")
	}
	if has(key, "pant") || has(n, "pant") || has(n, "trouser") || has(n, "jean") {
		syn = append(syn, "pants", "pant", "trouser", "trousers", "jeans", "jean",
			"leggings", "shorts")
	}
	if has(key, "top") || has(n, "top") || has(n, "shirt") || has(n, "tee") {
		syn = append(syn, "top", "tops", "shirt", "shirts", "tshirt", "t-shirts",
			"t-shirt", "tee", "tees", "blouse", "blouses", "polo")
	}
	if has(key, "dress") || has(n, "dress") {
		syn = append(syn, "dress", "dresses", "gown", "gowns")
	}
	if has(key, "bag") || has(n, "bag") || has(n, "handbag") {
		syn = append(syn, "bag", "bags", "handbag", "handbags", "backpack",
			"backpacks", "purse", "purses", "wallet", "wallets")
	}
	if has(key, "watch") || has(n, "watch") {
		syn = append(syn, "watch", "watches", "smartwatch")
	}
	if has(key, "kid") || has(n, "kid") || has(n, "kids") || has(n, "baby") {
		syn = append(syn, "kid", "kids", "baby", "infant", "toddler", "children", "child")
	}
	if has(key, "kitchen") || has(n, "kitchen") {
		syn = append(syn, "kitchen", "cook", "cooking", "cookware", "utensil",
			"utensils", "pan", "pot", "knife", "spoon", "fork")
	}
	if has(key, "electronic") || has(n, "electronic") || has(n, "phone") || has(n, "laptop") {
		syn = append(syn, "electronics", "electronic", "phone", "smartphone",
			"iphone", "android", "laptop", "tablet", "charger", "cable", "usb")
	}

	return textnorm.Uniq(textnorm.Tokenize(strings.Join(syn, " ")))
}

// TokensFor returns the combined, de-duplicated synonym token set for a
// category: the static concept vocabulary (at most one concept) unioned with
// the name-inferred phrases (any number of markers). An empty result is a
// valid, if unhelpful, state.
func TokensFor(key, name string) []string {
	var mapped []string
	if concept := conceptFor(key); concept != "" {
		for _, w := range conceptWords[concept] {
			mapped = append(mapped, textnorm.Tokenize(w)...)
		}
	}
	return textnorm.Uniq(append(mapped, inferFromName(key, name)...))
}
