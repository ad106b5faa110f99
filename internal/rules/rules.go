// Package rules provides the ordered keyword overrides evaluated ahead of
// the scorer. Rules give deterministic, human-predictable decisions for
// unambiguous vocabulary: a product mentioning "sneaker" should land in a
// shoes-like category no matter what the token scorer thinks.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule maps trigger keywords to fragments of an existing category name. A
// rule fires when any keyword appears in the product's token set; among
// categories whose normalized name contains any fragment, the most populous
// wins.
type Rule struct {
	Keywords          []string `yaml:"keywords"`
	CategoryFragments []string `yaml:"category_name_includes"`
}

// Defaults returns the built-in rule list. Order matters: the first rule
// with a keyword hit decides the product, and later rules are never
// consulted for it.
func Defaults() []Rule {
	return []Rule{
		{
			Keywords:          []string{"shoe", "shoes", "sneaker", "sneakers", "boot", "boots", "heel", "heels", "sandal", "sandals", "slipper", "slippers"},
			CategoryFragments: []string{"shoe", "sneaker", "boot", "heel", "sandal", "slipper"},
		},
		{
			Keywords:          []string{"tshirt", "t-shirt", "tshirts", "t-shirts", "tee", "tees"},
			CategoryFragments: []string{"t-shirt", "tshirt", "tee"},
		},
		{
			Keywords:          []string{"shirt", "shirts", "blouse", "blouses", "top", "tops", "polo"},
			CategoryFragments: []string{"top", "tops", "shirt", "blouse", "polo"},
		},
		{
			Keywords:          []string{"jacket", "jackets", "coat", "coats", "hoodie", "outerwear", "parka", "windbreaker", "blazer"},
			CategoryFragments: []string{"jacket", "coat", "outerwear", "hoodie", "blazer"},
		},
		{
			Keywords:          []string{"pant", "pants", "trouser", "trousers", "jean", "jeans", "legging", "leggings", "short", "shorts"},
			CategoryFragments: []string{"pant", "pants", "trouser", "jean", "leggings", "shorts"},
		},
		{
			Keywords:          []string{"dress", "dresses", "gown", "gowns"},
			CategoryFragments: []string{"dress", "gown"},
		},
		{
			Keywords:          []string{"bag", "bags", "handbag", "handbags", "backpack", "backpacks", "purse", "purses", "wallet", "wallets"},
			CategoryFragments: []string{"bag", "handbag", "backpack", "purse", "wallet"},
		},
		{
			Keywords:          []string{"laptop", "laptops", "notebook"},
			CategoryFragments: []string{"laptop", "computer"},
		},
		{
			Keywords:          []string{"phone", "phones", "smartphone", "iphone", "android"},
			CategoryFragments: []string{"phone", "smartphone"},
		},
		{
			Keywords:          []string{"wallpaper", "wallpapers"},
			CategoryFragments: []string{"wallpaper"},
		},
	}
}

// Load reads a rule list from a YAML file, replacing the defaults entirely.
// Merchandisers use this to tune keyword routing without a rebuild.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var loaded []Rule
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if len(loaded) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}
	for i, r := range loaded {
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d has no keywords", i)
		}
		if len(r.CategoryFragments) == 0 {
			return nil, fmt.Errorf("rule %d has no category_name_includes", i)
		}
	}

	return loaded, nil
}
