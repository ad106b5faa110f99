package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses runs", input: "Shoes   &\t Sneakers", want: "Shoes & Sneakers"},
		{name: "trims ends", input: "  Electronics  ", want: "Electronics"},
		{name: "empty input", input: "", want: ""},
		{name: "only whitespace", input: " \t\n ", want: ""},
		{name: "already clean", input: "Home Decor", want: "Home Decor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeWhitespace(tt.input))
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lower-cases", input: "Shoes & Sneakers", want: "shoes & sneakers"},
		{name: "collapses and lowers", input: "  HOME   Decor ", want: "home decor"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "punctuation becomes separators",
			input: "Men's Leather-Boots (Size 42)",
			want:  []string{"men", "s", "leather", "boots", "size", "42"},
		},
		{
			name:  "lower-cases first",
			input: "Wireless MOUSE",
			want:  []string{"wireless", "mouse"},
		},
		{name: "empty", input: "", want: []string{}},
		{name: "only punctuation", input: "!!! --- ???", want: []string{}},
		{
			name:  "digits survive",
			input: "USB 3.0 cable",
			want:  []string{"usb", "3", "0", "cable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	input := "Nike Running Sneakers - Men's Edition"
	first := Tokenize(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Tokenize(input))
	}
}

func TestUniq(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "preserves first-seen order",
			input: []string{"shoe", "boot", "shoe", "heel", "boot"},
			want:  []string{"shoe", "boot", "heel"},
		},
		{name: "empty", input: nil, want: []string{}},
		{name: "no duplicates", input: []string{"a", "b"}, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Uniq(tt.input))
		})
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet([]string{"shoe", "boot", "shoe"})
	assert.Len(t, set, 2)
	_, ok := set["boot"]
	assert.True(t, ok)
	_, ok = set["heel"]
	assert.False(t, ok)
}
