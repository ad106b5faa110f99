// Package shopify reads and writes product CSVs in the layout Shopify's
// admin export produces. Exports contain multiple rows per product (one per
// variant or image) sharing a Handle; only the first row of a product
// carries its title and metadata.
package shopify

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/iwanyu/shelf/internal/model"
	"github.com/iwanyu/shelf/internal/textnorm"
)

// Column names as they appear in a Shopify product export header.
const (
	colHandle          = "Handle"
	colTitle           = "Title"
	colBodyHTML        = "Body (HTML)"
	colVendor          = "Vendor"
	colType            = "Type"
	colProductCategory = "Product Category"
	colVariantPrice    = "Variant Price"
	colPublished       = "Published"
	colStatus          = "Status"
)

// ParseProducts reads a Shopify product export and returns one product per
// handle. Variant and image continuation rows fold into the product they
// belong to. Draft and unpublished products are skipped.
func ParseProducts(r io.Reader) ([]model.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Shopify rows vary in column count

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index[colHandle]; !ok {
		return nil, fmt.Errorf("not a Shopify product export: missing %q column", colHandle)
	}

	type pending struct {
		product   model.Product
		status    string
		published bool
	}

	byHandle := make(map[string]*pending)
	var order []string

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", readErr)
		}

		handle := textnorm.NormalizeWhitespace(field(record, colHandle))
		if handle == "" {
			continue
		}

		entry, ok := byHandle[handle]
		if !ok {
			entry = &pending{product: model.Product{Handle: handle}}
			byHandle[handle] = entry
			order = append(order, handle)
		}

		// Only the primary row carries the product's metadata.
		title := TitleCase(field(record, colTitle))
		if title == "" {
			continue
		}

		entry.product.Title = title
		entry.product.Vendor = TitleCase(field(record, colVendor))
		entry.product.Description = StripHTML(field(record, colBodyHTML))

		rawType := textnorm.NormalizeWhitespace(field(record, colType))
		rawCategory := textnorm.NormalizeWhitespace(field(record, colProductCategory))
		if rawType != "" {
			entry.product.Category = SimplifyCategoryPath(rawType)
		} else {
			entry.product.Category = SimplifyCategoryPath(rawCategory)
		}

		if price := parseNumber(field(record, colVariantPrice)); price != 0 {
			entry.product.Price = price
		}
		if status := strings.ToLower(strings.TrimSpace(field(record, colStatus))); status != "" {
			entry.status = status
		}
		if parseBool(field(record, colPublished)) {
			entry.published = true
		}
	}

	var products []model.Product
	for _, handle := range order {
		entry := byHandle[handle]
		if entry.product.Title == "" {
			continue
		}
		if !entry.published {
			continue
		}
		if entry.status != "" && entry.status != "active" {
			continue
		}
		entry.product.ID = entry.product.GenerateID()
		products = append(products, entry.product)
	}

	return products, nil
}

// exportHeader is the column order WriteProducts emits.
var exportHeader = []string{colHandle, colTitle, colBodyHTML, colVendor, colType, colVariantPrice, colPublished, colStatus}

// WriteProducts emits products in the same layout ParseProducts accepts, one
// row per product.
func WriteProducts(w io.Writer, products []model.Product) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range products {
		record := []string{
			p.Handle,
			p.Title,
			p.Description,
			p.Vendor,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			"TRUE",
			"active",
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

var (
	brTagRe    = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>`)
	closePRe   = regexp.MustCompile(`(?i)<\s*/p\s*>`)
	anyTagRe   = regexp.MustCompile(`<[^>]+>`)
	smallWords = map[string]bool{
		"and": true, "or": true, "the": true, "a": true, "an": true,
		"of": true, "to": true, "in": true, "on": true, "for": true, "with": true,
	}
)

// StripHTML converts a Body (HTML) value to plain text. Line breaks and
// paragraph ends become newlines; every other tag is dropped.
func StripHTML(html string) string {
	text := brTagRe.ReplaceAllString(html, "\n")
	text = closePRe.ReplaceAllString(text, "\n")
	text = anyTagRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// TitleCase capitalizes a value that arrived in all-lower or all-upper case,
// keeping short connective words down except at the start. Mixed-case input
// is assumed intentional and returned as is.
func TitleCase(input string) string {
	value := textnorm.NormalizeWhitespace(input)
	if value == "" {
		return value
	}

	isAllLower := value == strings.ToLower(value)
	isAllUpper := value == strings.ToUpper(value)
	if !isAllLower && !isAllUpper {
		return value
	}

	words := strings.Split(value, " ")
	for i, word := range words {
		w := strings.ToLower(word)
		if i != 0 && smallWords[w] {
			words[i] = w
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// SimplifyCategoryPath reduces a Shopify taxonomy path like
// "Apparel & Accessories > Shoes > Sneakers" to its most specific segment.
func SimplifyCategoryPath(value string) string {
	raw := textnorm.NormalizeWhitespace(value)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, ">") {
		return TitleCase(raw)
	}

	last := raw
	for _, part := range strings.Split(raw, ">") {
		if p := textnorm.NormalizeWhitespace(part); p != "" {
			last = p
		}
	}
	return TitleCase(last)
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func parseNumber(v string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return n
}
