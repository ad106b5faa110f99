// Package engine orchestrates a full categorization run: load every product,
// derive the catalog, decide a category per product needing one, group the
// decisions, and apply them back to the store in verified chunks.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iwanyu/shelf/internal/catalog"
	"github.com/iwanyu/shelf/internal/common"
	"github.com/iwanyu/shelf/internal/model"
	"github.com/iwanyu/shelf/internal/rules"
	"github.com/iwanyu/shelf/internal/textnorm"
	"github.com/schollz/progressbar/v3"
)

// Reference defaults for store I/O sizing.
const (
	// DefaultPageSize is how many products are fetched per read.
	DefaultPageSize = 1000
	// DefaultChunkSize bounds the ids in a single update statement.
	DefaultChunkSize = 100
)

// Config controls a categorization run. Zero values take the defaults; an
// empty Rules slice means the built-in rule list.
type Config struct {
	ProgressWriter io.Writer
	Rules          []rules.Rule
	PageSize       int
	ChunkSize      int
	DryRun         bool
	Force          bool
}

// Engine ties the catalog builder, rule matcher, and scorer to a product
// store. Construct one per run with New.
type Engine struct {
	store   ProductStore
	matcher *rules.Matcher
	cfg     Config
}

// New creates an engine over the given store, filling config defaults.
func New(store ProductStore, cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if len(cfg.Rules) == 0 {
		cfg.Rules = rules.Defaults()
	}
	if cfg.ProgressWriter == nil {
		cfg.ProgressWriter = os.Stderr
	}
	return &Engine{
		store:   store,
		matcher: rules.NewMatcher(cfg.Rules),
		cfg:     cfg,
	}
}

// Summary aggregates what a run did, or in dry-run mode would have done.
type Summary struct {
	ByCategory     map[string]int // canonical name -> planned updates
	TotalProducts  int
	Categories     int
	NeedingWork    int
	PlannedUpdates int
	Normalized     int
	RuleMatched    int
	Scored         int
	FellBack       int
	Skipped        int
	ChunksWritten  int
	DryRun         bool
}

// plan is the computed outcome of classification before any write happens.
// Keys retain first-decision order so applying is deterministic.
type plan struct {
	updatesByKey map[string][]string
	names        map[string]string
	keyOrder     []string
	summary      Summary
}

func (p *plan) add(key, name, productID string) {
	if _, ok := p.updatesByKey[key]; !ok {
		p.keyOrder = append(p.keyOrder, key)
		p.names[key] = name
	}
	p.updatesByKey[key] = append(p.updatesByKey[key], productID)
	p.summary.PlannedUpdates++
}

// Run executes the full batch. An empty catalog is a clean terminal
// condition: the summary reports zero categories and nothing is written.
// A failed or short chunk write aborts the run immediately; chunks already
// applied stay applied.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	products, err := e.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	p := e.plan(products)

	slog.Info("categorization planned",
		"total_products", p.summary.TotalProducts,
		"categories", p.summary.Categories,
		"needing_work", p.summary.NeedingWork,
		"planned_updates", p.summary.PlannedUpdates,
		"dry_run", e.cfg.DryRun)

	if p.summary.Categories == 0 || p.summary.PlannedUpdates == 0 {
		return &p.summary, nil
	}

	if e.cfg.DryRun {
		for _, key := range p.keyOrder {
			slog.Info("would update products",
				"category", p.names[key],
				"count", len(p.updatesByKey[key]))
		}
		return &p.summary, nil
	}

	if err := e.apply(ctx, p); err != nil {
		return nil, err
	}
	return &p.summary, nil
}

// loadAll fetches every product, page by page, until a short page arrives.
func (e *Engine) loadAll(ctx context.Context) ([]model.Product, error) {
	var all []model.Product
	for offset := 0; ; offset += e.cfg.PageSize {
		page, err := e.store.ListProductsPage(ctx, offset, e.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		all = append(all, page...)
		if len(page) < e.cfg.PageSize {
			break
		}
	}
	return all, nil
}

// plan classifies every product needing work and groups the decisions by
// target category. Pure computation: no I/O, no shared mutable state beyond
// the plan being built.
func (e *Engine) plan(products []model.Product) *plan {
	entries := catalog.Build(products)
	targets := catalog.Targets(entries)
	classifier := NewClassifier(e.matcher, targets)

	byKey := make(map[string]model.CategoryEntry, len(entries))
	for _, c := range entries {
		byKey[c.Key] = c
	}
	nameByKey := make(map[string]string, len(targets))
	for _, c := range targets {
		nameByKey[c.Key] = c.Name
	}

	p := &plan{
		updatesByKey: make(map[string][]string),
		names:        make(map[string]string),
		summary: Summary{
			ByCategory:    make(map[string]int),
			TotalProducts: len(products),
			Categories:    len(entries),
			DryRun:        e.cfg.DryRun,
		},
	}
	if len(entries) == 0 {
		return p
	}

	for _, prod := range products {
		raw := textnorm.NormalizeWhitespace(prod.Category)
		key := textnorm.NormalizeKey(raw)

		if !e.cfg.Force && !catalog.IsBadKey(key) {
			continue
		}
		p.summary.NeedingWork++

		// Re-casing fix: the catalog already knows this category, the row
		// just doesn't carry its canonical spelling. Tracked separately from
		// true reassignment.
		if raw != "" {
			if canonical, ok := byKey[key]; ok && raw != canonical.Name {
				p.add(canonical.Key, canonical.Name, prod.ID)
				p.summary.Normalized++
				continue
			}
		}

		decision, ok := classifier.Classify(prod)
		if !ok {
			// Ambiguous and no fallback: absorbed here, surfaced only as a count.
			p.summary.Skipped++
			continue
		}

		switch decision.Method {
		case model.MethodRule:
			p.summary.RuleMatched++
		case model.MethodScore:
			p.summary.Scored++
		case model.MethodFallback:
			p.summary.FellBack++
		}
		p.add(decision.CategoryKey, nameByKey[decision.CategoryKey], prod.ID)
	}

	for _, key := range p.keyOrder {
		p.summary.ByCategory[p.names[key]] = len(p.updatesByKey[key])
	}
	return p
}

// apply writes the grouped updates in chunks, verifying each chunk changed
// exactly as many rows as it named.
func (e *Engine) apply(ctx context.Context, p *plan) error {
	bar := progressbar.NewOptions(p.summary.PlannedUpdates,
		progressbar.OptionSetWriter(e.cfg.ProgressWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Applying category updates..."),
	)

	for _, key := range p.keyOrder {
		name := p.names[key]
		ids := p.updatesByKey[key]

		for start := 0; start < len(ids); start += e.cfg.ChunkSize {
			end := min(start+e.cfg.ChunkSize, len(ids))
			chunk := ids[start:end]

			affected, err := e.store.UpdateCategoryByIDs(ctx, name, chunk)
			if err != nil {
				return fmt.Errorf("failed to update category %q: %w", name, err)
			}
			if affected != int64(len(chunk)) {
				return fmt.Errorf("%w: category %q expected %d rows, updated %d",
					common.ErrWriteVerification, name, len(chunk), affected)
			}

			p.summary.ChunksWritten++
			_ = bar.Add(len(chunk))
			slog.Debug("applied category chunk", "category", name, "rows", len(chunk))
		}
	}

	if err := bar.Finish(); err != nil {
		slog.Warn("failed to finish progress bar", "error", err)
	}
	return nil
}
