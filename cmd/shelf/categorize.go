package main

import (
	"fmt"
	"sort"

	"github.com/iwanyu/shelf/internal/cli"
	"github.com/iwanyu/shelf/internal/config"
	"github.com/iwanyu/shelf/internal/engine"
	"github.com/iwanyu/shelf/internal/rules"
	"github.com/spf13/cobra"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Assign categories to products that are missing one",
		Long: `Derive the category catalog from products that already have a real
category, then assign one to every product whose category is empty or a
placeholder like "General". Decisions favor, in order: normalizing the
casing of an existing category, keyword rules, and token overlap scoring
against category names.`,
		RunE: runCategorize,
	}

	cmd.Flags().Bool("dry-run", false, "Report planned changes without writing any")
	cmd.Flags().Bool("force", false, "Recategorize every product, even ones with a valid category")
	cmd.Flags().Int("page-size", engine.DefaultPageSize, "Products fetched per database read")
	cmd.Flags().Int("chunk-size", engine.DefaultChunkSize, "Products updated per database write")
	cmd.Flags().String("rules", "", "YAML file overriding the built-in keyword rules")

	return cmd
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	chunkSize, _ := cmd.Flags().GetInt("chunk-size")
	rulesPath, _ := cmd.Flags().GetString("rules")

	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ruleSet := rules.Defaults()
	if rulesPath != "" {
		ruleSet, err = rules.Load(config.ExpandPath(rulesPath))
		if err != nil {
			return fmt.Errorf("failed to load rules: %w", err)
		}
	}

	eng := engine.New(store, engine.Config{
		Rules:     ruleSet,
		PageSize:  pageSize,
		ChunkSize: chunkSize,
		DryRun:    dryRun,
		Force:     force,
	})

	summary, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(s *engine.Summary) {
	if s.TotalProducts == 0 {
		fmt.Println(cli.InfoStyle.Render("No products in the database. Run 'shelf import' first.")) //nolint:forbidigo // User-facing output
		return
	}
	if s.Categories == 0 {
		fmt.Println(cli.WarningStyle.Render("No usable categories found; nothing to categorize against.")) //nolint:forbidigo // User-facing output
		return
	}

	fmt.Println(cli.TitleStyle.Render("Categorization Summary")) //nolint:forbidigo // User-facing output
	fmt.Printf("  Total products: %d\n", s.TotalProducts)       //nolint:forbidigo // User-facing output
	fmt.Printf("  Categories: %d\n", s.Categories)              //nolint:forbidigo // User-facing output
	fmt.Printf("  Needing work: %d\n", s.NeedingWork)           //nolint:forbidigo // User-facing output
	fmt.Printf("  Normalized: %d\n", s.Normalized)              //nolint:forbidigo // User-facing output
	fmt.Printf("  Rule matched: %d\n", s.RuleMatched)           //nolint:forbidigo // User-facing output
	fmt.Printf("  Scored: %d\n", s.Scored)                      //nolint:forbidigo // User-facing output
	fmt.Printf("  Fell back: %d\n", s.FellBack)                 //nolint:forbidigo // User-facing output
	fmt.Printf("  Skipped: %d\n", s.Skipped)                    //nolint:forbidigo // User-facing output

	if s.PlannedUpdates == 0 {
		fmt.Println(cli.SuccessStyle.Render("\nEverything already categorized, nothing to do.")) //nolint:forbidigo // User-facing output
		return
	}

	if len(s.ByCategory) > 0 {
		names := make([]string, 0, len(s.ByCategory))
		for name := range s.ByCategory {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if s.ByCategory[names[i]] != s.ByCategory[names[j]] {
				return s.ByCategory[names[i]] > s.ByCategory[names[j]]
			}
			return names[i] < names[j]
		})

		fmt.Println("\n  Updates by category:") //nolint:forbidigo // User-facing output
		for _, name := range names {
			fmt.Printf("    - %s: %d\n", name, s.ByCategory[name]) //nolint:forbidigo // User-facing output
		}
	}

	if s.DryRun {
		fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("\nDry run complete - %d updates planned, none written", s.PlannedUpdates))) //nolint:forbidigo // User-facing output
		return
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("\n✓ Updated %d products in %d chunks", s.PlannedUpdates, s.ChunksWritten))) //nolint:forbidigo // User-facing output
}
