package main

import (
	"fmt"
	"os"

	"github.com/iwanyu/shelf/internal/cli"
	"github.com/iwanyu/shelf/internal/config"
	"github.com/iwanyu/shelf/internal/shopify"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import products from a Shopify CSV export",
		Long: `Read a Shopify admin product export and load its products into the
local database. Variant rows fold into their product, HTML descriptions
are flattened to text, and re-importing the same file updates products
in place instead of duplicating them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			csvPath := config.ExpandPath(args[0])

			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer func() { _ = f.Close() }()

			products, err := shopify.ParseProducts(f)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", csvPath, err)
			}

			if len(products) == 0 {
				fmt.Println(cli.WarningStyle.Render("No importable products found in " + csvPath)) //nolint:forbidigo // User-facing output
				return nil
			}

			if dryRun {
				fmt.Printf("Would import %d products:\n", len(products)) //nolint:forbidigo // User-facing output
				for _, p := range products {
					fmt.Printf("  - %s (%s)\n", p.Title, p.Handle) //nolint:forbidigo // User-facing output
				}
				fmt.Println(cli.InfoStyle.Render("\nDry run complete - nothing written")) //nolint:forbidigo // User-facing output
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.InsertProducts(ctx, products); err != nil {
				return fmt.Errorf("failed to store products: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d products from %s", len(products), csvPath))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without writing to the database")

	return cmd
}
