package main

import (
	"fmt"
	"io"
	"os"

	"github.com/iwanyu/shelf/internal/cli"
	"github.com/iwanyu/shelf/internal/config"
	"github.com/iwanyu/shelf/internal/engine"
	"github.com/iwanyu/shelf/internal/model"
	"github.com/iwanyu/shelf/internal/shopify"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all products as a Shopify-style CSV",
		Long:  `Write every product in the database to a CSV in the same column layout 'shelf import' accepts. Defaults to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var products []model.Product
			offset := 0
			for {
				page, pageErr := store.ListProductsPage(ctx, offset, engine.DefaultPageSize)
				if pageErr != nil {
					return fmt.Errorf("failed to list products: %w", pageErr)
				}
				products = append(products, page...)
				if len(page) < engine.DefaultPageSize {
					break
				}
				offset += len(page)
			}

			var w io.Writer = os.Stdout
			if output != "" {
				f, createErr := os.Create(config.ExpandPath(output))
				if createErr != nil {
					return fmt.Errorf("failed to create output file: %w", createErr)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := shopify.WriteProducts(w, products); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}

			if output != "" {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Exported %d products to %s", len(products), output))) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "write the CSV to a file instead of stdout")

	return cmd
}
