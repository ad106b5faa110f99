package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/iwanyu/shelf/internal/catalog"
	"github.com/iwanyu/shelf/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Inspect the product category catalog",
		Long:  `The catalog is derived from the categories products already carry; these commands show what the categorizer sees.`,
	}

	cmd.AddCommand(listCategoriesCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List category usage across all products",
		Long:  `Display every distinct category value with its product count, flagging placeholder values the categorizer treats as uncategorized.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			counts, err := store.CategoryDistribution(ctx)
			if err != nil {
				return fmt.Errorf("failed to get category distribution: %w", err)
			}

			if len(counts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No products found. Use 'shelf import' to load a catalog.")) //nolint:forbidigo // User-facing output
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Products"),
				cli.TableHeaderStyle.Render(""))
			fmt.Fprintf(w, "%s\t%s\t\n",
				strings.Repeat("-", 30),
				strings.Repeat("-", 8))

			for _, c := range counts {
				name := c.Category
				note := ""
				if name == "" {
					name = cli.SubtleStyle.Render("(none)")
					note = cli.WarningStyle.Render("uncategorized")
				} else if catalog.IsBadKey(name) {
					note = cli.WarningStyle.Render("placeholder")
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, c.Count, note)
			}

			return nil
		},
	}
}
