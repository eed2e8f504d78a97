package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/session"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/spf13/cobra"
)

func newTreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print categories, subcategories and products in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session.Session) error {
				printTree(cmd.OutOrStdout(), s.Snapshot(), opts)
				return nil
			})
		},
	}
}

func newProductsCmd(opts *options) *cobra.Command {
	var scope, search string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, optionally within a category or matching a name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session.Session) error {
				for _, p := range s.Products(scope, search, opts.lang) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
						p.ID, p.Name.Resolve(opts.lang, opts.primaryLang), p.CategoryName, priceLabel(p.Product))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&scope, "category", "", "category id to list")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	return cmd
}

func newGateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gate",
		Short: "Show whether the catalog is still locked for onboarding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(_ context.Context, s *session.Session) error {
				g := s.Gate()
				fmt.Fprintf(cmd.OutOrStdout(), "locked=%t categories=%t subcategories=%t\n",
					g.Locked, g.HasCategories, g.HasSubcategories)
				return nil
			})
		},
	}
}

func newReorderCategoriesCmd(opts *options) *cobra.Command {
	var parentID string
	cmd := &cobra.Command{
		Use:   "reorder-categories MOVED_ID TARGET_ID",
		Short: "Move a category onto another category's position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session.Session) error {
				if err := s.ReorderCategories(ctx, parentID, args[0], args[1]); err != nil {
					return err
				}
				printTree(cmd.OutOrStdout(), s.Snapshot(), opts)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&parentID, "parent", "", "parent category id when reordering subcategories")
	return cmd
}

func newReorderProductsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder-products MOVED_ID TARGET_ID",
		Short: "Move a product onto another product's position in the same category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session.Session) error {
				if err := s.ReorderProducts(ctx, args[0], args[1]); err != nil {
					return err
				}
				printTree(cmd.OutOrStdout(), s.Snapshot(), opts)
				return nil
			})
		},
	}
}

func newToggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle PRODUCT_ID",
		Short: "Flip a product between available and unavailable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session.Session) error {
				p, err := s.ToggleAvailability(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s available=%t\n", p.Name.Resolve(opts.lang, opts.primaryLang), p.IsAvailable)
				return nil
			})
		},
	}
}

func newMoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "move PRODUCT_ID CATEGORY_ID",
		Short: "Move a product to the end of another category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session.Session) error {
				if _, err := s.MoveProduct(ctx, args[0], args[1]); err != nil {
					return err
				}
				printTree(cmd.OutOrStdout(), s.Snapshot(), opts)
				return nil
			})
		},
	}
}

func printTree(w io.Writer, t tree.Tree, opts *options) {
	if len(t.Categories) == 0 {
		fmt.Fprintln(w, "(empty catalog)")
		return
	}
	for _, root := range t.Categories {
		printNode(w, root, 0, opts)
	}
}

func printNode(w io.Writer, n tree.Node, depth int, opts *options) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s [%s]\n", indent, n.Category.Name.Resolve(opts.lang, opts.primaryLang), n.Category.ID)
	for _, p := range n.Products {
		mark := ""
		if !p.IsAvailable {
			mark = " (unavailable)"
		}
		fmt.Fprintf(w, "%s  - %s %s [%s]%s\n", indent, p.Name.Resolve(opts.lang, opts.primaryLang), priceLabel(p), p.ID, mark)
	}
	for _, sub := range n.Subcategories {
		printNode(w, sub, depth+1, opts)
	}
}

// priceLabel shows the base price, or the variant range for products with variants.
func priceLabel(p model.Product) string {
	prices := p.EffectivePrices()
	lo, hi := prices[0], prices[0]
	for _, price := range prices[1:] {
		if price.LessThan(lo) {
			lo = price
		}
		if price.GreaterThan(hi) {
			hi = price
		}
	}
	if lo.Equal(hi) {
		return lo.StringFixed(2)
	}
	return lo.StringFixed(2) + "-" + hi.StringFixed(2)
}
