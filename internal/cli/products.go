package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/brixmarket/brix/internal/client"
	"github.com/brixmarket/brix/internal/normalize"
	"github.com/brixmarket/brix/pkg/api"
)

// newProductsCmd creates and returns the products command group
func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(newProductsSearchCmd())
	cmd.AddCommand(newProductsDetailCmd())
	cmd.AddCommand(newProductsPopularCmd())
	return cmd
}

func newProductsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search product listings",
		RunE:  runProductsSearch,
	}
	cmd.Flags().String("keyword", "", "Title keyword")
	cmd.Flags().String("fruit", "", "Fruit name filter")
	cmd.Flags().String("grade", "", "Grade filter")
	return cmd
}

func runProductsSearch(cmd *cobra.Command, args []string) error {
	keyword, _ := cmd.Flags().GetString("keyword")
	fruit, _ := cmd.Flags().GetString("fruit")
	grade, _ := cmd.Flags().GetString("grade")

	cl, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := requireSession(cl); err != nil {
		return err
	}

	query := map[string]string{}
	if keyword != "" {
		query["keyword"] = keyword
	}
	if fruit != "" {
		query["fruitName"] = fruit
	}
	if grade != "" {
		query["grade"] = grade
	}

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Execute(ctx, client.Request{
		Method: http.MethodGet,
		URL:    cl.Endpoints().ProductSearch(),
		Query:  query,
	})
	if err != nil {
		return err
	}
	saveSession(cl)

	resolver := normalize.NewImageResolver(cl.Endpoints().Origin())
	listings := normalize.NormalizeListings(normalize.ParseEnvelope(resp.Body), resolver)
	printListings(listings)
	return nil
}

func newProductsDetailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail <productId>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireSession(cl); err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			resp, err := cl.Execute(ctx, client.Request{
				Method: http.MethodGet,
				URL:    cl.Endpoints().ProductDetail(args[0]),
			})
			if err != nil {
				return err
			}
			saveSession(cl)

			resolver := normalize.NewImageResolver(cl.Endpoints().Origin())
			detail := normalize.NormalizeProductDetail(normalize.ParseEnvelope(resp.Body), resolver)

			if jsonOutput {
				printJSON(detail)
				return nil
			}
			okLabel.Printf("%s\n", dash(detail.Title.String()))
			fmt.Printf("  seller:   %s\n", dash(detail.SellerName.String()))
			fmt.Printf("  fruit:    %s  grade: %s\n", dash(detail.FruitName.String()), dash(detail.Grade.String()))
			fmt.Printf("  price:    %s  qty: %g\n", formatPrice(detail.Price), detail.Quantity)
			fmt.Printf("  delivery: %s\n", dash(detail.ExpectedDate.String()))
			if !detail.Description.IsNil() {
				fmt.Printf("  %s\n", detail.Description.Value)
			}
			if detail.Image.HasResolved() {
				fmt.Printf("  image:    %s\n", detail.Image.Resolved)
			}
			for grade, count := range detail.GradeTokens {
				fmt.Printf("  tokens[%s]: %d\n", grade, count)
			}
			return nil
		},
	}
}

func newProductsPopularCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "Show the most popular listings",
		Long: `Show the most popular listings, rated 4.0 and up with the most
reviews. Listings whose summary payload carries no image are enriched with a
per-product detail fetch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := requireSession(cl); err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			resp, err := cl.Execute(ctx, client.Request{
				Method: http.MethodGet,
				URL:    cl.Endpoints().PopularProducts(),
			})
			if err != nil {
				return err
			}

			resolver := normalize.NewImageResolver(cl.Endpoints().Origin())
			hydrator := normalize.NewHydrator(resolver, detailFetcher(cl))
			listings := hydrator.Hydrate(ctx, normalize.ParseEnvelope(resp.Body))
			saveSession(cl)

			printListings(listings)
			return nil
		},
	}
}

// detailFetcher adapts the authenticated client to the hydrator's secondary
// fetch contract.
func detailFetcher(cl *client.Client) normalize.DetailFetcher {
	return func(ctx context.Context, id string) (normalize.Envelope, error) {
		resp, err := cl.Execute(ctx, client.Request{
			Method: http.MethodGet,
			URL:    cl.Endpoints().ProductDetail(id),
		})
		if err != nil {
			return normalize.Envelope{}, err
		}
		return normalize.ParseEnvelope(resp.Body), nil
	}
}

func printListings(listings []api.ListingSummary) {
	if jsonOutput {
		printJSON(listings)
		return
	}
	if len(listings) == 0 {
		fmt.Println("No products found.")
		return
	}
	for _, l := range listings {
		okLabel.Printf("%s\n", dash(l.Title.String()))
		fmt.Printf("  id: %s  grade: %s  price: %s\n", dash(l.ID.String()), dash(l.Grade.String()), formatPrice(l.Price))
		fmt.Printf("  rating: %s (%s reviews)\n", formatRating(l.Rating), formatCount(l.ReviewCount))
		if l.Image.HasResolved() {
			fmt.Printf("  image: %s\n", l.Image.Resolved)
		}
	}
}
