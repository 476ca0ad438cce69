package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/brixmarket/brix/internal/client"
	"github.com/brixmarket/brix/internal/normalize"
)

// newReviewsCmd creates and returns the reviews command group
func newReviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write product reviews",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(newReviewsListCmd())
	cmd.AddCommand(newReviewsWriteCmd())
	return cmd
}

func newReviewsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <productId>",
		Short: "List reviews for a product",
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
				URL:    cl.Endpoints().ProductReviews(args[0]),
			})
			if err != nil {
				return err
			}
			saveSession(cl)

			reviews := normalize.NormalizeReviews(normalize.ParseEnvelope(resp.Body))

			if jsonOutput {
				printJSON(reviews)
				return nil
			}
			if len(reviews) == 0 {
				fmt.Println("No reviews yet.")
				return nil
			}

			var sum float64
			var rated int
			for _, r := range reviews {
				if !r.Rating.IsNil() {
					sum += r.Rating.Value
					rated++
				}
			}
			if rated > 0 {
				fmt.Printf("Average %.1f across %d reviews\n\n", sum/float64(rated), len(reviews))
			}
			for _, r := range reviews {
				okLabel.Printf("%s", r.Nickname)
				fmt.Printf("  %s  %s\n", formatRating(r.Rating), dash(r.CreatedAt.String()))
				fmt.Printf("  %s\n", dash(r.Content.String()))
			}
			return nil
		},
	}
}

func newReviewsWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write a review for a product",
		RunE:  runReviewsWrite,
	}
	cmd.Flags().String("product", "", "Product id to review")
	cmd.Flags().Int("rating", 5, "Rating, 1 to 5")
	cmd.Flags().String("content", "", "Review text")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("content")
	return cmd
}

func runReviewsWrite(cmd *cobra.Command, args []string) error {
	productID, _ := cmd.Flags().GetString("product")
	rating, _ := cmd.Flags().GetInt("rating")
	content, _ := cmd.Flags().GetString("content")

	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	cl, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := requireSession(cl); err != nil {
		return err
	}

	body := []byte(`{}`)
	body, _ = sjson.SetBytes(body, "rating", rating)
	body, _ = sjson.SetBytes(body, "content", content)

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Execute(ctx, client.Request{
		Method: http.MethodPost,
		URL:    cl.Endpoints().ProductReviews(productID),
		Body:   body,
	})
	if err != nil {
		return err
	}
	saveSession(cl)

	if !resp.OK() {
		if msg := gjson.GetBytes(resp.Body, "message").String(); msg != "" {
			return fmt.Errorf("review failed: %s", msg)
		}
		return fmt.Errorf("review failed with status %d", resp.StatusCode)
	}

	if jsonOutput {
		printJSON(map[string]string{"status": "success"})
	} else {
		okLabel.Println("✓ Review posted")
	}
	return nil
}
