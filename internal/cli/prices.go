package cli

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/brixmarket/brix/internal/client"
	"github.com/brixmarket/brix/internal/normalize"
)

// defaultItemCode is the strawberry item code used by the price board.
const defaultItemCode = 226

// newPricesCmd creates and returns the prices command
func newPricesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Show the market price series for a fruit grade",
		Long: `Show the market price series for a fruit grade over a date range.
Defaults to the last six months. Samples the server reports with an
unparseable price or date are dropped so the series never has holes.`,
		RunE: runPrices,
	}
	cmd.Flags().Int("item", defaultItemCode, "Item code")
	cmd.Flags().Int("quality", 4, "Grade quality code (4 = top, 1 = low)")
	cmd.Flags().String("start", "", "Range start (YYYY-MM-DD), default six months ago")
	cmd.Flags().String("end", "", "Range end (YYYY-MM-DD), default today")
	return cmd
}

func runPrices(cmd *cobra.Command, args []string) error {
	item, _ := cmd.Flags().GetInt("item")
	quality, _ := cmd.Flags().GetInt("quality")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")

	now := time.Now()
	if end == "" {
		end = now.Format("2006-01-02")
	}
	if start == "" {
		start = now.AddDate(0, -6, 0).Format("2006-01-02")
	}

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
		URL:    cl.Endpoints().PriceSeries(),
		Query: map[string]string{
			"itemCode": strconv.Itoa(item),
			"quality":  strconv.Itoa(quality),
			"start":    start,
			"end":      end,
		},
	})
	if err != nil {
		return err
	}
	saveSession(cl)

	series := normalize.NormalizePriceSeries(normalize.ParseEnvelope(resp.Body))
	series = normalize.FilterPriceRange(series, start, end)

	if jsonOutput {
		printJSON(series)
		return nil
	}
	if len(series) == 0 {
		fmt.Println("No price data in range.")
		return nil
	}

	var sum float64
	for _, s := range series {
		sum += s.Price
	}
	fmt.Printf("%s to %s, %d samples, average %s won\n",
		series[0].Date, series[len(series)-1].Date, len(series), groupDigits(sum/float64(len(series))))
	for _, s := range series {
		fmt.Printf("  %s  %s won\n", s.Date, groupDigits(s.Price))
	}
	return nil
}
