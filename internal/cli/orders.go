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

// newOrdersCmd creates and returns the orders command group
func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage your orders",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(newOrdersListCmd())
	cmd.AddCommand(newOrdersCreateCmd())
	return cmd
}

func newOrdersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the items you have purchased",
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
				URL:    cl.Endpoints().MyOrders(),
			})
			if err != nil {
				return err
			}
			saveSession(cl)

			orders := normalize.NormalizeOrders(normalize.ParseEnvelope(resp.Body))

			if jsonOutput {
				printJSON(orders)
				return nil
			}
			if len(orders) == 0 {
				fmt.Println("No orders yet.")
				return nil
			}
			for _, o := range orders {
				okLabel.Printf("%s\n", dash(o.Title.String()))
				fmt.Printf("  order:    %s  status: %s\n", dash(o.ID.String()), o.Status)
				fmt.Printf("  price:    %s  qty: %s  total: %s\n",
					formatPrice(o.UnitPrice), formatCount(o.Quantity), formatPrice(o.TotalPrice))
				fmt.Printf("  ordered:  %s  delivery: %s\n", dash(o.OrderDate.String()), dash(o.ExpectedDate.String()))
				fmt.Printf("  address:  %s\n", dash(o.Address.String()))
			}
			return nil
		},
	}
}

func newOrdersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Purchase a product",
		RunE:  runOrdersCreate,
	}
	cmd.Flags().String("product", "", "Product id to purchase")
	cmd.Flags().Int("quantity", 1, "Quantity to purchase")
	cmd.Flags().String("address", "", "Delivery address")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("address")
	return cmd
}

func runOrdersCreate(cmd *cobra.Command, args []string) error {
	productID, _ := cmd.Flags().GetString("product")
	quantity, _ := cmd.Flags().GetInt("quantity")
	address, _ := cmd.Flags().GetString("address")

	cl, err := newAPIClient()
	if err != nil {
		return err
	}
	if err := requireSession(cl); err != nil {
		return err
	}

	body := []byte(`{}`)
	body, _ = sjson.SetBytes(body, "productId", productID)
	body, _ = sjson.SetBytes(body, "quantity", quantity)
	body, _ = sjson.SetBytes(body, "deliveryAddress", address)

	ctx, cancel := commandContext()
	defer cancel()

	resp, err := cl.Execute(ctx, client.Request{
		Method: http.MethodPost,
		URL:    cl.Endpoints().Orders(),
		Body:   body,
	})
	if err != nil {
		return err
	}
	saveSession(cl)

	if !resp.OK() {
		if msg := gjson.GetBytes(resp.Body, "message").String(); msg != "" {
			return fmt.Errorf("order failed: %s", msg)
		}
		return fmt.Errorf("order failed with status %d", resp.StatusCode)
	}

	if jsonOutput {
		printJSON(map[string]string{"status": "success"})
	} else {
		okLabel.Println("✓ Order placed")
	}
	return nil
}
