package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

func newSaleCmd(opts *options) *cobra.Command {
	var (
		seller   string
		subtotal float64
		items    []string
	)
	cmd := &cobra.Command{
		Use:   "sale <total>",
		Short: "Record a sale and apply it to the seller's goals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid total %q", args[0])
			}
			sale := models.Sale{
				ID:            uuid.NewString(),
				SalesPersonID: seller,
				Total:         total,
				Subtotal:      subtotal,
				Date:          time.Now().UTC(),
			}
			if sale.SalesPersonID == "" {
				sale.SalesPersonID = opts.user
			}
			if sale.Subtotal == 0 {
				sale.Subtotal = total
			}
			for _, raw := range items {
				item, err := parseItem(raw)
				if err != nil {
					return err
				}
				sale.Items = append(sale.Items, item)
			}

			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.RecordSale(ctx, &workflowv1.RecordSaleRequest{Sale: sale})
				if err != nil {
					return err
				}
				if opts.asJSON {
					return printJSON(cmd.OutOrStdout(), resp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Profit %.2f, updated %v, completed %v, %d notification(s)\n",
					resp.Profit, resp.UpdatedTasks, resp.Completed, resp.Notifications)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&seller, "seller", "", "sales person id (defaults to --user)")
	cmd.Flags().Float64Var(&subtotal, "subtotal", 0, "pre-tax subtotal (defaults to total)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "line item as productId:quantity[:unitPrice], repeatable")
	return cmd
}

// parseItem reads productId:quantity[:unitPrice].
func parseItem(raw string) (models.SaleItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" {
		return models.SaleItem{}, fmt.Errorf("invalid item %q: want productId:quantity[:unitPrice]", raw)
	}
	qty, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || qty <= 0 {
		return models.SaleItem{}, fmt.Errorf("invalid item %q: bad quantity", raw)
	}
	item := models.SaleItem{ProductID: parts[0], Quantity: qty}
	if len(parts) == 3 {
		price, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return models.SaleItem{}, fmt.Errorf("invalid item %q: bad unit price", raw)
		}
		item.UnitPrice = price
	}
	return item, nil
}
