package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

func newStockCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Open and advance inter-branch stock requests",
	}

	req := &models.StockRequest{}
	request := &cobra.Command{
		Use:   "request",
		Short: "Open a stock request addressed to a worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.CreateStockRequest(ctx, &workflowv1.CreateStockRequestRequest{Request: *req})
				if err != nil {
					return err
				}
				return printMessage(cmd.OutOrStdout(), opts, resp.Message)
			})
		},
	}
	request.Flags().StringVar(&req.WorkerID, "worker", "", "worker who prepares the request")
	request.Flags().StringVar(&req.ManagerID, "manager", "", "manager who approves (defaults to the requester)")
	request.Flags().StringVar(&req.ProductID, "product", "", "product id")
	request.Flags().IntVar(&req.RequestedStock, "quantity", 0, "units requested")
	request.Flags().StringVar(&req.Category, "category", models.CategoryRoutine, "routine or emergency")
	request.Flags().StringVar(&req.Subject, "subject", "", "message subject")
	request.Flags().StringVar(&req.Content, "content", "", "message body")
	_ = request.MarkFlagRequired("worker")
	_ = request.MarkFlagRequired("product")
	_ = request.MarkFlagRequired("quantity")

	cmd.AddCommand(
		request,
		newApprovalCmd(opts, "send", "Forward a request to the manager", models.ActionSendStockRequest),
		newApprovalCmd(opts, "approve", "Approve a request", models.ActionApproveStockRequest),
		newApprovalCmd(opts, "accept", "Accept the stock and close the request", models.ActionAcceptStock),
		newApprovalCmd(opts, "decline", "Decline a request with a reason", models.ActionDeclineRequest),
	)
	return cmd
}

func newApprovalCmd(opts *options, use, short string, action models.ApprovalAction) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   use + " <message-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.ApprovalAction(ctx, &workflowv1.ApprovalActionRequest{
					MessageID: args[0],
					Action:    string(action),
					Reason:    reason,
				})
				if err != nil {
					return err
				}
				return printMessage(cmd.OutOrStdout(), opts, resp.Message)
			})
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded in the history")
	if action == models.ActionDeclineRequest {
		_ = cmd.MarkFlagRequired("reason")
	}
	return cmd
}

func newMessageCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List and acknowledge messages",
	}

	var unread bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List messages addressed to the caller",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.ListMessages(ctx, &workflowv1.ListMessagesRequest{UnreadOnly: unread})
				if err != nil {
					return err
				}
				if opts.asJSON {
					return printJSON(cmd.OutOrStdout(), resp.Messages)
				}
				writeMessageTable(cmd.OutOrStdout(), resp.Messages)
				return nil
			})
		},
	}
	list.Flags().BoolVar(&unread, "unread", false, "only unread messages")

	read := &cobra.Command{
		Use:   "read <message-id>",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				if _, err := c.MarkRead(ctx, &workflowv1.MarkReadRequest{MessageID: args[0]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(list, read)
	return cmd
}

func printMessage(w io.Writer, opts *options, m *models.Message) error {
	if opts.asJSON {
		return printJSON(w, m)
	}
	writeMessageTable(w, []*models.Message{m})
	return nil
}

func writeMessageTable(w io.Writer, msgs []*models.Message) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "From", "To", "Subject", "Status", "Read"})
	for _, m := range msgs {
		table.Append([]string{
			m.ID,
			m.From,
			m.To,
			m.Subject,
			string(m.Status),
			strconv.FormatBool(m.Read),
		})
	}
	table.Render()
}
