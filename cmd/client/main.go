// Command client is a command-line front end for the workflow service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/middleware"
)

type options struct {
	addr    string
	user    string
	timeout time.Duration
	asJSON  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "client",
		Short:        "Talk to the workflow service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.addr, "addr", envOr("WORKFLOW_ADDR", "localhost:50051"), "gRPC server address")
	root.PersistentFlags().StringVarP(&opts.user, "user", "u", os.Getenv("WORKFLOW_USER"), "acting user id")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print raw JSON responses")

	root.AddCommand(
		newTaskCmd(opts),
		newSaleCmd(opts),
		newStockCmd(opts),
		newMessageCmd(opts),
	)
	return root
}

// call dials the server, runs fn with an identified context and closes the
// connection.
func call(cmd *cobra.Command, opts *options, fn func(ctx context.Context, c workflowv1.WorkflowServiceClient) error) error {
	conn, err := grpc.NewClient(opts.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("connect %s: %w", opts.addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	if opts.user != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, middleware.UserIDHeader, opts.user)
	}
	return fn(ctx, workflowv1.NewWorkflowServiceClient(conn))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
