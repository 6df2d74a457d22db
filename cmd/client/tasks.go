package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/report"
)

func newTaskCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, join and inspect goal tasks",
	}
	cmd.AddCommand(
		newTaskCreateCmd(opts),
		newTaskEditCmd(opts),
		newTaskGetCmd(opts),
		newTaskListCmd(opts),
		newTaskDeleteCmd(opts),
		newTaskJoinCmd(opts),
		newTaskAssignCmd(opts),
		newTaskLeaderboardCmd(opts),
	)
	return cmd
}

// specFlags binds the replaceable task fields to cmd.
type specFlags struct {
	title       string
	description string
	due         string
	goalType    string
	target      float64
	limit       int
	bot         bool
	botFreq     string
}

func (f *specFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "task title")
	cmd.Flags().StringVar(&f.description, "description", "", "task description")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.goalType, "goal-type", models.GoalTypeSales, "sales, profit or count")
	cmd.Flags().Float64Var(&f.target, "target", 0, "goal target")
	cmd.Flags().IntVar(&f.limit, "limit", 1, "participant limit")
	cmd.Flags().BoolVar(&f.bot, "accurabot", false, "enable periodic progress reports")
	cmd.Flags().StringVar(&f.botFreq, "report-frequency", "", "daily, weekly or monthly")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("target")
}

func (f *specFlags) spec() (models.TaskSpec, error) {
	spec := models.TaskSpec{
		Title:                    f.title,
		Description:              f.description,
		GoalType:                 f.goalType,
		GoalTarget:               f.target,
		ParticipantLimit:         f.limit,
		AccuraBotEnabled:         f.bot,
		AccuraBotReportFrequency: f.botFreq,
	}
	if f.due != "" {
		due, err := time.Parse("2006-01-02", f.due)
		if err != nil {
			return models.TaskSpec{}, fmt.Errorf("invalid --due %q: %w", f.due, err)
		}
		spec.DueDate = &due
	}
	return spec, nil
}

func newTaskCreateCmd(opts *options) *cobra.Command {
	flags := &specFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a main task; the caller joins it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := flags.spec()
			if err != nil {
				return err
			}
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.CreateTask(ctx, &workflowv1.CreateTaskRequest{Spec: spec})
				if err != nil {
					return err
				}
				return printTask(cmd.OutOrStdout(), opts, resp.Task)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newTaskEditCmd(opts *options) *cobra.Command {
	flags := &specFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the goal parameters of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			spec, err := flags.spec()
			if err != nil {
				return err
			}
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.EditTask(ctx, &workflowv1.EditTaskRequest{ID: id, Spec: spec})
				if err != nil {
					return err
				}
				return printTask(cmd.OutOrStdout(), opts, resp.Task)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newTaskGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.GetTask(ctx, &workflowv1.GetTaskRequest{ID: id})
				if err != nil {
					return err
				}
				return printTask(cmd.OutOrStdout(), opts, resp.Task)
			})
		},
	}
}

func newTaskListCmd(opts *options) *cobra.Command {
	req := &workflowv1.ListTasksRequest{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.ListTasks(ctx, req)
				if err != nil {
					return err
				}
				if opts.asJSON {
					return printJSON(cmd.OutOrStdout(), resp.Tasks)
				}
				writeTaskTable(cmd.OutOrStdout(), resp.Tasks)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.UserID, "participant", "", "only tasks this user joined")
	cmd.Flags().StringVar(&req.Status, "status", "", "active or completed")
	cmd.Flags().BoolVar(&req.MainOnly, "main", false, "only main tasks")
	cmd.Flags().StringVar(&req.BranchID, "branch", "", "only tasks of this branch")
	return cmd
}

func newTaskDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				if _, err := c.DeleteTask(ctx, &workflowv1.DeleteTaskRequest{ID: id}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
				return nil
			})
		},
	}
}

func newTaskJoinCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a main task and receive a personal sub-task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.JoinTask(ctx, &workflowv1.JoinTaskRequest{TaskID: id})
				if err != nil {
					return err
				}
				return printTask(cmd.OutOrStdout(), opts, resp.Task)
			})
		},
	}
}

func newTaskAssignCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <id> <branch>",
		Short: "Assign a task to a branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.AssignBranch(ctx, &workflowv1.AssignBranchRequest{TaskID: id, BranchID: args[1]})
				if err != nil {
					return err
				}
				return printTask(cmd.OutOrStdout(), opts, resp.Task)
			})
		},
	}
}

func newTaskLeaderboardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard <id>",
		Short: "Rank the participants of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return call(cmd, opts, func(ctx context.Context, c workflowv1.WorkflowServiceClient) error {
				resp, err := c.Leaderboard(ctx, &workflowv1.LeaderboardRequest{TaskID: id})
				if err != nil {
					return err
				}
				if opts.asJSON {
					return printJSON(cmd.OutOrStdout(), resp.Leaderboard)
				}
				return report.WriteText(cmd.OutOrStdout(), resp.Leaderboard)
			})
		},
	}
}

func printTask(w io.Writer, opts *options, t *models.Task) error {
	if opts.asJSON {
		return printJSON(w, t)
	}
	writeTaskTable(w, []*models.Task{t})
	return nil
}

func writeTaskTable(w io.Writer, tasks []*models.Task) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Parent", "Title", "Goal", "Progress", "Participants", "Status"})
	for _, t := range tasks {
		parent := "-"
		if t.ParentTaskID != nil {
			parent = strconv.FormatInt(*t.ParentTaskID, 10)
		}
		table.Append([]string{
			strconv.FormatInt(t.ID, 10),
			parent,
			t.Title,
			fmt.Sprintf("%.2f %s", t.GoalTarget, t.GoalType),
			fmt.Sprintf("%.2f (%.0f%%)", t.Progress, t.Percent()),
			fmt.Sprintf("%d/%d", len(t.Participants), t.ParticipantLimit),
			t.Status,
		})
	}
	table.Render()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
