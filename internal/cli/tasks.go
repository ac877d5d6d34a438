package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"vision/internal/app"
	"vision/internal/task"
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"task"},
	Short:   "Manage local tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible tasks in order",
	RunE:  runTasksList,
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTasksAdd,
}

var tasksStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Mark a task in progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksStart,
}

var tasksCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksComplete,
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksDelete,
}

var tasksReorderCmd = &cobra.Command{
	Use:   "reorder <id>...",
	Short: "Set the display order; ids are given first to last",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTasksReorder,
}

var tasksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as YAML or JSON",
	RunE:  runTasksExport,
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksStartCmd)
	tasksCmd.AddCommand(tasksCompleteCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
	tasksCmd.AddCommand(tasksReorderCmd)
	tasksCmd.AddCommand(tasksExportCmd)

	tasksListCmd.Flags().String("status", "", "Filter by status: ready, in-progress, completed")
	tasksListCmd.Flags().Bool("all", false, "Include deleted tasks")

	tasksAddCmd.Flags().String("description", "", "Description")
	tasksAddCmd.Flags().String("source", "", "Source: github, calendar, slack, dream, manual")
	tasksAddCmd.Flags().String("estimate", "", "Estimated time, e.g. 30m")
	tasksAddCmd.Flags().StringSlice("item", nil, "Prepared item (repeatable)")

	tasksExportCmd.Flags().String("format", "yaml", "Output format: yaml, json")
	tasksExportCmd.Flags().Bool("all", false, "Include deleted tasks")
	tasksExportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
}

func runTasksList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	all, _ := cmd.Flags().GetBool("all")

	if status != "" && !task.Status(status).IsValid() {
		return fmt.Errorf("unknown status %q", status)
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out, err := a.Tasks.List(ctx, task.ListInput{Status: task.Status(status), IncludeDeleted: all})
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(out.Tasks) == 0 {
			fmt.Fprintln(w, "No tasks.")
			return nil
		}
		for _, t := range out.Tasks {
			printTask(w, t)
		}
		return nil
	})
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	description, _ := cmd.Flags().GetString("description")
	source, _ := cmd.Flags().GetString("source")
	estimate, _ := cmd.Flags().GetString("estimate")
	items, _ := cmd.Flags().GetStringSlice("item")

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out, err := a.Tasks.Create(ctx, task.CreateInput{
			Title:         strings.Join(args, " "),
			Description:   description,
			Source:        task.Source(source),
			EstimatedTime: estimate,
			PreparedItems: items,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", out.Task.ID)
		return nil
	})
}

func runTasksStart(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out, err := a.Tasks.Start(ctx, args[0])
		if err != nil {
			return err
		}
		printTask(cmd.OutOrStdout(), out.Task)
		return nil
	})
}

func runTasksComplete(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out, err := a.Tasks.Complete(ctx, args[0])
		if err != nil {
			return err
		}
		printTask(cmd.OutOrStdout(), out.Task)
		return nil
	})
}

func runTasksDelete(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if err := a.Tasks.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	})
}

func runTasksReorder(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out, err := a.Tasks.Reorder(ctx, task.ReorderInput{IDs: args})
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %d task(s)\n", len(out.Changed))
		return err
	})
}

func printTask(w io.Writer, t task.Task) {
	mark := " "
	switch t.Status {
	case task.StatusInProgress:
		mark = ">"
	case task.StatusCompleted:
		mark = "x"
	}
	deleted := ""
	if t.Deleted {
		deleted = " (deleted)"
	}
	fmt.Fprintf(w, "[%s] %3d  %s  %s  (%s, %s)%s\n", mark, t.Position, t.ID, t.Title, t.EstimatedTime, t.Source, deleted)
}
