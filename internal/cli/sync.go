package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vision/internal/app"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replicate tasks with the Vision API",
}

var syncRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Push pending changes, then pull remote changes",
	RunE:  runSyncRun,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show replication status",
	RunE:  runSyncStatus,
}

func init() {
	syncCmd.AddCommand(syncRunCmd)
	syncCmd.AddCommand(syncStatusCmd)
}

func runSyncRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		res, err := a.Replicator.RunOnce(ctx)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Pushed %d, conflicts %d, pulled %d\n", res.Push.Pushed, len(res.Push.Conflicts), res.Pull.Received)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		return nil
	})
}

func runSyncStatus(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		st, err := a.Replicator.Status(ctx)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "State:      %s\n", st.State)
		fmt.Fprintf(w, "Pending:    %d\n", st.Pending)
		fmt.Fprintf(w, "Checkpoint: %s\n", formatTime(st.Checkpoint.UpdatedAt))
		fmt.Fprintf(w, "Last sync:  %s\n", formatTime(st.LastSyncAt))
		if st.LastError != "" {
			fmt.Fprintf(w, "Last error: %s\n", st.LastError)
		}
		return nil
	})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format(time.DateTime)
}
