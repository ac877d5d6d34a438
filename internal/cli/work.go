package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vision/internal/app"
	"vision/pkg/visionapi"
)

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Review what the assistant proposes to do",
	RunE:  runProposalsList,
}

var proposalsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalDecision(true),
}

var proposalsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a proposal",
	Args:  cobra.ExactArgs(1),
	RunE:  runProposalDecision(false),
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Save and resume work contexts",
	RunE:  runSnapshotsList,
}

var snapshotsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Save the current work context",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsCreate,
}

var snapshotsResumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Resume a saved work context",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsResume,
}

var preparedCmd = &cobra.Command{
	Use:   "prepared",
	Short: "Tasks the assistant has prepared on the server",
	RunE:  runPreparedList,
}

var preparedStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start a prepared task",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreparedAction("Started", (*visionapi.Client).StartPreparedTask),
}

var preparedCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Complete a prepared task",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreparedAction("Completed", (*visionapi.Client).CompletePreparedTask),
}

var (
	snapshotNotes   string
	snapshotWindows []string
)

func init() {
	proposalsCmd.AddCommand(proposalsApproveCmd)
	proposalsCmd.AddCommand(proposalsRejectCmd)

	snapshotsCreateCmd.Flags().StringVar(&snapshotNotes, "notes", "", "Notes to keep with the snapshot")
	snapshotsCreateCmd.Flags().StringSliceVar(&snapshotWindows, "window", nil, "Open window as type:name (repeatable)")
	snapshotsCmd.AddCommand(snapshotsCreateCmd)
	snapshotsCmd.AddCommand(snapshotsResumeCmd)

	preparedCmd.AddCommand(preparedStartCmd)
	preparedCmd.AddCommand(preparedCompleteCmd)
}

func runProposalsList(cmd *cobra.Command, args []string) error {
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		proposals, err := a.API.Proposals(ctx)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(proposals) == 0 {
			fmt.Fprintln(w, "No proposals.")
			return nil
		}
		for _, p := range proposals {
			fmt.Fprintf(w, "%4d  %-9s %s\n", p.ID, p.Status, p.Title)
			if p.Description != "" {
				fmt.Fprintf(w, "      %s\n", p.Description)
			}
		}
		return nil
	})
}

func runProposalDecision(approve bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseRemoteID(args[0])
		if err != nil {
			return err
		}
		return withRemote(cmd, func(ctx context.Context, a *app.App) error {
			verb := "Approved"
			if approve {
				err = a.API.ApproveProposal(ctx, id)
			} else {
				verb = "Rejected"
				err = a.API.RejectProposal(ctx, id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s proposal %d\n", verb, id)
			return nil
		})
	}
}

func runSnapshotsList(cmd *cobra.Command, args []string) error {
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		snaps, err := a.API.Snapshots(ctx)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(snaps) == 0 {
			fmt.Fprintln(w, "No snapshots.")
			return nil
		}
		for _, s := range snaps {
			fmt.Fprintf(w, "%4d  %-24s %d windows\n", s.ID, s.Name, len(s.Windows))
		}
		return nil
	})
}

func runSnapshotsCreate(cmd *cobra.Command, args []string) error {
	windows, err := parseWindows(snapshotWindows)
	if err != nil {
		return err
	}
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		snap, err := a.API.CreateSnapshot(ctx, visionapi.CreateSnapshotRequest{
			Name:    args[0],
			Notes:   snapshotNotes,
			Windows: windows,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %d\n", snap.ID)
		return nil
	})
}

func runSnapshotsResume(cmd *cobra.Command, args []string) error {
	id, err := parseRemoteID(args[0])
	if err != nil {
		return err
	}
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		if err := a.API.ResumeSnapshot(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Resumed snapshot %d\n", id)
		return nil
	})
}

func runPreparedList(cmd *cobra.Command, args []string) error {
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		prepared, err := a.API.PreparedTasks(ctx)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(prepared) == 0 {
			fmt.Fprintln(w, "No prepared tasks.")
			return nil
		}
		for _, p := range prepared {
			fmt.Fprintf(w, "%4d  %-11s %s (%s)\n", p.ID, p.Status, p.Title, p.EstimatedTime)
			for _, item := range p.PreparedItems {
				fmt.Fprintf(w, "      - %s\n", item)
			}
		}
		return nil
	})
}

func runPreparedAction(verb string, do func(*visionapi.Client, context.Context, int) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseRemoteID(args[0])
		if err != nil {
			return err
		}
		return withRemote(cmd, func(ctx context.Context, a *app.App) error {
			if err := do(a.API, ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s prepared task %d\n", verb, id)
			return nil
		})
	}
}

func parseWindows(raw []string) ([]visionapi.SnapshotWindow, error) {
	out := make([]visionapi.SnapshotWindow, 0, len(raw))
	for _, r := range raw {
		typ, name, ok := strings.Cut(r, ":")
		if !ok || typ == "" || name == "" {
			return nil, fmt.Errorf("invalid window %q, want type:name", r)
		}
		out = append(out, visionapi.SnapshotWindow{Type: typ, Name: name})
	}
	return out, nil
}
