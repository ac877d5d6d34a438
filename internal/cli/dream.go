package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vision/internal/app"
	"vision/internal/dream"
)

var dreamCmd = &cobra.Command{
	Use:   "dream",
	Short: "Plan a long-term goal",
	RunE:  runDreamShow,
}

var dreamSetCmd = &cobra.Command{
	Use:   "set <dream>",
	Short: "Set the dream text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDreamSet,
}

var dreamAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Ask the Vision API for a roadmap",
	RunE:  runDreamAnalyze,
}

var dreamStepCmd = &cobra.Command{
	Use:   "step <id> <pending|active|completed>",
	Short: "Change a roadmap step status",
	Args:  cobra.ExactArgs(2),
	RunE:  runDreamStep,
}

var dreamClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the dream and its roadmap",
	RunE:  runDreamClear,
}

var dreamPromoteCmd = &cobra.Command{
	Use:   "promote [step-id...]",
	Short: "Turn roadmap steps into tasks",
	RunE:  runDreamPromote,
}

func init() {
	dreamCmd.AddCommand(dreamSetCmd)
	dreamCmd.AddCommand(dreamAnalyzeCmd)
	dreamCmd.AddCommand(dreamStepCmd)
	dreamCmd.AddCommand(dreamClearCmd)
	dreamCmd.AddCommand(dreamPromoteCmd)

	dreamSetCmd.Flags().String("target", "", "Target duration, e.g. \"6 months\"")
}

func runDreamShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		printDream(cmd.OutOrStdout(), a.Dream.Get(ctx))
		return nil
	})
}

func runDreamSet(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("target")

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		text := strings.Join(args, " ")
		in := dream.UpdateInput{Dream: &text}
		if target != "" {
			in.TargetDuration = &target
		}
		st, err := a.Dream.Update(ctx, in)
		if err != nil {
			return err
		}
		printDream(cmd.OutOrStdout(), st)
		return nil
	})
}

func runDreamAnalyze(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		st, err := a.Dream.Analyze(ctx)
		if err != nil {
			return err
		}
		printDream(cmd.OutOrStdout(), st)
		return nil
	})
}

func runDreamStep(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid step id %q", args[0])
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		st, err := a.Dream.UpdateStepStatus(ctx, id, dream.StepStatus(args[1]))
		if err != nil {
			return err
		}
		printDream(cmd.OutOrStdout(), st)
		return nil
	})
}

func runDreamClear(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if _, err := a.Dream.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Dream cleared.")
		return nil
	})
}

func runDreamPromote(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid step id %q", arg)
		}
		ids = append(ids, id)
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out, err := a.Dream.PromoteSteps(ctx, dream.PromoteInput{StepIDs: ids})
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d task(s), %d already existed\n", len(out.Created), len(out.Existed))
		return err
	})
}

func printDream(w io.Writer, st dream.State) {
	if st.Dream == "" {
		fmt.Fprintln(w, "No dream yet. Run `vision dream set <dream>`.")
		return
	}
	fmt.Fprintf(w, "%s (%s)\n", st.Dream, st.TargetDuration)
	for _, s := range st.Steps {
		fmt.Fprintf(w, "  %d. [%s] %s  %s\n", s.ID, s.Status, s.Title, s.Duration)
	}
	if st.LastError != "" {
		fmt.Fprintf(w, "Last analysis failed: %s\n", st.LastError)
	}
}
