package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vision/internal/app"
	"vision/internal/session"
	"vision/pkg/visionapi"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the Vision assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show productivity statistics",
}

var statsWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Tasks and hours for the last seven days",
	RunE:  runStatsWeekly,
}

var statsMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Completed tasks per week and skill distribution",
	RunE:  runStatsMonthly,
}

var statsLossCmd = &cobra.Command{
	Use:   "loss",
	Short: "Idle time and what it cost at your hourly rate",
	RunE:  runStatsLoss,
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Show the skill tree",
	RunE:  runSkills,
}

func init() {
	statsCmd.AddCommand(statsWeeklyCmd)
	statsCmd.AddCommand(statsMonthlyCmd)
	statsCmd.AddCommand(statsLossCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		reply, err := a.API.Chat(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	})
}

func runStatsWeekly(cmd *cobra.Command, args []string) error {
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		st, err := a.API.WeeklyStats(ctx)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, d := range st.Data {
			fmt.Fprintf(w, "%-4s %3d tasks  %5.1fh\n", d.Day, d.Tasks, d.Hours)
		}
		s := st.Summary
		fmt.Fprintf(w, "Total: %d tasks, %.1fh, streak %d days, achievement %d%%\n",
			s.TotalTasks, s.TotalHours, s.Streak, s.AchievementRate)
		return nil
	})
}

func runStatsMonthly(cmd *cobra.Command, args []string) error {
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		st, err := a.API.MonthlyStats(ctx)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, wk := range st.Data {
			fmt.Fprintf(w, "%-8s %3d completed\n", wk.Week, wk.Completed)
		}
		for _, sk := range st.SkillDistribution {
			fmt.Fprintf(w, "  %-16s %3d%%\n", sk.Name, sk.Value)
		}
		return nil
	})
}

func runStatsLoss(cmd *cobra.Command, args []string) error {
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		loss, err := a.API.LossData(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Idle %d min at %d/h: %d lost\n",
			loss.IdleMinutes, loss.HourlyRate, lostAmount(loss))
		return nil
	})
}

func runSkills(cmd *cobra.Command, args []string) error {
	return withRemote(cmd, func(ctx context.Context, a *app.App) error {
		skills, err := a.API.Skills(ctx)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, s := range skills {
			lock := " "
			if !s.Unlocked {
				lock = "#"
			}
			fmt.Fprintf(w, "%s %-20s Lv %d/%d  %d exp\n", lock, s.Name, s.Level, s.MaxLevel, s.Exp)
		}
		return nil
	})
}

func lostAmount(l visionapi.LossData) int {
	return l.IdleMinutes * l.HourlyRate / 60
}

// withRemote is withApp for commands that only talk to the Vision API.
func withRemote(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if !a.Session.Current(ctx).Authenticated {
			return fmt.Errorf("%w: run `vision login` first", session.ErrNotAuthenticated)
		}
		err := fn(ctx, a)
		if errors.Is(err, visionapi.ErrUnauthorized) {
			return fmt.Errorf("session expired: run `vision login` again")
		}
		return err
	})
}

func parseRemoteID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
