package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vision/internal/app"
	"vision/internal/preferences"
)

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"preferences"},
	Short:   "Show or change preferences",
}

var prefsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show preferences",
	RunE:  runPrefsGet,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one of: theme, locale, notifications, sound, hourly-rate, language",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

func runPrefsGet(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		printPrefs(cmd, a.Preferences.Get(ctx))
		return nil
	})
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	in, err := parsePref(args[0], args[1])
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		s, err := a.Preferences.Update(ctx, in)
		if err != nil {
			return err
		}
		printPrefs(cmd, s)
		return nil
	})
}

func parsePref(key, value string) (preferences.UpdateInput, error) {
	var in preferences.UpdateInput
	switch key {
	case "theme":
		t := preferences.Theme(value)
		in.Theme = &t
	case "locale":
		l := preferences.Locale(value)
		in.Locale = &l
	case "language":
		l := preferences.Locale(value)
		in.Language = &l
	case "notifications", "sound":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return in, fmt.Errorf("%s expects true or false", key)
		}
		if key == "sound" {
			in.Sound = &b
		} else {
			in.Notifications = &b
		}
	case "hourly-rate":
		n, err := strconv.Atoi(value)
		if err != nil {
			return in, fmt.Errorf("hourly-rate expects a number")
		}
		in.HourlyRate = &n
	default:
		return in, fmt.Errorf("unknown preference %q", key)
	}
	return in, nil
}

func printPrefs(cmd *cobra.Command, s preferences.Settings) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "theme:         %s\n", s.Theme)
	fmt.Fprintf(w, "locale:        %s\n", s.Locale)
	fmt.Fprintf(w, "notifications: %t\n", s.Preferences.Notifications)
	fmt.Fprintf(w, "sound:         %t\n", s.Preferences.Sound)
	fmt.Fprintf(w, "hourly-rate:   %d\n", s.Preferences.HourlyRate)
	fmt.Fprintf(w, "language:      %s\n", s.Preferences.Language)
}
