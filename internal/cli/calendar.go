package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vision/internal/app"
	"vision/internal/calendar"
	"vision/pkg/gcalendar"
	pkgSqlite "vision/pkg/sqlite"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Google Calendar integration",
}

var calendarAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize read access to Google Calendar",
	Long: `Runs the OAuth desktop flow: open the printed URL, sign in, then paste the
authorization code. The token is saved to google_calendar.token_path.`,
	RunE: runCalendarAuth,
}

var calendarImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import upcoming events as tasks",
	RunE:  runCalendarImport,
}

func init() {
	calendarCmd.AddCommand(calendarAuthCmd)
	calendarCmd.AddCommand(calendarImportCmd)

	calendarAuthCmd.Flags().String("credentials", "", "OAuth client credentials file (defaults to config)")
	calendarAuthCmd.Flags().String("token-path", "", "Where to save the token (defaults to config)")

	calendarImportCmd.Flags().String("calendar", "", "Calendar id (defaults to config)")
	calendarImportCmd.Flags().Int("days", 0, "Days ahead to import (defaults to config)")
}

func runCalendarAuth(cmd *cobra.Command, args []string) error {
	credsPath, _ := cmd.Flags().GetString("credentials")
	tokenPath, _ := cmd.Flags().GetString("token-path")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if credsPath == "" {
		credsPath = cfg.GoogleCalendar.CredentialsPath
	}
	if tokenPath == "" {
		tokenPath = cfg.GoogleCalendar.TokenPath
	}
	if credsPath == "" {
		return fmt.Errorf("no credentials file: pass --credentials or set google_calendar.credentials_path")
	}
	if credsPath, err = pkgSqlite.ExpandPath(credsPath); err != nil {
		return err
	}
	if tokenPath, err = pkgSqlite.ExpandPath(tokenPath); err != nil {
		return err
	}

	data, err := os.ReadFile(credsPath)
	if err != nil {
		return fmt.Errorf("read credentials %q: %w", credsPath, err)
	}
	oauthCfg, err := gcalendar.OAuthConfig(data)
	if err != nil {
		return fmt.Errorf("parse credentials (an OAuth desktop app file is required): %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "1. Open this URL and sign in with your Google account:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, gcalendar.AuthCodeURL(oauthCfg, "vision"))
	fmt.Fprintln(w)
	fmt.Fprint(w, "2. Paste the authorization code here: ")

	code, err := readLine(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read authorization code: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := gcalendar.ExchangeAndSave(ctx, oauthCfg, code, tokenPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nToken saved to %s\n", tokenPath)
	return nil
}

func runCalendarImport(cmd *cobra.Command, args []string) error {
	calendarID, _ := cmd.Flags().GetString("calendar")
	days, _ := cmd.Flags().GetInt("days")

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if a.Calendar == nil {
			return calendar.ErrNotConfigured
		}
		out, err := a.Calendar.Import(ctx, calendar.ImportInput{CalendarID: calendarID, Days: days})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d event(s), %d already present, %d skipped\n",
			len(out.Created), len(out.Existed), out.Skipped)
		return nil
	})
}
