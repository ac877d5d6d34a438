package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vision/config"
	"vision/internal/app"
	"vision/pkg/log"
)

var (
	verbose bool
	rootCmd *cobra.Command

	// loadConfig and openApp are swapped in tests.
	loadConfig = config.Load
	openApp    = func(ctx context.Context) (*app.App, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return app.New(ctx, cfg, newLogger(cfg))
	}
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "vision",
		Short: "Vision - local-first task agent",
		Long: `vision operates on the local task store of this device.

Tasks are written locally first and replicated to the Vision API by "vision sync run"
or by the agent daemon.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(dreamCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(proposalsCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(preparedCmd)
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newLogger(cfg *config.Config) log.Logger {
	if !verbose {
		return log.NewNop()
	}
	return log.Init(log.ZapConfig{
		Level:        "debug",
		Mode:         cfg.Logger.Mode,
		Encoding:     "console",
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

// withApp opens the local services for one command and closes them afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
