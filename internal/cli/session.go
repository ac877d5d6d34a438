package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vision/internal/app"
	"vision/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the Vision API",
	Long: `Sign in with email and password, or store a token issued elsewhere with --token.
The password is read from stdin when --password is not given.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token and user",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password")
	loginCmd.Flags().String("token", "", "Bearer token to store instead of signing in")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	token, _ := cmd.Flags().GetString("token")

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		var (
			user session.User
			err  error
		)
		if token != "" {
			if err = a.Session.Login(ctx, token, session.User{}); err != nil {
				return err
			}
			user, err = a.Session.Refresh(ctx)
		} else {
			if password == "" {
				if password, err = readLine(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}
			user, err = a.Session.SignIn(ctx, session.LoginInput{Email: email, Password: password})
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", displayName(user))
		return nil
	})
}

func runLogout(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if err := a.Session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	})
}

func runWhoami(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		st := a.Session.Current(ctx)
		w := cmd.OutOrStdout()
		switch {
		case st.Authenticated && st.User != nil:
			fmt.Fprintln(w, displayName(*st.User))
		case st.LoginRequired:
			fmt.Fprintln(w, "Session expired. Run `vision login`.")
		default:
			fmt.Fprintln(w, "Not signed in.")
		}
		return nil
	})
}

func displayName(u session.User) string {
	switch {
	case u.Name != "" && u.Email != "":
		return fmt.Sprintf("%s <%s>", u.Name, u.Email)
	case u.Email != "":
		return u.Email
	case u.Name != "":
		return u.Name
	}
	return "user " + strconv.Itoa(u.ID)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
