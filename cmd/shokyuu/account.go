package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/shokyuu/internal/cli"
	"github.com/at-ishikawa/shokyuu/internal/config"
)

func newAccountCommand() *cobra.Command {
	var serverURL string
	accountCommand := &cobra.Command{
		Use:   "account",
		Short: "Account commands for the review server",
	}
	accountCommand.PersistentFlags().StringVar(&serverURL, "server", "", "Server URL including the base path (defaults to review.remote_url)")

	accountCommand.AddCommand(newAccountRegisterCommand(&serverURL))
	accountCommand.AddCommand(newAccountLoginCommand(&serverURL))
	accountCommand.AddCommand(newAccountMeCommand(&serverURL))

	return accountCommand
}

// serverBaseURL returns the flag value, the configured remote URL, or the local server address.
func serverBaseURL(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return strings.TrimSuffix(flagValue, "/")
	}
	if cfg.Review.RemoteURL != "" {
		return strings.TrimSuffix(cfg.Review.RemoteURL, "/")
	}
	basePath := strings.Trim(cfg.Server.BasePath, "/")
	if basePath == "" {
		return fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	return fmt.Sprintf("http://localhost:%d/%s", cfg.Server.Port, basePath)
}

// readPassword returns the flag value or the first line of input.
func readPassword(input io.Reader, output io.Writer, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	_, _ = fmt.Fprint(output, "Password: ")
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newAccountRegisterCommand(serverURL *string) *cobra.Command {
	var email, password string
	command := &cobra.Command{
		Use:   "register <username>",
		Short: "Register an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			secret, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout(), password)
			if err != nil {
				return err
			}

			client := cli.NewAccountClient(serverBaseURL(*serverURL, cfg), "")
			defer func() { _ = client.Close() }()
			result, err := client.Register(cmd.Context(), args[0], email, secret)
			if err != nil {
				return fmt.Errorf("client.Register() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", args[0], result.UserID)
			return nil
		},
	}
	command.Flags().StringVar(&email, "email", "", "Email address")
	command.Flags().StringVar(&password, "password", "", "Password (read from input when omitted)")
	_ = command.MarkFlagRequired("email")
	return command
}

func newAccountLoginCommand(serverURL *string) *cobra.Command {
	var password string
	command := &cobra.Command{
		Use:   "login <username or email>",
		Short: "Log in and print a token for the remote review backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			secret, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout(), password)
			if err != nil {
				return err
			}

			client := cli.NewAccountClient(serverBaseURL(*serverURL, cfg), "")
			defer func() { _ = client.Close() }()
			result, err := client.Login(cmd.Context(), args[0], secret)
			if err != nil {
				return fmt.Errorf("client.Login() > %w", err)
			}
			output := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(output, "Logged in as %s\n", result.User.Username)
			_, _ = fmt.Fprintf(output, "export SHOKYUU_REMOTE_TOKEN=%s\n", result.Token)
			return nil
		},
	}
	command.Flags().StringVar(&password, "password", "", "Password (read from input when omitted)")
	return command
}

func newAccountMeCommand(serverURL *string) *cobra.Command {
	var token string
	command := &cobra.Command{
		Use:   "me",
		Short: "Show the account of the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if token == "" {
				token = cfg.Review.RemoteToken
			}

			client := cli.NewAccountClient(serverBaseURL(*serverURL, cfg), "")
			defer func() { _ = client.Close() }()
			user, err := client.Me(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("client.Me() > %w", err)
			}
			output := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(output, "ID:         %s\n", user.ID)
			_, _ = fmt.Fprintf(output, "Username:   %s\n", user.Username)
			_, _ = fmt.Fprintf(output, "Email:      %s\n", user.Email)
			_, _ = fmt.Fprintf(output, "Registered: %s\n", formatTime(user.CreatedAt))
			_, _ = fmt.Fprintf(output, "Last login: %s\n", formatTime(user.LastLogin))
			return nil
		},
	}
	command.Flags().StringVar(&token, "token", "", "Bearer token (defaults to review.remote_token)")
	return command
}

func newAdminCommand() *cobra.Command {
	var serverURL string
	adminCommand := &cobra.Command{
		Use:   "admin",
		Short: "Administration commands for the review server",
	}
	adminCommand.PersistentFlags().StringVar(&serverURL, "server", "", "Server URL including the base path (defaults to review.remote_url)")

	adminCommand.AddCommand(&cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := cli.NewAccountClient(serverBaseURL(serverURL, cfg), cfg.Server.AdminToken)
			defer func() { _ = client.Close() }()
			result, err := client.AdminUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("client.AdminUsers() > %w", err)
			}
			return writeAdminUsers(cmd.OutOrStdout(), result)
		},
	})
	return adminCommand
}

func writeAdminUsers(output io.Writer, result cli.AdminUsersResponse) error {
	if _, err := fmt.Fprintf(output, "Total: %d | Online: %d | New today: %d\n",
		result.Stats.Total, result.Stats.Online, result.Stats.NewToday); err != nil {
		return err
	}
	for _, user := range result.Users {
		if _, err := fmt.Fprintf(output, "%s\t%s\t%s\tregistered %s\tlast login %s\n",
			user.ID, user.Username, user.Email, formatTime(user.CreatedAt), formatTime(user.LastLogin)); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "never"
	}
	return t.Local().Format(time.DateTime)
}
