// taperctl is the operator CLI: account provisioning, password resets, and
// aggregate rebuilds against the same database the server uses.
package main

import (
	"fmt"
	"os"

	"github.com/oxbowlabs/taper/internal/cache"
	"github.com/oxbowlabs/taper/internal/config"
	"github.com/oxbowlabs/taper/internal/db"
	"github.com/oxbowlabs/taper/internal/logging"
	"github.com/oxbowlabs/taper/internal/models"
	"github.com/oxbowlabs/taper/internal/services"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "taperctl",
		Short:         "Administer a taper instance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCreateUserCommand())
	root.AddCommand(newResetPasswordCommand())
	root.AddCommand(newRecomputeCommand())
	return root
}

func openRepositories() (*db.Repositories, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return db.NewRepositories(database), nil
}

func newCreateUserCommand() *cobra.Command {
	var email string
	var password string
	var displayName string

	command := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			repositories, err := openRepositories()
			if err != nil {
				return err
			}

			auth := services.NewAuthService(repositories.Users)
			user, err := auth.Register(email, password, models.User{DisplayName: displayName})
			if err != nil {
				return err
			}
			cmd.Printf("created user %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}
	command.Flags().StringVar(&email, "email", "", "account email")
	command.Flags().StringVar(&password, "password", "", "initial password")
	command.Flags().StringVar(&displayName, "display-name", "", "display name")
	_ = command.MarkFlagRequired("email")
	_ = command.MarkFlagRequired("password")
	return command
}

func newResetPasswordCommand() *cobra.Command {
	var email string

	command := &cobra.Command{
		Use:   "reset-password",
		Short: "Issue a temporary password and force a change at next login",
		RunE: func(cmd *cobra.Command, args []string) error {
			repositories, err := openRepositories()
			if err != nil {
				return err
			}

			auth := services.NewAuthService(repositories.Users)
			temporary, err := auth.ResetPassword(email)
			if err != nil {
				return err
			}
			cmd.Printf("temporary password for %s: %s\n", email, temporary)
			return nil
		},
	}
	command.Flags().StringVar(&email, "email", "", "account email")
	_ = command.MarkFlagRequired("email")
	return command
}

func newRecomputeCommand() *cobra.Command {
	var userID uint

	command := &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild daily aggregates from raw entries",
		Long:  "Rebuilds the stored daily aggregates for one user, or for every user when --user is omitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			repositories, err := openRepositories()
			if err != nil {
				return err
			}
			logger := logging.New("production")
			defer func() { _ = logger.Sync() }()

			aggregator := services.NewAggregator(
				repositories.Meals,
				repositories.WeightLogs,
				repositories.StepLogs,
				repositories.WaterLogs,
				repositories.Shots,
				repositories.SideEffects,
				repositories.DailyLogs,
				cache.New(),
				nil,
				logger,
			)

			ids := []uint{userID}
			if userID == 0 {
				ids, err = repositories.Users.ListIDs()
				if err != nil {
					return err
				}
			}

			for _, id := range ids {
				if err := aggregator.RefreshAllFromMetrics(id); err != nil {
					return fmt.Errorf("recompute user %d: %w", id, err)
				}
				cmd.Printf("recomputed aggregates for user %d\n", id)
			}
			return nil
		},
	}
	command.Flags().UintVar(&userID, "user", 0, "user ID (all users when omitted)")
	return command
}
