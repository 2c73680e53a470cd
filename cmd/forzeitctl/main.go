package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"forzeit/application/ports"
	"forzeit/application/queries"
	"forzeit/infrastructure/config"
	"forzeit/infrastructure/di"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOptions struct {
	seedPath string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "forzeitctl",
		Short:         "Operate on a forzeit seed file without running the API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.seedPath, "seed", "", "seed file (defaults to SEED_PATH)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newTokenCmd(opts))
	root.AddCommand(newInsightsCmd(opts))
	root.AddCommand(newWeeksCmd(opts))
	return root
}

func loadContainer(opts *globalOptions) (*di.Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if opts.seedPath != "" {
		cfg.SeedPath = opts.seedPath
	}
	cfg.LogLevel = "warn"
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	return di.InitializeContainer(cfg)
}

// principalFor resolves a seeded user the way the auth middleware does
func principalFor(ctx context.Context, c *di.Container, userID string) (*ports.Principal, error) {
	user, err := c.Store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	return &ports.Principal{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

func newTokenCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <userId>",
		Short: "Issue a bearer token for a seeded user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(opts)
			if err != nil {
				return err
			}
			defer c.Shutdown()

			principal, err := principalFor(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}
			token, err := c.JWTGenerator.GenerateToken(principal.ID, principal.Email, principal.Name)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newInsightsCmd(opts *globalOptions) *cobra.Command {
	var asUser string

	cmd := &cobra.Command{
		Use:   "insights <weekId>",
		Short: "Compute the insights of a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(opts)
			if err != nil {
				return err
			}
			defer c.Shutdown()

			ctx := cmd.Context()
			var principal *ports.Principal
			if asUser != "" {
				if principal, err = principalFor(ctx, c, asUser); err != nil {
					return err
				}
			}

			result, err := c.QueryBus.Ask(ctx, queries.GetInsightsQuery{WeekID: args[0], Principal: principal})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&asUser, "as", "", "user id to act as (must own the week)")
	return cmd
}

func newWeeksCmd(opts *globalOptions) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "weeks <userId>",
		Short: "List a user's weeks, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(opts)
			if err != nil {
				return err
			}
			defer c.Shutdown()

			ctx := cmd.Context()
			principal, err := principalFor(ctx, c, args[0])
			if err != nil {
				return err
			}

			result, err := c.QueryBus.Ask(ctx, queries.ListWeeksQuery{
				UserID:    args[0],
				Limit:     limit,
				Offset:    offset,
				Principal: principal,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (default 10, max 50)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of weeks to skip")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
