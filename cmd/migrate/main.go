// AngelaMos | 2026
// main.go

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/invoicing-backend/internal/core"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	databaseURL string
	path        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the invoicing schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if opts.databaseURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url",
		os.Getenv("DATABASE_URL"), "postgres connection URL")
	root.PersistentFlags().StringVar(&opts.path, "path",
		envOr("DATABASE_MIGRATIONS_PATH", "migrations"), "directory holding the SQL migrations")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: opts.with(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				return ignoreNoChange(m.Up())
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: opts.with(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				return ignoreNoChange(m.Down())
			}),
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations, or roll back when N is negative (pass -- before a negative N)",
			Args:  cobra.ExactArgs(1),
			RunE: opts.with(func(cmd *cobra.Command, m *migrate.Migrate, args []string) error {
				n, err := parseInt(args[0])
				if err != nil {
					return err
				}
				return ignoreNoChange(m.Steps(n))
			}),
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: opts.with(func(cmd *cobra.Command, m *migrate.Migrate, args []string) error {
				v, err := parseInt(args[0])
				if err != nil {
					return err
				}
				return m.Force(v)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: opts.with(func(cmd *cobra.Command, m *migrate.Migrate, _ []string) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty: %t)\n", v, dirty)
				return nil
			}),
		},
	)

	return root
}

func (o *options) with(
	fn func(cmd *cobra.Command, m *migrate.Migrate, args []string) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		m, err := core.NewMigrator(o.databaseURL, o.path)
		if err != nil {
			return err
		}
		defer core.CloseMigrator(m)

		if err := fn(cmd, m, args); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}
		return nil
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
