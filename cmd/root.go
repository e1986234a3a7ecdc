package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/fuelog/internal/application"
	"github.com/inovacc/fuelog/internal/database"
	"github.com/inovacc/fuelog/internal/logging"
	"github.com/inovacc/fuelog/internal/params"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	runtimeParams params.Params
	metrics       = prometheus.NewRegistry()
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A fuel log keeper",
	Long: `Fuelog records refuelling entries for your vehicles.

The database is selected with DATABASE_URL (bolt://, sqlite:// or file:) and
the environment mode with FUELOG_ENV. Both can also be set in config.ini in
the fuelog configuration directory.`,
	Version:       application.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func setup(cmd *cobra.Command) error {
	p, err := params.Load()
	if err != nil {
		return err
	}

	logger, err := logging.Setup(cmd.ErrOrStderr(), p.LogLevel, p.Mode)
	if err != nil {
		return err
	}

	slog.SetDefault(logger)

	collector, err := database.NewPrometheusCollector(metrics)
	if err != nil {
		return err
	}

	runtimeParams = p

	database.Init(
		database.WithParams(func() params.Params { return runtimeParams }),
		database.WithLogger(logger),
		database.WithCollector(collector),
	)

	return nil
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)

		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
