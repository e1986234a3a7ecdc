package cmd

import (
	"fmt"
	"sort"

	"github.com/inovacc/fuelog/internal/database"
	"github.com/spf13/cobra"
)

var dbShowMetrics bool

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the fuelog database",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var dbPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Open the database and check that it responds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.GetDB()
		if err != nil {
			return err
		}

		if err := db.Ping(); err != nil {
			return fmt.Errorf("ping %s database: %w", db.Backend(), err)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "%s %s database is reachable\n", okStyle.Render("OK"), db.Backend())

		if dbShowMetrics {
			return printMetrics(cmd)
		}

		return nil
	},
}

func printMetrics(cmd *cobra.Command) error {
	families, err := metrics.Gather()
	if err != nil {
		return err
	}

	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	out := cmd.OutOrStdout()

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "key" {
					key = lp.GetValue()
				}
			}

			_, _ = fmt.Fprintf(out, "%s{key=%q} %g\n", mf.GetName(), key, m.GetCounter().GetValue())
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbPingCmd)
	dbPingCmd.Flags().BoolVar(&dbShowMetrics, "metrics", false, "Print client accessor counters")
}
