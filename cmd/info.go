package cmd

import (
	"fmt"

	"github.com/inovacc/fuelog/internal/application"
	"github.com/inovacc/fuelog/internal/common"
	"github.com/inovacc/fuelog/internal/database"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show fuelog version, configuration and database status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p := runtimeParams

		_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s v%s", application.AppName, application.Version)))

		configFile := p.ConfigFile
		if configFile == "" {
			configFile = "(none)"
		}

		target := common.SanitizeURL(p.DatabaseURL)
		if target == "" {
			target = "(unset)"
		}

		printField(out, "Mode", p.Mode.String())
		printField(out, "Config", configFile)
		printField(out, "Database", target)
		printField(out, "DB logging", formatLogLevels(database.LogLevelsFor(p.Mode)))

		db, err := database.GetDB()
		if err != nil {
			printField(out, "Status", "unavailable: "+err.Error())
			return nil
		}

		if err := db.Ping(); err != nil {
			printField(out, "Status", "unreachable: "+err.Error())
			return nil
		}

		printField(out, "Backend", db.Backend())
		_, _ = fmt.Fprintf(out, "  %s\n", okStyle.Render("database reachable"))

		return nil
	},
}

var helloName string

var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Say hello",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Hello, %s!\n", helloName)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(helloCmd)
	helloCmd.Flags().StringVar(&helloName, "name", "world", "Name to greet")
}
