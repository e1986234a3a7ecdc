package cmd

import (
	"fmt"
	"time"

	"github.com/inovacc/fuelog/internal/application"
	"github.com/inovacc/fuelog/internal/database"
	"github.com/inovacc/fuelog/internal/encoding"
	"github.com/inovacc/fuelog/internal/model"
	"github.com/spf13/cobra"
)

// Backup is the file format of entry export and import
type Backup struct {
	App        string            `json:"app"`
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Entries    []model.FuelEntry `json:"entries"`
}

var entryExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write all entries to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.GetDB()
		if err != nil {
			return err
		}

		entries, err := db.ListEntries("")
		if err != nil {
			return err
		}

		backup := Backup{
			App:        application.AppName,
			Version:    application.Version,
			ExportedAt: time.Now().UTC(),
			Entries:    entries,
		}

		if err := encoding.SaveJSON(args[0], backup); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), args[0])

		return nil
	},
}

var entryImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load entries from a JSON file written by export",
	Long: `Load entries from a JSON file written by export.

Entries keep their IDs, so importing the same file twice does not create duplicates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := encoding.LoadJSON[Backup](args[0])
		if err != nil {
			return err
		}

		if backup.App != application.AppName {
			return fmt.Errorf("%s is not a %s export", args[0], application.AppName)
		}

		db, err := database.GetDB()
		if err != nil {
			return err
		}

		for i := range backup.Entries {
			if err := db.AddEntry(&backup.Entries[i]); err != nil {
				return fmt.Errorf("import entry %s: %w", backup.Entries[i].ID, err)
			}
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s\n", len(backup.Entries), args[0])

		return nil
	},
}

func init() {
	entryCmd.AddCommand(entryExportCmd, entryImportCmd)
}
