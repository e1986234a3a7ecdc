package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/inovacc/fuelog/internal/database"
	"github.com/inovacc/fuelog/internal/model"
	"github.com/spf13/cobra"
)

var (
	entryVehicle  string
	entryLiters   float64
	entryPrice    float64
	entryOdometer int64
	entryStation  string
	entryAt       string
	listVehicle   string
	removeYes     bool
)

var entryCmd = &cobra.Command{
	Use:     "entry",
	Aliases: []string{"entries"},
	Short:   "Manage refuelling entries",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a refuelling",
	Long: `Record a refuelling for a vehicle.

Examples:
  fuelog entry add --vehicle golf --liters 42.5 --price 1.799 --odometer 120450
  fuelog entry add --vehicle transit --liters 70 --price 1.659 --at 2026-03-14`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if entryVehicle == "" {
			return errors.New("--vehicle is required")
		}

		if entryLiters <= 0 {
			return errors.New("--liters must be greater than zero")
		}

		if entryPrice < 0 {
			return errors.New("--price must not be negative")
		}

		filledAt, err := parseFilledAt(entryAt)
		if err != nil {
			return err
		}

		db, err := database.GetDB()
		if err != nil {
			return err
		}

		entry := model.FuelEntry{
			Vehicle:       entryVehicle,
			Liters:        entryLiters,
			PricePerLiter: entryPrice,
			Odometer:      entryOdometer,
			Station:       entryStation,
			FilledAt:      filledAt,
		}

		if err := db.AddEntry(&entry); err != nil {
			return fmt.Errorf("save entry: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added: %s (%.2f total)\n", entry.ID, entry.Total())

		return nil
	},
}

var entryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List refuelling entries",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.GetDB()
		if err != nil {
			return err
		}

		entries, err := db.ListEntries(listVehicle)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if len(entries) == 0 {
			_, _ = fmt.Fprintln(out, "No entries found.")
			return nil
		}

		header := []string{"DATE", "VEHICLE", "LITERS", "PRICE", "TOTAL", "ODOMETER", "ID"}
		rows := make([][]string, 0, len(entries))

		var liters, total float64

		for _, e := range entries {
			rows = append(rows, []string{
				e.FilledAt.Local().Format("2006-01-02 15:04"),
				e.Vehicle,
				fmt.Sprintf("%.2f", e.Liters),
				fmt.Sprintf("%.3f", e.PricePerLiter),
				fmt.Sprintf("%.2f", e.Total()),
				strconv.FormatInt(e.Odometer, 10),
				e.ID,
			})

			liters += e.Liters
			total += e.Total()
		}

		if err := writeTable(out, headerStyle, header, rows); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "\n%d entries, %.2f liters, %.2f total\n", len(entries), liters, total)

		return nil
	},
}

var entryRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a refuelling entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		db, err := database.GetDB()
		if err != nil {
			return err
		}

		if !removeYes {
			if !promptConfirm(cmd, fmt.Sprintf("Remove entry '%s'? [y/N]: ", id)) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		if err := db.RemoveEntry(id); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("entry %s: %w", id, err)
			}

			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", id)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd, entryListCmd, entryRemoveCmd)

	entryAddCmd.Flags().StringVar(&entryVehicle, "vehicle", "", "Vehicle name or plate")
	entryAddCmd.Flags().Float64Var(&entryLiters, "liters", 0, "Fuel added in liters")
	entryAddCmd.Flags().Float64Var(&entryPrice, "price", 0, "Price per liter")
	entryAddCmd.Flags().Int64Var(&entryOdometer, "odometer", 0, "Odometer reading in km")
	entryAddCmd.Flags().StringVar(&entryStation, "station", "", "Station name")
	entryAddCmd.Flags().StringVar(&entryAt, "at", "", "When the refuel happened (RFC3339 or YYYY-MM-DD, default now)")

	entryListCmd.Flags().StringVar(&listVehicle, "vehicle", "", "Only show entries for this vehicle")

	entryRemoveCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip confirmation prompt")
}
