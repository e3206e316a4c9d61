package main

import (
	"os"

	"github.com/spf13/cobra"

	"instagrowth/pkg/analytics"
	"instagrowth/pkg/ui"
)

var exportOutput string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export growth history as CSV",
	Long: `Export the growth history as CSV, one row per tick, oldest first.

Columns: Date, Time, Followers Added, Total Followers, Growth Speed.
Without -o the CSV is written to stdout.`,
	Run: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write CSV to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	history := a.store.GrowthData().History

	if exportOutput == "" {
		if err := analytics.ExportCSV(os.Stdout, history); err != nil {
			fail(err)
		}
		return
	}

	if err := analytics.ExportCSVFile(exportOutput, history); err != nil {
		fail(err)
	}
	ui.PrintSuccess("Exported " + exportOutput)
}
