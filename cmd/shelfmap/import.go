package main

import (
	"encoding/json"
	"fmt"

	"github.com/biblioteca/shelfmap/internal/importer"
	"github.com/biblioteca/shelfmap/internal/store/sqlite"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Rebuild the SQLite locations table from the spreadsheet",
		Long: `Reads the spreadsheet and replaces every row of the locations table.
Wide sheets are placed using the row assignment CSV, which is generated
(8 aisles x 2 sides x 6 shelves) when it does not exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			store, err := sqlite.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := importer.Run(cmd.Context(), importer.Options{
				Spreadsheet: cfg.SpreadsheetPath(),
				Assignments: cfg.AssignmentsPath(),
				Logger:      logger,
			}, store)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path")
	return cmd
}
