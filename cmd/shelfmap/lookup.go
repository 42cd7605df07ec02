package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/biblioteca/shelfmap/internal/store/sqlite"
	"github.com/biblioteca/shelfmap/pkg/shelfmap"
	"github.com/spf13/cobra"
)

type lookupResult struct {
	Found bool            `json:"found"`
	Query float64         `json:"query"`
	Match *shelfmap.Match `json:"match,omitempty"`
}

func newLookupCmd() *cobra.Command {
	var (
		units  string
		aisle  string
		side   string
		dbPath string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "lookup [dewey]",
		Short: "Find the shelf location of a Dewey number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := shelfmap.ParseQuery(args[0])
			if err != nil {
				return fmt.Errorf("invalid dewey %q: %w", args[0], err)
			}
			result := lookupResult{Query: query}

			if dbPath != "" {
				for _, name := range []string{"est", "pasillo", "lado"} {
					if cmd.Flags().Changed(name) {
						return fmt.Errorf("--%s cannot be combined with --db", name)
					}
				}
				store, err := sqlite.Open(cmd.Context(), dbPath)
				if err != nil {
					return err
				}
				defer store.Close()
				rec, ok, err := store.FindLocation(cmd.Context(), query)
				if err != nil {
					return err
				}
				if ok {
					result.Found = true
					result.Match = &shelfmap.Match{Record: rec}
				}
			} else {
				cache := shelfmap.NewCache(shelfmap.Options{Sources: cacheSources(), Logger: logger})
				if report := cache.Reload(cmd.Context()); report.TableError != "" {
					return fmt.Errorf("load failed: %s", report.TableError)
				}
				m, ok := cache.Find(query, shelfmap.Filters{
					ShelfUnits: shelfmap.ParseShelfUnits(units),
					Aisle:      strings.TrimSpace(aisle),
					Side:       strings.TrimSpace(side),
				})
				if ok {
					result.Found = true
					result.Match = &m
				}
			}

			var out []byte
			if pretty {
				out, err = json.MarshalIndent(result, "", "  ")
			} else {
				out, err = json.Marshal(result)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&units, "est", "", "Comma-separated shelf units to search")
	cmd.Flags().StringVar(&aisle, "pasillo", "", "Aisle to search")
	cmd.Flags().StringVar(&side, "lado", "", "Side to search")
	cmd.Flags().StringVar(&dbPath, "db", "", "Query this SQLite database instead of the spreadsheet (no filters)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
