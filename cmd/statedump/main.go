// statedump prints the persisted player session slots.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/state"
	"github.com/llehouerou/ripple/internal/ui/render"
)

const maxValueWidth = 60

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dbPath string
		full   bool
	)
	cmd := &cobra.Command{
		Use:          "statedump",
		Short:        "Print the saved player session",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := dbPath
			if path == "" {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("load configuration: %w", err)
				}
				path, err = state.DefaultPath(cfg.DataDir)
				if err != nil {
					return fmt.Errorf("resolve database path: %w", err)
				}
			}

			mgr, err := state.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer mgr.Close()

			entries, err := mgr.Entries(cmd.Context())
			if err != nil {
				return fmt.Errorf("read entries: %w", err)
			}
			return printEntries(cmd.OutOrStdout(), entries, full, time.Now())
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path to the session database (default: from config)")
	cmd.Flags().BoolVar(&full, "full", false, "print values without truncation")
	return cmd
}

func printEntries(w io.Writer, entries []state.Entry, full bool, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no saved session")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tUPDATED\tSIZE\tVALUE")
	for _, e := range entries {
		value := e.Value
		if !full {
			value = render.Truncate(value, maxValueWidth)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Key,
			humanize.RelTime(e.UpdatedAt, now, "ago", "from now"),
			humanize.Bytes(uint64(len(e.Value))),
			value,
		)
	}
	return tw.Flush()
}
