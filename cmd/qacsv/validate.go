package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

type validateResult struct {
	File         string `json:"file"`
	Rows         int    `json:"rows"`
	Skipped      int    `json:"skipped"`
	SkippedLines []int  `json:"skippedLines"`
}

func newValidateCmd() *cobra.Command {
	var (
		in      inputOptions
		asJSON  bool
		noSkips bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a file imports cleanly",
		Long: `validate decodes a file and reports how many rows it yields and which
data lines would be skipped. A header missing any required column is an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := in.read(cmd, args[0])
			if err != nil {
				return err
			}

			res := validateResult{
				File:         args[0],
				Rows:         len(report.Rows),
				Skipped:      len(report.Skipped),
				SkippedLines: report.Skipped,
			}
			if res.SkippedLines == nil {
				res.SkippedLines = []int{}
			}
			slog.Debug("validated", "file", res.File, "rows", res.Rows, "skipped", res.Skipped)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "%s: %d rows, %d skipped\n", res.File, res.Rows, res.Skipped)
				for _, line := range res.SkippedLines {
					fmt.Fprintf(out, "  skipped data line %d\n", line)
				}
			}

			if noSkips && res.Skipped > 0 {
				return fmt.Errorf("%d line(s) skipped", res.Skipped)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&noSkips, "no-skips", false, "Fail when any line is skipped")
	return cmd
}
