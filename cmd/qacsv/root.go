package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/qaeditor/internal/logging"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

// inputOptions are the decode flags shared by validate and convert.
type inputOptions struct {
	mode      string
	delimiter string
	charset   string
	maxBytes  int64
}

func (o *inputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.mode, "mode", "legacy", "Decoder: legacy or strict")
	cmd.Flags().StringVar(&o.delimiter, "in-delimiter", "comma", "Input delimiter for strict mode: comma, semicolon or tab")
	cmd.Flags().StringVar(&o.charset, "charset", "utf-8", "Input character set")
	cmd.Flags().Int64Var(&o.maxBytes, "max-bytes", qacsv.DefaultMaxBytes, "Reject input larger than this")
}

func (o *inputOptions) decodeOptions() (qacsv.DecodeOptions, error) {
	mode, err := qacsv.ParseMode(o.mode)
	if err != nil {
		return qacsv.DecodeOptions{}, err
	}
	d, err := qacsv.ParseDelimiter(o.delimiter)
	if err != nil {
		return qacsv.DecodeOptions{}, err
	}
	return qacsv.DecodeOptions{Mode: mode, Delimiter: d}, nil
}

// read decodes the file at path ("-" for stdin) into a report.
func (o *inputOptions) read(cmd *cobra.Command, path string) (qacsv.Report, error) {
	opts, err := o.decodeOptions()
	if err != nil {
		return qacsv.Report{}, err
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return qacsv.Report{}, err
		}
		defer f.Close()
		r = f
	}

	text, err := qacsv.ReadText(r, o.charset, o.maxBytes)
	if err != nil {
		return qacsv.Report{}, err
	}
	report, err := qacsv.DecodeReport(text, opts)
	if err != nil {
		return qacsv.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "qacsv",
		Short: "Validate and convert Q/A/intent CSV files",
		Long: `qacsv reads CSV files with ID, Question, Answer and Intent columns
the same way the editor's import does, and writes them the way its export does.

Pass "-" as the file to read standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout may carry converted CSV, so logs go to stderr
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), logLevel, "text"))
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	cmd.AddCommand(newValidateCmd(), newConvertCmd(), newTemplateCmd())
	return cmd
}
