package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/qaeditor/internal/core"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

type outputOptions struct {
	delimiter string
	out       string
	noBOM     bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.delimiter, "delimiter", "comma", "Output delimiter: comma, semicolon or tab")
	cmd.Flags().StringVarP(&o.out, "out", "o", "-", "Output file, - for stdout")
	cmd.Flags().BoolVar(&o.noBOM, "no-bom", false, "Omit the UTF-8 byte order mark")
}

// writer opens the output. The returned close func is safe to defer.
func (o *outputOptions) writer(cmd *cobra.Command) (io.Writer, func() error, error) {
	if o.out == "" || o.out == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(o.out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newConvertCmd() *cobra.Command {
	var (
		in  inputOptions
		out outputOptions
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-encode a file the way the editor exports it",
		Long: `convert decodes a file and writes it back out with the chosen delimiter,
RFC 4180 quoting and CRLF line breaks. Skipped lines are dropped. A file
with no usable rows is an error, as it is for an export from the editor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := qacsv.ParseDelimiter(out.delimiter)
			if err != nil {
				return err
			}

			report, err := in.read(cmd, args[0])
			if err != nil {
				return err
			}
			if len(report.Rows) == 0 {
				return fmt.Errorf("%s: %w", args[0], core.ErrNoData)
			}

			w, closeOut, err := out.writer(cmd)
			if err != nil {
				return err
			}
			if err := qacsv.EncodeTo(w, report.Rows, qacsv.EncodeOptions{Delimiter: d, OmitBOM: out.noBOM}); err != nil {
				_ = closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return err
			}

			slog.Info("converted", "file", args[0], "rows", len(report.Rows), "skipped", len(report.Skipped), "delimiter", d.Name())
			return nil
		},
	}

	in.register(cmd)
	out.register(cmd)
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a header-only file to start an import from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := qacsv.ParseDelimiter(out.delimiter)
			if err != nil {
				return err
			}

			w, closeOut, err := out.writer(cmd)
			if err != nil {
				return err
			}
			doc := qacsv.Template(d)
			if out.noBOM {
				doc = strings.TrimPrefix(doc, qacsv.BOM)
			}
			if _, err := io.WriteString(w, doc); err != nil {
				_ = closeOut()
				return err
			}
			return closeOut()
		},
	}

	out.register(cmd)
	return cmd
}
