// Command qacsv checks and converts Q/A/intent CSV files offline, using the
// same decoder and encoder as the editor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe prints the error and, for failures the editor also reports, the
// same catalog message and code.
func describe(err error) string {
	out := fmt.Sprintf("error: %v\n", err)
	if core.IsUserFacing(err) {
		out += core.FormatUserError(err) + "\n"
	}
	return out
}
