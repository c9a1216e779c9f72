// Command footerctl renders citation footers into HTML pages offline and
// lists the built-in citations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/footer-citations/internal/platform/logging"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the command tree. Subcommands write their output
// to cmd.OutOrStdout() and log to cmd.ErrOrStderr().
func newRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "footerctl",
		Short:         "Render and inspect citation footers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")

	newLogger := func(cmd *cobra.Command) *slog.Logger {
		return logging.NewWithWriter(&logging.Config{
			Level:   logLevel,
			Format:  "pretty",
			Service: "footerctl",
			Version: "dev",
		}, cmd.ErrOrStderr())
	}

	root.AddCommand(
		newRenderCommand(newLogger),
		newListCommand(),
	)

	return root
}
