// Command carefulnow audits call sites of Go packages: calls of APIs annotated
// as requiring care and direct calls of the platform logging API.
//
// Usage:
//
//	carefulnow check ./...
//	carefulnow check --format json --tests ./internal/...
//	carefulnow rules
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errFindings is returned by the check command when the audit found anything.
var errFindings = errors.New("findings reported")

const (
	exitFindings = 1
	exitFailure  = 2
)

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if errors.Is(err, errFindings) {
			os.Exit(exitFindings)
		}

		fmt.Fprintf(os.Stderr, "carefulnow: %s\n", err)
		os.Exit(exitFailure)
	}
}

// app is shared by subcommands: output streams and the logger configured by
// global flags.
type app struct {
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger

	logLevel string
	noColor  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		log:    zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "carefulnow",
		Short:         "Audit call sites of annotated and forbidden APIs",
		Long:          `carefulnow reports calls of APIs annotated with com.annotations.CarefulNow and direct calls of the platform logging API`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(a.logLevel, a.stderr)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			a.log = log

			if a.noColor {
				color.NoColor = true
			}

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "logging level (debug|info|warn|error)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newRulesCmd(a))

	return root
}
