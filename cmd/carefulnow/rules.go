package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirkon/carefulnow/internal/rules"
)

func newRulesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List builtin rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newPrinter(format)
			if err != nil {
				return err
			}

			catalog, err := rules.Builtin()
			if err != nil {
				return fmt.Errorf("load builtin rules: %w", err)
			}

			if err := out.rules(a.stdout, catalog.Rules()); err != nil {
				return fmt.Errorf("print rules: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format (text|json)")

	return cmd
}
