package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/reviewkit/lint"
)

func newLintCmd(root *rootOptions) *cobra.Command {
	var failOn string

	cmd := &cobra.Command{
		Use:   "lint <paths...>",
		Short: "Run the configured linters over the given paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := lint.ResolveSeverity(failOn)
			if err != nil {
				return fmt.Errorf("--fail-on: %w", err)
			}
			renderer, err := root.renderer()
			if err != nil {
				return err
			}
			r, logger, err := root.newRunner(cmd)
			if err != nil {
				return err
			}

			msgs, err := r.Lint(cmd.Context(), args)
			if err != nil {
				return err
			}

			if err := root.write(cmd, logger, func(w io.Writer) error {
				return renderer.Lint(w, msgs)
			}); err != nil {
				return err
			}

			for _, m := range msgs {
				if m.Severity.AtLeast(threshold) {
					return errFindings
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&failOn, "fail-on", string(lint.SeverityError), "exit non-zero when a message is at least this severe")
	return cmd
}
