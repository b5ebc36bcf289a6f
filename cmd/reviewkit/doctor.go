package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/reviewkit/health"
)

func newDoctorCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured linters and test command can run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, _, err := root.newRunner(cmd)
			if err != nil {
				return err
			}

			checks := r.Doctor()
			out := cmd.OutOrStdout()
			for _, c := range checks {
				fmt.Fprintf(out, "%-10s %-24s %s\n", c.Status.Status, c.Name, c.Status.Message)
			}

			overall := health.Overall(checks)
			fmt.Fprintf(out, "\n%s: %s\n", overall.Status, overall.Message)
			if overall.IsUnhealthy() {
				return errFindings
			}
			return nil
		},
	}
}
