package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newUnitCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unit [paths...]",
		Short: "Run the project's tests, with line coverage for the given paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := root.renderer()
			if err != nil {
				return err
			}
			r, logger, err := root.newRunner(cmd)
			if err != nil {
				return err
			}

			results, err := r.Unit(cmd.Context(), args)
			if err != nil {
				return err
			}

			if err := root.write(cmd, logger, func(w io.Writer) error {
				return renderer.Unit(w, results)
			}); err != nil {
				return err
			}

			for _, res := range results {
				if res.Failed() {
					return errFindings
				}
			}
			return nil
		},
	}
}
