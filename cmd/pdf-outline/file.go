package main

import (
	"github.com/a3tai/pdf-outline/internal/render"
	"github.com/spf13/cobra"
)

func fileCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "file <pdf>",
		Short: "Print the outline of a single PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			res, err := a.svc.OutlinePath(args[0])
			if err != nil {
				return err
			}
			return render.Render(cmd.OutOrStdout(), f, res.Result())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json|md|html")
	return cmd
}
