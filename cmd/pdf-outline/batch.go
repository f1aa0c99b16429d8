package main

import (
	"fmt"
	"io"
	"time"

	"github.com/a3tai/pdf-outline/internal/batch"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Outline every PDF in --input and write <name>.json files to --output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			p := batch.New(afero.NewOsFs(), a.svc, batch.Config{
				InputDir:  a.cfg.InputDir,
				OutputDir: a.cfg.OutputDir,
				Workers:   a.cfg.Workers,
			}, a.log)

			if watch {
				return p.Watch(cmd.Context())
			}

			// Failed documents already have an error result on disk and are
			// logged, so they do not fail the command. A cancelled run still
			// reports what it got through.
			summary, err := p.Run(cmd.Context())
			if summary != nil {
				printSummary(cmd.OutOrStdout(), summary)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and outline PDFs added to the input directory")
	return cmd
}

func printSummary(w io.Writer, summary *batch.Summary) {
	fmt.Fprintf(w, "Processed %d document(s): %d succeeded, %d failed, %d skipped in %s\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.Skipped, summary.Duration.Round(time.Millisecond))
}
