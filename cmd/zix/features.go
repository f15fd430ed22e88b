package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/features"
)

func newFeaturesCmd(opts *options) *cobra.Command {
	var (
		asCSV     bool
		annotated string
	)
	cmd := &cobra.Command{
		Use:   "features [file|-]",
		Short: "Print the feature vector of a text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var vec features.Vector
			if annotated != "" {
				doc, err := annotate.ReadDocument(annotated)
				if err != nil {
					return err
				}
				vec, err = features.NewExtractor(a.Tables).Extract(doc)
				if err != nil {
					return err
				}
			} else {
				name := "-"
				if len(args) == 1 {
					name = args[0]
				}
				text, err := readInput(cmd.InOrStdin(), name)
				if err != nil {
					return err
				}
				if vec, err = a.Scorer.Features(cmd.Context(), text); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asCSV {
				return features.WriteCSV(out, vec)
			}
			for i, v := range vec.Values() {
				fmt.Fprintf(out, "%-20s %g\n", features.Names[i], v)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Print as CSV with a header row")
	cmd.Flags().StringVar(&annotated, "annotated", "", "Read a pre-annotated JSON document instead of text")
	return cmd
}
