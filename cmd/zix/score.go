package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/zix/internal/annotate"
	"github.com/dgallion1/zix/internal/pipeline"
	"github.com/dgallion1/zix/internal/zix"
)

func newScoreCmd(opts *options) *cobra.Command {
	var (
		asJSON    bool
		title     string
		annotated string
	)
	cmd := &cobra.Command{
		Use:   "score [file|-]",
		Short: "Score a text or document",
		Long: `Score prints the ZIX readability score and CEFR level of a text.

Plain text is read from a .txt file or stdin. Other supported documents
(.md, .html, .pdf, .docx, .csv) are parsed and scored as a whole and per
section. With --annotated a pre-annotated JSON document is scored without
contacting the annotation service.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}

			var res *zix.Result
			switch {
			case annotated != "":
				doc, err := annotate.ReadDocument(annotated)
				if err != nil {
					return err
				}
				if res, err = a.Scorer.ScoreDocument(doc); err != nil {
					return err
				}
			case isDocument(name):
				data, err := os.ReadFile(name)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				report, err := a.Analyzer.Analyze(cmd.Context(), filepath.Base(name), title, data)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, report)
				}
				printReport(out, report)
				return nil
			default:
				text, err := readInput(cmd.InOrStdin(), name)
				if err != nil {
					return err
				}
				if res, err = a.Scorer.Score(cmd.Context(), text); err != nil {
					return err
				}
				res.NormalizedText = ""
			}

			if asJSON {
				return writeJSON(out, res)
			}
			printResult(out, res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().StringVar(&title, "title", "", "Document title (defaults to the file name)")
	cmd.Flags().StringVar(&annotated, "annotated", "", "Score a pre-annotated JSON document")
	return cmd
}

func printResult(w io.Writer, res *zix.Result) {
	fmt.Fprintf(w, "ZIX   %.2f\n", res.ZIX)
	fmt.Fprintf(w, "CEFR  %s\n", res.Level)
}

func printReport(w io.Writer, r *pipeline.Report) {
	fmt.Fprintf(w, "%s\n", r.Title)
	if r.Document != nil {
		fmt.Fprintf(w, "  document  ZIX %6.2f  %s\n", r.Document.ZIX, r.Document.Level)
	} else {
		fmt.Fprintf(w, "  document  error: %s\n", r.Error)
	}
	for _, s := range r.Sections {
		label := fmt.Sprintf("#%d", s.Index)
		if len(s.Breadcrumb) > 0 {
			label += " " + s.Breadcrumb[len(s.Breadcrumb)-1]
		}
		if s.Score == nil {
			fmt.Fprintf(w, "  %-8s  error: %s\n", label, s.Error)
			continue
		}
		fmt.Fprintf(w, "  %-8s  ZIX %6.2f  %s\n", label, s.Score.ZIX, s.Score.Level)
	}
}
