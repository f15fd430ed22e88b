package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/dgallion1/zix/internal/pipeline"
)

func newBatchCmd(opts *options) *cobra.Command {
	var (
		asJSON     bool
		noProgress bool
	)
	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Score several documents section by section",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var progress *uiprogress.Progress
			if !noProgress {
				progress = uiprogress.New()
				progress.Out = cmd.ErrOrStderr()
				progress.Start()
			}

			reports := make([]*pipeline.Report, 0, len(args))
			for _, name := range args {
				if err := cmd.Context().Err(); err != nil {
					break
				}
				data, err := os.ReadFile(name)
				if err != nil {
					reports = append(reports, &pipeline.Report{Filename: name, Error: err.Error()})
					continue
				}
				tree, err := a.Analyzer.Parse(filepath.Base(name), "", data)
				if err != nil {
					reports = append(reports, &pipeline.Report{Filename: name, Error: err.Error()})
					continue
				}
				report, err := a.Analyzer.ScoreTree(cmd.Context(), tree, filepath.Base(name), newFileTracker(progress, name))
				if err != nil {
					report.Error = err.Error()
				}
				reports = append(reports, report)
			}
			if progress != nil {
				progress.Stop()
			}

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
					return err
				}
			} else {
				printSummary(cmd.OutOrStdout(), reports)
			}
			failed := 0
			for _, r := range reports {
				if r.Document == nil {
					failed++
				}
			}
			if failed == len(reports) {
				return fmt.Errorf("no documents scored")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the reports as JSON")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not render progress bars")
	return cmd
}

// fileTracker renders the section progress of one file as a bar.
type fileTracker struct {
	progress *uiprogress.Progress
	name     string
	bar      *uiprogress.Bar
}

func newFileTracker(p *uiprogress.Progress, name string) pipeline.Tracker {
	return &fileTracker{progress: p, name: filepath.Base(name)}
}

func (t *fileTracker) Planned(n int) {
	if t.progress == nil {
		return
	}
	t.bar = t.progress.AddBar(max(n, 1))
	t.bar.AppendCompleted()
	t.bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("%-24.24s", t.name)
	})
	if n == 0 {
		t.bar.Incr()
	}
}

func (t *fileTracker) Scored(int, error) {
	if t.bar != nil {
		t.bar.Incr()
	}
}

func printSummary(w io.Writer, reports []*pipeline.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tZIX\tCEFR\tSECTIONS\tFAILED")
	for _, r := range reports {
		if r.Document == nil {
			fmt.Fprintf(tw, "%s\t-\t-\t%d\t%d\t%s\n", r.Filename, len(r.Sections), r.Failed(), r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%d\t%d\n", r.Filename, r.Document.ZIX, r.Document.Level, len(r.Sections), r.Failed())
	}
	tw.Flush()
}
