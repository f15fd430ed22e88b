package pipeline

import (
	"context"
	"log/slog"
)

// Worker processes a single document job.
type Worker struct {
	analyzer *Analyzer
	log      *slog.Logger
}

func NewWorker(analyzer *Analyzer, log *slog.Logger) *Worker {
	return &Worker{analyzer: analyzer, log: log}
}

// Process parses and scores the job's file, recording progress on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	tree, err := w.analyzer.Parse(job.Filename, job.Title, job.FileData())
	job.releaseFile()
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Score
	job.SetStatus(StatusScoring, "scoring")
	report, err := w.analyzer.ScoreTree(ctx, tree, job.Filename, job)
	if err != nil {
		log.Warn("nothing to score", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "scoring")
		return
	}
	job.setReport(report)

	failed := report.Failed()
	if report.Document == nil {
		job.AddError("document: " + report.Error)
	}
	log.Info("scoring complete",
		"sections", len(report.Sections),
		"failed_sections", failed,
		"document_scored", report.Document != nil)

	switch {
	case report.Document == nil && failed == len(report.Sections):
		job.SetStatus(StatusFailed, "scoring")
	case report.Document == nil || failed > 0:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
}
