package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/zix/internal/annotate/annotatetest"
	"github.com/dgallion1/zix/internal/config"
	"github.com/dgallion1/zix/internal/logger"
)

func TestWorker_Completed(t *testing.T) {
	w := NewWorker(newTestAnalyzer(t, annotatetest.NewAnnotator(), nil), logger.Discard())
	job := NewJob("kapitel.md", "", []byte(twoChapters))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusCompleted, snap.Status)
	assert.Equal(t, "done", snap.Phase)
	assert.Equal(t, 2, snap.Progress.TotalSections)
	assert.Equal(t, 2, snap.Progress.SectionsScored)
	assert.Empty(t, snap.Progress.Errors)
	require.NotNil(t, snap.Report)
	assert.NotNil(t, snap.Report.Document)
	assert.Equal(t, snap.Report.ContentHash, snap.ContentHash)
	assert.Nil(t, job.FileData(), "upload should be released after parsing")
}

func TestWorker_Partial(t *testing.T) {
	w := NewWorker(newTestAnalyzer(t, failingOn("Umwelt"), nil), logger.Discard())
	job := NewJob("kapitel.md", "", []byte(twoChapters))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusPartial, snap.Status)
	assert.Equal(t, 2, snap.Progress.SectionsScored)
	// one failed section plus the document
	assert.Len(t, snap.Progress.Errors, 2)
	require.NotNil(t, snap.Report)
	assert.Equal(t, 1, snap.Report.Failed())
}

func TestWorker_AllFailed(t *testing.T) {
	w := NewWorker(newTestAnalyzer(t, failingOn(" "), nil), logger.Discard())
	job := NewJob("kapitel.md", "", []byte(twoChapters))

	w.Process(context.Background(), job)

	assert.Equal(t, StatusFailed, job.Snapshot().Status)
}

func TestWorker_UnsupportedFormat(t *testing.T) {
	w := NewWorker(newTestAnalyzer(t, annotatetest.NewAnnotator(), nil), logger.Discard())
	job := NewJob("tabelle.xlsx", "", []byte("PK"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "parsing", snap.Phase)
	assert.Len(t, snap.Progress.Errors, 1)
}

func TestWorker_EmptyFile(t *testing.T) {
	w := NewWorker(newTestAnalyzer(t, annotatetest.NewAnnotator(), nil), logger.Discard())
	job := NewJob("leer.txt", "", []byte("\n\n  \n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "scoring", snap.Phase)
}

func testPipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		WorkerCount:        2,
		MaxQueueSize:       4,
		MaxConcurrentScore: 2,
		JobTTL:             time.Hour,
	}
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	o := NewOrchestrator(testPipelineConfig(), newTestAnalyzer(t, annotatetest.NewAnnotator(), nil), logger.Discard())
	o.Start(context.Background())
	t.Cleanup(o.Stop)

	jobs := []*Job{
		NewJob("a.md", "", []byte(twoChapters)),
		NewJob("b.txt", "", []byte(annotatetest.SimpleSentence)),
	}
	for _, j := range jobs {
		require.NoError(t, o.Submit(j))
	}

	for _, j := range jobs {
		require.Eventually(t, func() bool {
			return o.GetJob(j.ID).Snapshot().Status.Done()
		}, 5*time.Second, 10*time.Millisecond, "job %s", j.Filename)
		assert.Equal(t, StatusCompleted, o.GetJob(j.ID).Snapshot().Status)
	}
	assert.Nil(t, o.GetJob("missing"))
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.MaxQueueSize = 1
	// not started, so nothing drains the queue
	o := NewOrchestrator(cfg, newTestAnalyzer(t, annotatetest.NewAnnotator(), nil), logger.Discard())
	t.Cleanup(o.Stop)

	require.NoError(t, o.Submit(NewJob("a.txt", "", []byte("Hallo."))))
	assert.Equal(t, 1, o.QueueDepth())

	second := NewJob("b.txt", "", []byte("Hallo."))
	err := o.Submit(second)
	require.True(t, errors.Is(err, ErrQueueFull), "got %v", err)

	snap := o.GetJob(second.ID).Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "queue_full", snap.Phase)
}

func TestCleanupInterval(t *testing.T) {
	assert.Equal(t, time.Minute, cleanupInterval(time.Minute))
	assert.Equal(t, 5*time.Minute, cleanupInterval(time.Hour))
	assert.Equal(t, 5*time.Minute, cleanupInterval(0))
}
