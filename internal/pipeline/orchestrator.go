package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/zix/internal/config"
)

var ErrQueueFull = errors.New("job queue is full")

// Orchestrator runs batch jobs on a fixed pool of workers.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	analyzer *Analyzer
	log      *slog.Logger
	cfg      config.PipelineConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrchestrator(cfg config.PipelineConfig, analyzer *Analyzer, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		analyzer: analyzer,
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.analyzer, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(cleanupInterval(o.cfg.JobTTL))
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop cancels running jobs and waits for the workers to exit.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.AddError("queue full")
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

func (o *Orchestrator) Analyzer() *Analyzer {
	return o.analyzer
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl > 0 && ttl < 5*time.Minute {
		return ttl
	}
	return 5 * time.Minute
}
