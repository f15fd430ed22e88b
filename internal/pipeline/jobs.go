package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a batch scoring job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusScoring   JobStatus = "scoring"
	StatusCompleted JobStatus = "completed"
	StatusPartial   JobStatus = "partial"
	StatusFailed    JobStatus = "failed"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusPartial || s == StatusFailed
}

// Job tracks the scoring of a single uploaded file.
type Job struct {
	mu sync.Mutex

	ID       string
	Status   JobStatus
	Phase    string
	Filename string
	Title    string

	Progress Progress

	ContentHash string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Internal: not serialized.
	fileData []byte
	report   *Report
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalSections  int      `json:"total_sections"`
	SectionsScored int      `json:"sections_scored"`
	Errors         []string `json:"errors"`
}

// NewJob creates a queued job for a file.
func NewJob(filename, title string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// Planned records the total section count.
func (j *Job) Planned(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalSections = n
	j.UpdatedAt = time.Now()
}

// Scored counts a finished section, failed or not.
func (j *Job) Scored(idx int, err error) {
	if err != nil {
		j.AddError(fmt.Sprintf("section %d: %s", idx, err))
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SectionsScored++
	j.UpdatedAt = time.Now()
}

func (j *Job) setReport(r *Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.report = r
	j.ContentHash = r.ContentHash
	j.UpdatedAt = time.Now()
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// releaseFile drops the upload once it is parsed.
func (j *Job) releaseFile() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Progress    Progress  `json:"progress"`
	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Report      *Report   `json:"report,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state. The report is only
// included once the job has finished.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.Progress.Errors))
	copy(errs, j.Progress.Errors)
	snap := JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Progress: Progress{
			TotalSections:  j.Progress.TotalSections,
			SectionsScored: j.Progress.SectionsScored,
			Errors:         errs,
		},
		ContentHash: j.ContentHash,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	if j.Status.Done() {
		snap.Report = j.report
	}
	return snap
}
