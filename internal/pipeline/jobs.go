package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/dgallion1/tokest/internal/report"
)

// JobStatus represents the state of an estimation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusEstimating JobStatus = "estimating"
	StatusChunking   JobStatus = "chunking"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Done reports whether the job has finished, successfully or not.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks the estimation of one uploaded document.
type Job struct {
	mu sync.Mutex

	ID       string
	Filename string
	Title    string
	Counter  string

	Status JobStatus
	Phase  string

	Progress Progress

	ContentHash string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	fileData []byte
	result   *report.Report
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	Sections int      `json:"sections"`
	Tokens   int      `json:"tokens"`
	Chunks   int      `json:"chunks"`
	Errors   []string `json:"errors"`
}

// NewJob creates a queued job for data.
func NewJob(filename, title, counter string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:          newJobID(),
		Filename:    filename,
		Title:       title,
		Counter:     counter,
		Status:      StatusQueued,
		Phase:       "queued",
		ContentHash: ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
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

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes finished jobs not updated within the TTL. Jobs still
// queued or running are kept regardless of age.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := job.Status.Done() && now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
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

// Fail records err and marks the job failed during phase.
func (j *Job) Fail(phase string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err.Error())
	j.Progress.Errors = j.errors
	j.Status = StatusFailed
	j.Phase = phase
	j.UpdatedAt = time.Now()
	j.fileData = nil
}

// SetResult stores the finished report and releases the upload bytes.
func (j *Job) SetResult(rep report.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &rep
	j.Progress.Sections = len(rep.Sections)
	j.Progress.Tokens = rep.Tokens
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// SetChunks records how many chunks the document splits into.
func (j *Job) SetChunks(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Chunks = n
	j.UpdatedAt = time.Now()
}

// FileData returns the raw file bytes, or nil once processing has finished.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string         `json:"job_id"`
	Filename    string         `json:"filename"`
	Title       string         `json:"title,omitempty"`
	Counter     string         `json:"counter"`
	Status      JobStatus      `json:"status"`
	Phase       string         `json:"phase"`
	Progress    Progress       `json:"progress"`
	ContentHash string         `json:"content_hash"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Result      *report.Report `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.errors...)
	return JobSnapshot{
		ID:          j.ID,
		Filename:    j.Filename,
		Title:       j.Title,
		Counter:     j.Counter,
		Status:      j.Status,
		Phase:       j.Phase,
		ContentHash: j.ContentHash,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
		Result:      j.result,
		Progress: Progress{
			Sections: j.Progress.Sections,
			Tokens:   j.Progress.Tokens,
			Chunks:   j.Progress.Chunks,
			Errors:   errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
