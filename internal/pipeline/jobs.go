package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/doclayout/internal/chunker"
	"github.com/dgallion1/doclayout/internal/layout"
)

// JobStatus represents the state of an analysis job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusAnalyzing  JobStatus = "analyzing"
	StatusRendering  JobStatus = "rendering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single document analysis.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *layout.Result
	markdown string
	chunks   []chunker.Chunk
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalPages    int      `json:"total_pages"`
	PagesAnalyzed int      `json:"pages_analyzed"`
	Headings      int      `json:"headings"`
	Errors        []string `json:"errors"`
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

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
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

// SetPages records the analyzed page and heading counts.
func (j *Job) SetPages(total, analyzed, headings int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPages = total
	j.Progress.PagesAnalyzed = analyzed
	j.Progress.Headings = headings
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetOutputs stores the analysis outputs and releases the raw file bytes.
func (j *Job) SetOutputs(result *layout.Result, markdown string, chunks []chunker.Chunk) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = result
	j.markdown = markdown
	j.chunks = chunks
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the analysis result, or nil while the job is running.
func (j *Job) Result() *layout.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// Markdown returns the rendered markdown output.
func (j *Job) Markdown() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.markdown
}

// Chunks returns the structure-aware chunks.
func (j *Job) Chunks() []chunker.Chunk {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.chunks
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	DocID    string    `json:"doc_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		DocID:    j.DocID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Progress: Progress{
			TotalPages:    j.Progress.TotalPages,
			PagesAnalyzed: j.Progress.PagesAnalyzed,
			Headings:      j.Progress.Headings,
			Errors:        errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
