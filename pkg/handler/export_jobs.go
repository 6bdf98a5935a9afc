package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/export"
	"go.uber.org/zap"
)

// ExportJobStatus represents the lifecycle of an export request.
type ExportJobStatus string

const (
	ExportJobQueued    ExportJobStatus = "queued"
	ExportJobRunning   ExportJobStatus = "running"
	ExportJobCompleted ExportJobStatus = "completed"
	ExportJobFailed    ExportJobStatus = "failed"
)

// ExportJob keeps track of one export while it renders.
type ExportJob struct {
	ID        string          `json:"job_id"`
	Format    export.Format   `json:"format"`
	Status    ExportJobStatus `json:"status"`
	Filename  string          `json:"filename,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	payload export.Payload
}

// Done reports whether the job reached a final state.
func (j ExportJob) Done() bool {
	return j.Status == ExportJobCompleted || j.Status == ExportJobFailed
}

// Payload returns the export result; only set once completed.
func (j ExportJob) Payload() export.Payload {
	return j.payload
}

// ExportJobManager stores export job states indexed by job ID.
type ExportJobManager struct {
	mu   sync.RWMutex
	jobs map[string]*ExportJob
}

// NewExportJobManager constructs a job manager with no jobs.
func NewExportJobManager() *ExportJobManager {
	return &ExportJobManager{
		jobs: make(map[string]*ExportJob),
	}
}

// Submit registers a queued job and runs fn in the background. The job
// ends completed with fn's payload or failed with its error; there is no
// retry and a failed job never carries a partial payload.
func (m *ExportJobManager) Submit(ctx context.Context, format export.Format, fn func(context.Context) (export.Payload, error)) ExportJob {
	job := m.newJob(format)

	go func() {
		m.setRunning(job.ID)

		payload, err := fn(ctx)
		if err != nil {
			logger.Error("Export job failed",
				zap.String("job_id", job.ID),
				zap.String("format", string(format)),
				zap.Error(err))
			m.failJob(job.ID, err)
			return
		}

		m.completeJob(job.ID, payload)
		logger.Info("Export job completed",
			zap.String("job_id", job.ID),
			zap.String("filename", payload.Filename),
			zap.Int("bytes", len(payload.Data)))
	}()

	return job
}

// GetJob fetches a copy of a job by ID.
func (m *ExportJobManager) GetJob(jobID string) (ExportJob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return ExportJob{}, false
	}
	return *job, true
}

// Wait blocks until the job is done or ctx ends. Used by the CLI and tests.
func (m *ExportJobManager) Wait(ctx context.Context, jobID string) (ExportJob, error) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		job, ok := m.GetJob(jobID)
		if ok && job.Done() {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *ExportJobManager) newJob(format export.Format) ExportJob {
	now := time.Now()
	job := &ExportJob{
		ID:        uuid.New().String(),
		Format:    format,
		Status:    ExportJobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()
	return *job
}

func (m *ExportJobManager) setRunning(jobID string) {
	m.updateJob(jobID, func(job *ExportJob) {
		job.Status = ExportJobRunning
	})
}

func (m *ExportJobManager) completeJob(jobID string, payload export.Payload) {
	m.updateJob(jobID, func(job *ExportJob) {
		job.Status = ExportJobCompleted
		job.Filename = payload.Filename
		job.payload = payload
	})
}

func (m *ExportJobManager) failJob(jobID string, err error) {
	m.updateJob(jobID, func(job *ExportJob) {
		job.Status = ExportJobFailed
		job.Error = err.Error()
	})
}

func (m *ExportJobManager) updateJob(jobID string, update func(job *ExportJob)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return
	}

	update(job)
	job.UpdatedAt = time.Now()
}
