package jobs

import (
	"fmt"
)

// Job is a scheduled task the manager can start and stop.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates the scheduled jobs of the service.
type JobManager struct {
	jobs    []Job
	started []Job
}

// NewJobManager creates a manager over the given jobs.
func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts the jobs in order. When one fails, the jobs already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops every started job, last started first.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
