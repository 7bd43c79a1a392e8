/**
 * Job Pool for the NID extraction worker
 *
 * Fans card jobs out to a fixed set of worker goroutines that share one
 * processor (and therefore one result cache per side). Each job runs under
 * its own processing timeout.
 */

package queue

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/adverant/nexus/nid-worker/internal/errors"
	"github.com/adverant/nexus/nid-worker/internal/logging"
	"github.com/adverant/nexus/nid-worker/internal/processor"
)

// Job statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Job is one front/back pair to process.
type Job struct {
	ID    string
	Front processor.Image
	Back  processor.Image
}

// Result is the outcome of one Job.
type Result struct {
	JobID      string                 `json:"job_id" yaml:"job_id"`
	Status     string                 `json:"status" yaml:"status"`
	Extraction *processor.Extraction  `json:"result,omitempty" yaml:"result,omitempty"`
	Error      map[string]interface{} `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs float64                `json:"duration_ms" yaml:"duration_ms"`
}

// PoolConfig holds pool configuration
type PoolConfig struct {
	Concurrency       int
	ProcessingTimeout time.Duration // default: 5 minutes
	Processor         processor.ProcessorInterface
	Logger            *logging.Logger
}

// Pool runs jobs on a fixed number of workers.
type Pool struct {
	processor processor.ProcessorInterface
	config    *PoolConfig
	logger    *logging.Logger
}

type indexedJob struct {
	index int
	job   Job
}

// NewPool creates a new job pool
func NewPool(cfg *PoolConfig) (*Pool, error) {
	if cfg == nil || cfg.Processor == nil {
		return nil, fmt.Errorf("Processor is required")
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	if cfg.ProcessingTimeout <= 0 {
		cfg.ProcessingTimeout = 5 * time.Minute
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger("job-pool")
	}

	return &Pool{
		processor: cfg.Processor,
		config:    cfg,
		logger:    logger,
	}, nil
}

// Run processes jobs and returns one Result per job, in input order.
// Jobs not yet started when ctx is done, and jobs interrupted by its
// cancellation, are reported as cancelled.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i] = Result{JobID: job.ID, Status: StatusCancelled}
	}

	queue := make(chan indexedJob)
	var wg sync.WaitGroup

	workers := p.config.Concurrency
	if workers > len(jobs) {
		workers = len(jobs)
	}

	p.logger.Info("starting job pool", "concurrency", workers, "jobs", len(jobs))

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.worker(ctx, i, queue, results, &wg)
	}

feed:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			p.logger.Warn("job pool interrupted", "remaining", len(jobs)-i)
			break feed
		case queue <- indexedJob{index: i, job: job}:
		}
	}
	close(queue)
	wg.Wait()

	return results
}

// worker is a goroutine that processes jobs until the queue is closed
func (p *Pool) worker(ctx context.Context, id int, queue <-chan indexedJob, results []Result, wg *sync.WaitGroup) {
	defer wg.Done()
	p.logger.Debug("worker started", "worker", id)

	for item := range queue {
		results[item.index] = p.processJob(ctx, item.job)
	}

	p.logger.Debug("worker stopping", "worker", id)
}

// processJob handles one card under the processing timeout
func (p *Pool) processJob(parent context.Context, job Job) Result {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(parent, p.config.ProcessingTimeout)
	defer cancel()

	extraction, err := p.processor.Process(ctx, job.Front, job.Back)
	duration := time.Since(startTime)
	result := Result{
		JobID:      job.ID,
		DurationMs: float64(duration) / float64(time.Millisecond),
	}

	if err != nil {
		switch {
		case stderrors.Is(err, context.Canceled):
			p.logger.Warn("job cancelled", "job_id", job.ID, "duration", duration)
			result.Status = StatusCancelled
		case ctx.Err() == context.DeadlineExceeded:
			p.logger.Error("job timed out", "job_id", job.ID, "duration", duration, "timeout", p.config.ProcessingTimeout)
			if !isTimeout(err) {
				err = errors.NewProcessingTimeoutError(job.ID, p.config.ProcessingTimeout, err)
			}
			result.Status = StatusFailed
		default:
			p.logger.Error("job failed", "job_id", job.ID, "error", err)
			result.Status = StatusFailed
		}
		result.Error = errorMap(err)
		return result
	}

	p.logger.Info("job completed", "job_id", job.ID, "duration", duration)
	result.Status = StatusCompleted
	result.Extraction = extraction
	return result
}

func isTimeout(err error) bool {
	var perr *errors.ProcessingError
	return stderrors.As(err, &perr) && perr.Code == errors.ErrorProcessingTimeout
}

func errorMap(err error) map[string]interface{} {
	var perr *errors.ProcessingError
	if stderrors.As(err, &perr) {
		return perr.ToMap()
	}
	return map[string]interface{}{"message": err.Error()}
}
