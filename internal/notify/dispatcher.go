package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job describes one push delivery queued for the worker pool.
type Job struct {
	TaskID int64
	Title  string
	Body   string
	Tokens []string
}

// DispatcherConfig holds configuration for the dispatcher.
type DispatcherConfig struct {
	// WorkerCount determines how many concurrent workers deliver jobs.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue.
	QueueSize int

	// SendTimeout bounds a single delivery attempt. If zero, defaults
	// to 10 seconds.
	SendTimeout time.Duration
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		WorkerCount: 2,
		QueueSize:   100,
		SendTimeout: 10 * time.Second,
	}
}

// Dispatcher manages background push delivery. Jobs live only in memory:
// a delivery that fails is logged and dropped, never retried from storage.
type Dispatcher struct {
	notifier   Notifier
	jobChan    chan Job
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     DispatcherConfig
	logger     *slog.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(notifier Notifier, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	if config.SendTimeout == 0 {
		config.SendTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		notifier:   notifier,
		jobChan:    make(chan Job, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "notify_dispatcher"),
	}
}

// Enqueue adds a job to the queue. When the queue is full the job is
// dropped and logged rather than blocking the caller.
func (d *Dispatcher) Enqueue(job Job) {
	select {
	case d.jobChan <- job:
	default:
		d.logger.Warn("notification queue full, dropping job",
			"task_id", job.TaskID,
			"token_count", len(job.Tokens))
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	for i := 0; i < d.config.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop drains nothing and shuts down the workers. Queued jobs that have
// not been picked up are discarded.
func (d *Dispatcher) Stop() {
	d.cancelFunc()
	d.wg.Wait()
}

// worker delivers jobs from the queue until the dispatcher is stopped.
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	d.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Debug("stopping worker", "worker_id", id)
			return
		case job := <-d.jobChan:
			d.deliver(job)
		}
	}
}

func (d *Dispatcher) deliver(job Job) {
	ctx, cancel := context.WithTimeout(d.ctx, d.config.SendTimeout)
	defer cancel()

	result, err := d.notifier.Send(ctx, job.Tokens, job.Title, job.Body)
	if err != nil {
		d.logger.Error("push delivery failed",
			"task_id", job.TaskID,
			"token_count", len(job.Tokens),
			"error", err)
		return
	}

	d.logger.Info("push delivery finished",
		"task_id", job.TaskID,
		"success_count", result.SuccessCount,
		"failure_count", result.FailureCount)
}
