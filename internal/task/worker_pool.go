package task

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPool runs a fixed number of goroutines that consume tasks from a
// QueueReader and execute them. Tasks receive a fresh background context so an
// in-flight unit of work always runs to completion, even while the pool is
// shutting down.
type WorkerPool struct {
	queue       QueueReader
	workerCount int
	logger      *slog.Logger
	metrics     *Metrics

	wg sync.WaitGroup
}

// WorkerPoolConfig holds configuration options for the worker pool.
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start.
	// If zero or negative, defaults to 1.
	WorkerCount int
}

// NewWorkerPool creates a worker pool reading from queue. metrics may be nil.
func NewWorkerPool(queue QueueReader, cfg WorkerPoolConfig, logger *slog.Logger, metrics *Metrics) *WorkerPool {
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", cfg.WorkerCount,
			"default_count", 1)
		workerCount = 1
	}

	return &WorkerPool{
		queue:       queue,
		workerCount: workerCount,
		logger:      logger,
		metrics:     metrics,
	}
}

// Start launches the worker goroutines. It returns immediately.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("worker pool started", "worker_count", p.workerCount)
}

// Wait blocks until all workers have exited. Workers exit once the queue is
// closed and fully drained, so the shutdown order is: close the queue, then Wait.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", "worker_id", id)

	for t := range p.queue.Chan() {
		p.process(t, id)
	}

	p.logger.Debug("task channel closed, stopping worker", "worker_id", id)
}

func (p *WorkerPool) process(t Task, workerID int) {
	logger := p.logger.With(
		"task_id", t.ID(),
		"task_type", t.Type(),
		"worker_id", workerID,
	)
	logger.Info("processing task")

	// Deliberately not tied to the pool lifecycle: a scheduled unit of work
	// runs to completion.
	if err := t.Execute(context.Background()); err != nil {
		logger.Error("task execution failed", "error", err)
		p.metrics.observe(t.Type(), "failed")
		return
	}

	logger.Info("task completed")
	p.metrics.observe(t.Type(), "completed")
}
