// Package worker runs queued game jobs on a pool of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/wordlebench/internal/domain/model"
	"github.com/okian/wordlebench/pkg/logger"
	"github.com/okian/wordlebench/pkg/metrics"
)

// Default worker configuration constants.
const (
	poolShutdownTimeout = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = model.Job

// Player plays one game for a job.
type Player interface {
	Play(j Job) model.Outcome
}

// Collector stores the outcome of a job. It must be safe for concurrent use.
type Collector interface {
	Collect(j Job, out model.Outcome) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs until the queue is drained.
type Worker interface {
	// Run processes jobs until the queue closes or ctx is canceled.
	Run(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	player    Player
	collector Collector
	name      string
	processed atomic.Int64

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, player Player, collector Collector, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		player:    player,
		collector: collector,
		name:      "worker",
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop. It returns nil once the queue is drained and
// ctx.Err() if it was canceled first.
func (w *InMemoryWorker) Run(ctx context.Context) error {
	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j, ok := <-jobs:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return nil
			}
			if err := w.process(ctx, j); err != nil {
				return err
			}
		}
	}
}

// Processed returns the number of jobs this worker completed.
func (w *InMemoryWorker) Processed() int64 {
	return w.processed.Load()
}

func (w *InMemoryWorker) process(ctx context.Context, j Job) error {
	out := w.player.Play(j)
	if err := w.collector.Collect(j, out); err != nil {
		w.logger.Error(ctx, "collect failed",
			logger.Int("slot", j.Slot),
			logger.String("word", string(j.Word)),
			logger.Error(err),
		)
		return fmt.Errorf("%s: collect slot %d: %w", w.name, j.Slot, err)
	}
	w.processed.Add(1)
	metrics.RecordJobProcessed()
	return nil
}

// Pool manages multiple workers under one errgroup: the first worker error
// cancels the rest.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	group   *errgroup.Group
	done    chan struct{}
	err     error

	logger logger.Logger
}

// NewPool creates a new worker pool. A workerCount below one means one
// worker per CPU.
func NewPool(workerCount int, queue Queue, player Player, collector Collector, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(queue, player, collector, wopts...)
	}

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool. The returned context is canceled
// as soon as any worker fails; producers should enqueue with it so they
// stop waiting on a queue nobody drains.
func (p *Pool) Start(ctx context.Context) context.Context {
	g, gctx := errgroup.WithContext(ctx)
	p.group = g
	p.done = make(chan struct{})

	metrics.UpdateWorkerActive(len(p.workers))
	for _, w := range p.workers {
		g.Go(func() error { return w.Run(gctx) })
	}

	go func() {
		p.err = g.Wait()
		metrics.UpdateWorkerActive(0)
		close(p.done)
	}()
	return gctx
}

// Wait blocks until every worker has returned and reports the first error.
func (p *Pool) Wait() error {
	if p.done == nil {
		return ErrNotStarted
	}
	<-p.done
	return p.err
}

// Processed returns the number of jobs completed across all workers.
func (p *Pool) Processed() int64 {
	var n int64
	for _, w := range p.workers {
		n += w.Processed()
	}
	return n
}

// Shutdown closes the queue, if it can be closed, and waits for the
// workers to drain it or for ctx to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	if p.done == nil {
		return ErrNotStarted
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	select {
	case <-p.done:
		if p.err != nil && !errors.Is(p.err, context.Canceled) {
			return p.err
		}
		return nil
	case <-shutdownCtx.Done():
		p.logger.Warn(ctx, "worker pool shutdown timed out", logger.Int("workers", len(p.workers)))
		return fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
	}
}
