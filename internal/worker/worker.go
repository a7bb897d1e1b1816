package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akolanti/PaperChat/internal/metrics"
	"github.com/akolanti/PaperChat/pkg/logger_i"
)

var ErrPoolStopped = errors.New("worker pool stopped")

// Pool runs tasks one at a time per key. Different keys run in parallel,
// each on its own worker that retires after idleTimeout without work.
type Pool struct {
	mu          sync.Mutex
	workers     map[string]*keyWorker
	stopChannel chan struct{}
	waitGroup   sync.WaitGroup
	stopped     bool
	idleTimeout time.Duration
	logger      *logger_i.Logger
}

type keyWorker struct {
	key   string
	tasks chan task
	// guarded by Pool.mu; a worker only retires when nothing is queued for it
	pending int
}

type task struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

func NewPool(idleTimeout time.Duration) *Pool {
	logger := logger_i.NewLogger("WorkerPool")
	logger.Info("Initializing worker pool", "idleTimeout", idleTimeout)
	return &Pool{
		workers:     make(map[string]*keyWorker),
		stopChannel: make(chan struct{}),
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// Do queues fn behind earlier tasks for the same key and waits for it to finish.
// Once fn is handed to a worker it always runs to completion.
func (p *Pool) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrPoolStopped
	}
	w := p.workers[key]
	if w == nil {
		w = p.createWorker(key)
	}
	w.pending++
	p.mu.Unlock()

	metrics.IncrementTurnsInQueue()
	t := task{ctx: ctx, fn: fn, done: make(chan error, 1)}
	select {
	case w.tasks <- t:
	case <-ctx.Done():
		p.abandon(w)
		return ctx.Err()
	case <-p.stopChannel:
		p.abandon(w)
		return ErrPoolStopped
	}
	return <-t.done
}

// Stop lets running tasks finish and waits for every worker to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.stopChannel)
	p.mu.Unlock()

	p.waitGroup.Wait()
	p.logger.Info("Worker pool stopped")
}

func (p *Pool) ActiveWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// must hold p.mu
func (p *Pool) createWorker(key string) *keyWorker {
	w := &keyWorker{key: key, tasks: make(chan task)}
	p.workers[key] = w
	p.waitGroup.Add(1)
	go p.worker(w)
	metrics.IncrementActiveWorkerCount()
	p.logger.Debug("Created new worker", "key", key, "workerCount", len(p.workers))
	return w
}

func (p *Pool) worker(w *keyWorker) {
	for {
		select {
		case t := <-w.tasks:
			metrics.DecrementTurnsInQueue()
			t.done <- p.execute(t)
			p.mu.Lock()
			w.pending--
			p.mu.Unlock()

		case <-p.stopChannel:
			p.removeWorker(w, "Stop worker signal received")
			return

		case <-time.After(p.idleTimeout):
			p.mu.Lock()
			if w.pending > 0 {
				p.mu.Unlock()
				continue
			}
			delete(p.workers, w.key)
			p.mu.Unlock()
			p.removeWorker(w, "Idle worker timeout")
			return
		}
	}
}
