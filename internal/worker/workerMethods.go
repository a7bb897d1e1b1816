package worker

import (
	"fmt"

	"github.com/akolanti/PaperChat/internal/metrics"
)

func (p *Pool) execute(t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithTrace(t.ctx).Error("Task panicked", "panic", r)
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return t.fn(t.ctx)
}

// abandon undoes the pending count of a task that never reached its worker.
func (p *Pool) abandon(w *keyWorker) {
	p.mu.Lock()
	w.pending--
	p.mu.Unlock()
	metrics.DecrementTurnsInQueue()
}

func (p *Pool) removeWorker(w *keyWorker, reason string) {
	p.waitGroup.Done()
	metrics.DecrementActiveWorkerCount()
	p.logger.Debug("Removed worker", "key", w.key, "reason", reason)
}
