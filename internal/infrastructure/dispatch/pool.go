package dispatch

import (
	"context"
	"sync"
	"time"

	"proassignment/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

const submitWait = time.Second

type task struct {
	ctx    context.Context
	name   string
	effect interfaces.Effect
}

// Pool runs effects on a fixed set of workers fed by a bounded queue. Effects
// get a context detached from the request, so they outlive the response.
type Pool struct {
	tasks   chan task
	workers int
	opts    Options

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

var _ interfaces.IEffectDispatcher = (*Pool)(nil)

func NewPool(workers, queueSize int, opts Options) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = workers * 10
	}
	return &Pool{tasks: make(chan task, queueSize), workers: workers, opts: opts}
}

func (p *Pool) Start() {
	log.Printf("[effects][dispatch] starting pool workers=%d queue=%d", p.workers, cap(p.tasks))
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop drains the queue and waits for running effects.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	log.Printf("[effects][dispatch] pool stopped")
}

func (p *Pool) Dispatch(ctx context.Context, name string, effect interfaces.Effect) {
	t := task{ctx: context.WithoutCancel(ctx), name: name, effect: effect}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		log.WithField("effect", name).Warn("[effects][dispatch] pool stopped, effect dropped")
		return
	}
	select {
	case p.tasks <- t:
		return
	default:
	}
	log.WithField("effect", name).Warn("[effects][dispatch] queue full, waiting")
	select {
	case p.tasks <- t:
	case <-time.After(submitWait):
		log.WithField("effect", name).Error("[effects][dispatch] queue full, effect dropped")
	}
}

// QueueLength reports effects waiting for a worker.
func (p *Pool) QueueLength() int {
	return len(p.tasks)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for t := range p.tasks {
		log.WithFields(log.Fields{"worker_id": id, "effect": t.name}).Debug("[effects][dispatch] running")
		_ = run(t.ctx, t.name, t.effect, p.opts)
	}
}
