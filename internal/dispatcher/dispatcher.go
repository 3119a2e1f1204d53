// Copyright 2026 Arcentra Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatcher

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/arcentrix/workpipe/pkg/log"
	"github.com/arcentrix/workpipe/pkg/metrics"
	"github.com/arcentrix/workpipe/pkg/spmc"
	"github.com/google/wire"
)

// ProviderSet is the Wire provider set for the dispatcher.
var ProviderSet = wire.NewSet(New)

// Dispatcher moves tasks from Submit to worker goroutines over a
// lock-free SPMC pipe. One internal producer goroutine owns all pipe
// writes; workers consume from the tail. On Stop the producer steals
// unclaimed work back from the head and returns it to the caller.
type Dispatcher struct {
	cfg     Config
	handler Handler
	pipe    *spmc.Pipe[*Task]
	wait    spmc.WaitStrategy
	pm      *metrics.PipelineMetrics

	submit       chan *Task
	producerDone chan struct{}
	workersWg    sync.WaitGroup
	logg         *log.Logger

	started  atomic.Bool
	closed   atomic.Bool
	draining atomic.Bool

	// written by the producer goroutine only
	unpublished []*Task
}

// New creates a dispatcher. pm may be nil; counters then stay
// unregistered but functional.
func New(cfg Config, handler Handler, pm *metrics.PipelineMetrics) (*Dispatcher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pm == nil {
		pm = metrics.NewPipelineMetrics(nil)
	}
	return &Dispatcher{
		cfg:          cfg,
		handler:      handler,
		pipe:         spmc.New[*Task](cfg.Capacity),
		wait:         spmc.NewWaitStrategy(cfg.Wait),
		pm:           pm,
		submit:       make(chan *Task, cfg.SubmitBuffer),
		producerDone: make(chan struct{}),
	}, nil
}

// Start launches the producer and worker goroutines.
func (d *Dispatcher) Start(ctx context.Context) {
	if !d.started.CompareAndSwap(false, true) {
		return
	}
	d.logg = log.Component("dispatcher")

	go d.produceLoop(ctx)

	for i := 0; i < d.cfg.Workers; i++ {
		d.workersWg.Add(1)
		go d.workLoop(ctx, i)
	}

	d.logg.Infow("dispatcher started",
		"workers", d.cfg.Workers,
		"capacity", d.cfg.Capacity,
		"wait", d.cfg.Wait,
	)
}

// Submit hands a task to the producer. Non-blocking; returns
// ErrQueueFull when the submit buffer is saturated.
func (d *Dispatcher) Submit(task *Task) error {
	if d.closed.Load() {
		return ErrClosed
	}
	select {
	case d.submit <- task:
		d.pm.TasksSubmitted.Inc()
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop drains the dispatcher: buffered submissions are still
// published, then the producer reclaims everything no worker has
// claimed yet and workers exit once the pipe is empty. The reclaimed
// tasks are returned so the caller can persist or requeue them.
func (d *Dispatcher) Stop(ctx context.Context) ([]*Task, error) {
	if !d.started.Load() {
		return nil, ErrNotStarted
	}
	if !d.closed.CompareAndSwap(false, true) {
		return nil, ErrClosed
	}
	close(d.submit)

	select {
	case <-d.producerDone:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Steal-back: pop from the head until consumers own the rest.
	var stolen []*Task
	for {
		task, ok := d.pipe.TryReadFront()
		if !ok {
			break
		}
		d.pm.TasksStolen.Inc()
		stolen = append(stolen, task)
	}
	stolen = append(stolen, d.unpublished...)

	d.draining.Store(true)
	d.workersWg.Wait()

	d.logg.Infow("dispatcher stopped", "reclaimed", len(stolen))
	return stolen, nil
}

// produceLoop is the single pipe writer.
func (d *Dispatcher) produceLoop(ctx context.Context) {
	defer close(d.producerDone)
	for task := range d.submit {
		for !d.pipe.TryWriteFront(task) {
			d.pm.FullRetries.Inc()
			if ctx.Err() != nil {
				// Keep what could not be published so Stop can
				// hand it back.
				d.unpublished = append(d.unpublished, task)
				d.drainSubmit()
				return
			}
			d.wait.Wait()
		}
		d.pm.TasksPublished.Inc()
	}
}

// drainSubmit collects everything still buffered after cancellation.
func (d *Dispatcher) drainSubmit() {
	for task := range d.submit {
		d.unpublished = append(d.unpublished, task)
	}
}

func (d *Dispatcher) workLoop(ctx context.Context, id int) {
	defer d.workersWg.Done()
	for {
		task, ok := d.pipe.TryReadBack()
		if ok {
			d.pm.TasksDelivered.Inc()
			if err := d.handler.Handle(ctx, task); err != nil {
				d.pm.HandlerErrors.Inc()
				d.logg.Errorw("task handler failed",
					"worker", id,
					"taskId", task.Id,
					"taskType", task.Type,
					"error", err,
				)
			}
			continue
		}
		d.pm.EmptyPolls.Inc()
		if d.draining.Load() && d.pipe.Empty() {
			return
		}
		if ctx.Err() != nil && d.pipe.Empty() {
			return
		}
		d.wait.Wait()
	}
}

// Len reports the advisory number of tasks in the pipe.
func (d *Dispatcher) Len() int {
	return d.pipe.Len()
}
