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

// Package source feeds the dispatcher with synthetic tasks at a fixed
// rate. It exists so a deployed instance has load without an external
// producer attached.
package source

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arcentrix/workpipe/internal/config"
	"github.com/arcentrix/workpipe/internal/dispatcher"
	"github.com/arcentrix/workpipe/pkg/log"
	"github.com/google/wire"
)

// ProviderSet is the Wire provider set for the task source.
var ProviderSet = wire.NewSet(New)

// Payload is the synthetic task body.
type Payload struct {
	Seq uint64 `json:"seq"`
	At  int64  `json:"at"`
}

// Source submits synthetic tasks on a ticker.
type Source struct {
	cfg  config.SourceConfig
	d    *dispatcher.Dispatcher
	stop chan struct{}
	wg   sync.WaitGroup
	seq  atomic.Uint64
	logg *log.Logger
}

// New creates a source bound to the dispatcher.
func New(cfg config.SourceConfig, d *dispatcher.Dispatcher) *Source {
	return &Source{
		cfg:  cfg,
		d:    d,
		stop: make(chan struct{}),
	}
}

// Start launches the generator goroutine. No-op when Rate is 0.
func (s *Source) Start(ctx context.Context) {
	s.logg = log.Component("source")
	if s.cfg.Rate <= 0 {
		s.logg.Infow("task source disabled")
		return
	}

	interval := time.Second / time.Duration(s.cfg.Rate)
	if interval <= 0 {
		interval = time.Microsecond
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var dropped uint64
		for {
			select {
			case <-s.stop:
				if dropped > 0 {
					s.logg.Warnw("task source dropped submissions", "dropped", dropped)
				}
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				task, err := dispatcher.NewTask(s.cfg.TaskType, Payload{
					Seq: s.seq.Add(1),
					At:  time.Now().UnixNano(),
				})
				if err != nil {
					s.logg.Errorw("build synthetic task", "error", err)
					continue
				}
				if err := s.d.Submit(task); err != nil {
					if errors.Is(err, dispatcher.ErrClosed) {
						return
					}
					dropped++
				}
			}
		}
	}()

	s.logg.Infow("task source started", "rate", s.cfg.Rate, "taskType", s.cfg.TaskType)
}

// Stop halts the generator and waits for it to exit.
func (s *Source) Stop() {
	close(s.stop)
	s.wg.Wait()
}
