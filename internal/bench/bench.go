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

// Package bench runs conservation checks against the pipe: one
// producer, N consumers, every published ID must arrive exactly once
// across tail reads and producer steal-backs.
package bench

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/arcentrix/workpipe/pkg/spmc"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrItemLost is returned when an ID never arrives.
	ErrItemLost = errors.New("bench: item lost")
	// ErrItemDuplicated is returned when an ID arrives more than once.
	ErrItemDuplicated = errors.New("bench: item duplicated")
)

// Options configures one bench run.
type Options struct {
	// Consumers is the tail reader goroutine count.
	Consumers int
	// Capacity is the pipe capacity; must be a power of 2.
	Capacity int
	// Count is the number of IDs pushed through the pipe.
	Count int
	// Wait selects the retry back-off: spin, yield or sleep.
	Wait string
	// FrontReadEvery makes the producer attempt a steal-back after
	// every n-th publish; 0 disables steal-backs.
	FrontReadEvery int
}

// SetDefaults applies default values to unset fields.
func (o *Options) SetDefaults() {
	if o.Consumers <= 0 {
		o.Consumers = 4
	}
	if o.Capacity <= 0 {
		o.Capacity = 512
	}
	if o.Count <= 0 {
		o.Count = 65535
	}
	if o.Wait == "" {
		o.Wait = "yield"
	}
}

// Report summarizes a completed run.
type Report struct {
	Count      int
	BackRead   int
	FrontRead  int
	Elapsed    time.Duration
	Throughput float64
}

// Run pushes opts.Count IDs through a fresh pipe and validates the
// delivered multiset.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts.SetDefaults()

	pipe := spmc.New[uint32](opts.Capacity)
	wait := spmc.NewWaitStrategy(opts.Wait)
	counts := make([]atomic.Uint32, opts.Count)
	var done atomic.Bool
	var frontRead atomic.Uint32

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	for c := 0; c < opts.Consumers; c++ {
		g.Go(func() error {
			for {
				v, ok := pipe.TryReadBack()
				if ok {
					counts[v].Add(1)
					continue
				}
				if done.Load() && pipe.Empty() {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				wait.Wait()
			}
		})
	}

	g.Go(func() error {
		for i := uint32(0); i < uint32(opts.Count); i++ {
			for !pipe.TryWriteFront(i) {
				if err := ctx.Err(); err != nil {
					done.Store(true)
					return err
				}
				wait.Wait()
			}
			if opts.FrontReadEvery > 0 && int(i+1)%opts.FrontReadEvery == 0 {
				if v, ok := pipe.TryReadFront(); ok {
					counts[v].Add(1)
					frontRead.Add(1)
				}
			}
		}
		done.Store(true)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := 0; i < opts.Count; i++ {
		switch n := counts[i].Load(); {
		case n == 0:
			return nil, fmt.Errorf("%w: id %d", ErrItemLost, i)
		case n > 1:
			return nil, fmt.Errorf("%w: id %d arrived %d times", ErrItemDuplicated, i, n)
		}
	}

	elapsed := time.Since(start)
	front := int(frontRead.Load())
	return &Report{
		Count:      opts.Count,
		BackRead:   opts.Count - front,
		FrontRead:  front,
		Elapsed:    elapsed,
		Throughput: float64(opts.Count) / elapsed.Seconds(),
	}, nil
}
