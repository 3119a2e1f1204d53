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

package source

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arcentrix/workpipe/internal/config"
	"github.com/arcentrix/workpipe/internal/dispatcher"
)

func TestSourceFeedsDispatcher(t *testing.T) {
	var handled atomic.Uint64
	handler := dispatcher.HandlerFunc(func(ctx context.Context, task *dispatcher.Task) error {
		var p Payload
		if err := task.Decode(&p); err != nil {
			return err
		}
		handled.Add(1)
		return nil
	})

	d, err := dispatcher.New(dispatcher.Config{Workers: 2, Capacity: 64}, handler, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	d.Start(ctx)

	cfg := config.SourceConfig{Rate: 2000}
	cfg.SetDefaults()
	s := New(cfg, d)
	s.Start(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for handled.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no synthetic task handled before deadline")
		}
		time.Sleep(time.Millisecond)
	}

	s.Stop()
	if _, err := d.Stop(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestSourceDisabled(t *testing.T) {
	d, err := dispatcher.New(dispatcher.Config{Workers: 1, Capacity: 16},
		dispatcher.HandlerFunc(func(context.Context, *dispatcher.Task) error { return nil }), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := New(config.SourceConfig{Rate: 0}, d)
	s.Start(context.Background())
	s.Stop()
}
