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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewPipelineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPipelineMetrics(reg)

	m.TasksPublished.Inc()
	m.TasksPublished.Inc()
	m.TasksStolen.Inc()

	if got := testutil.ToFloat64(m.TasksPublished); got != 2 {
		t.Errorf("tasks_published_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TasksStolen); got != 1 {
		t.Errorf("tasks_stolen_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.TasksDelivered); got != 0 {
		t.Errorf("tasks_delivered_total = %v, want 0", got)
	}
}

func TestNewPipelineMetricsNilRegistry(t *testing.T) {
	m := NewPipelineMetrics(nil)
	m.HandlerErrors.Inc()
	if got := testutil.ToFloat64(m.HandlerErrors); got != 1 {
		t.Errorf("handler_errors_total = %v, want 1", got)
	}
}

func TestMetricsConfigSetDefaults(t *testing.T) {
	var cfg MetricsConfig
	cfg.SetDefaults()
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.Path != DefaultPath {
		t.Errorf("Path = %q, want %q", cfg.Path, DefaultPath)
	}
}
