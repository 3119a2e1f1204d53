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

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics counts dispatch activity through the pipe.
type PipelineMetrics struct {
	TasksSubmitted prometheus.Counter
	TasksPublished prometheus.Counter
	TasksDelivered prometheus.Counter
	TasksStolen    prometheus.Counter
	HandlerErrors  prometheus.Counter
	FullRetries    prometheus.Counter
	EmptyPolls     prometheus.Counter
}

// NewPipelineMetrics creates and registers dispatch counters.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		TasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workpipe",
			Name:      "tasks_submitted_total",
			Help:      "Tasks accepted by Submit.",
		}),
		TasksPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workpipe",
			Name:      "tasks_published_total",
			Help:      "Tasks published into the pipe.",
		}),
		TasksDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workpipe",
			Name:      "tasks_delivered_total",
			Help:      "Tasks handed to a worker.",
		}),
		TasksStolen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workpipe",
			Name:      "tasks_stolen_total",
			Help:      "Tasks the producer reclaimed from the head.",
		}),
		HandlerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workpipe",
			Name:      "handler_errors_total",
			Help:      "Handler invocations that returned an error.",
		}),
		FullRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workpipe",
			Name:      "full_retries_total",
			Help:      "Publish attempts that found the pipe full.",
		}),
		EmptyPolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "workpipe",
			Name:      "empty_polls_total",
			Help:      "Worker polls that found the pipe empty.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.TasksSubmitted,
			m.TasksPublished,
			m.TasksDelivered,
			m.TasksStolen,
			m.HandlerErrors,
			m.FullRetries,
			m.EmptyPolls,
		)
	}
	return m
}
