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
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Task is one unit of work moving through the pipe.
type Task struct {
	Id         string
	Type       string
	Payload    []byte
	EnqueuedAt time.Time
}

// NewTask builds a task with a fresh ID and a JSON-encoded payload.
func NewTask(taskType string, payload any) (*Task, error) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal task payload: %w", err)
	}
	return &Task{
		Id:         uuid.NewString(),
		Type:       taskType,
		Payload:    data,
		EnqueuedAt: time.Now(),
	}, nil
}

// Decode unmarshals the task payload into v.
func (t *Task) Decode(v any) error {
	if err := sonic.Unmarshal(t.Payload, v); err != nil {
		return fmt.Errorf("unmarshal task payload: %w", err)
	}
	return nil
}

// Handler processes delivered tasks.
type Handler interface {
	Handle(ctx context.Context, task *Task) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, task *Task) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, task *Task) error {
	return f(ctx, task)
}
