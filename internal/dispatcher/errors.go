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

import "errors"

var (
	// ErrClosed is returned when submitting to a stopped dispatcher.
	ErrClosed = errors.New("dispatcher: closed")
	// ErrQueueFull is returned when the submit buffer is full.
	ErrQueueFull = errors.New("dispatcher: submit buffer full")
	// ErrNotStarted is returned when stopping a dispatcher that never ran.
	ErrNotStarted = errors.New("dispatcher: not started")
	// ErrCapacityNotPow2 is returned for capacities that are not a power of 2.
	ErrCapacityNotPow2 = errors.New("dispatcher: capacity must be a power of 2")
)
