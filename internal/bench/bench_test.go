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

package bench

import (
	"context"
	"testing"
)

func TestRunConservation(t *testing.T) {
	report, err := Run(context.Background(), Options{
		Consumers: 2,
		Capacity:  64,
		Count:     5000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if report.Count != 5000 {
		t.Fatalf("report.Count = %d, want 5000", report.Count)
	}
	if report.FrontRead != 0 {
		t.Fatalf("report.FrontRead = %d, want 0", report.FrontRead)
	}
	if report.BackRead != 5000 {
		t.Fatalf("report.BackRead = %d, want 5000", report.BackRead)
	}
	if report.Throughput <= 0 {
		t.Fatal("expected positive throughput")
	}
}

func TestRunWithFrontReads(t *testing.T) {
	report, err := Run(context.Background(), Options{
		Consumers:      3,
		Capacity:       32,
		Count:          3000,
		FrontReadEvery: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if report.FrontRead+report.BackRead != 3000 {
		t.Fatalf("front %d + back %d != 3000", report.FrontRead, report.BackRead)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Options{Count: 1 << 20, Consumers: 2}); err == nil {
		t.Fatal("expected error from canceled context")
	}
}
