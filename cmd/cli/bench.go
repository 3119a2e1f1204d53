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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcentrix/workpipe/internal/bench"
	"github.com/arcentrix/workpipe/pkg/env"
	"github.com/spf13/cobra"
)

var benchOpts bench.Options

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "push a batch of IDs through the pipe and validate conservation",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := bench.Run(cmd.Context(), benchOpts)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

var soakDuration time.Duration

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "repeat bench runs until the duration elapses or a run fails",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		deadline := time.Now().Add(soakDuration)
		runs := 0
		for time.Now().Before(deadline) {
			if ctx.Err() != nil {
				break
			}
			report, err := bench.Run(ctx, benchOpts)
			if err != nil {
				return fmt.Errorf("run %d: %w", runs+1, err)
			}
			runs++
			fmt.Fprintf(os.Stdout, "run %d: %d items in %s (%.0f items/s, %d stolen)\n",
				runs, report.Count, report.Elapsed.Round(time.Millisecond), report.Throughput, report.FrontRead)
		}
		fmt.Fprintf(os.Stdout, "soak finished: %d clean runs\n", runs)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{benchCmd, soakCmd} {
		cmd.Flags().IntVar(&benchOpts.Consumers, "consumers", env.GetEnvInt("WORKPIPE_BENCH_CONSUMERS", 4), "tail consumer goroutines")
		cmd.Flags().IntVar(&benchOpts.Capacity, "capacity", env.GetEnvInt("WORKPIPE_BENCH_CAPACITY", 512), "pipe capacity (power of 2)")
		cmd.Flags().IntVar(&benchOpts.Count, "count", env.GetEnvInt("WORKPIPE_BENCH_COUNT", 65535), "IDs pushed per run")
		cmd.Flags().IntVar(&benchOpts.FrontReadEvery, "front-read-every", env.GetEnvInt("WORKPIPE_BENCH_FRONT_READ_EVERY", 0), "steal back after every n-th publish (0 disables)")
		cmd.Flags().StringVar(&benchOpts.Wait, "wait", env.GetEnvString("WORKPIPE_BENCH_WAIT", "yield"), "retry back-off: spin, yield or sleep")
	}
	soakCmd.Flags().DurationVar(&soakDuration, "duration", env.GetEnvDuration("WORKPIPE_SOAK_DURATION", time.Minute), "total soak duration")
}

func printReport(r *bench.Report) {
	fmt.Fprintf(os.Stdout, "items:      %d\n", r.Count)
	fmt.Fprintf(os.Stdout, "back-read:  %d\n", r.BackRead)
	fmt.Fprintf(os.Stdout, "front-read: %d\n", r.FrontRead)
	fmt.Fprintf(os.Stdout, "elapsed:    %s\n", r.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(os.Stdout, "throughput: %.0f items/s\n", r.Throughput)
}
