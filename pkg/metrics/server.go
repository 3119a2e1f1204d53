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
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arcentrix/workpipe/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a prometheus registry over HTTP.
type Server struct {
	config   MetricsConfig
	registry *prometheus.Registry
	httpSrv  *http.Server
	logg     *log.Logger
}

// NewServer creates a metrics server with its own registry. The
// registry carries the standard Go and process collectors.
func NewServer(config MetricsConfig) *Server {
	config.SetDefaults()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Server{
		config:   config,
		registry: registry,
	}
}

// GetRegistry returns the server's registry for collector registration.
func (s *Server) GetRegistry() *prometheus.Registry {
	return s.registry
}

// Start begins serving the scrape endpoint. No-op when disabled.
func (s *Server) Start() {
	s.logg = log.Component("metrics")
	if !s.config.Enabled {
		s.logg.Debugw("metrics server disabled")
		return
	}

	mux := http.NewServeMux()
	mux.Handle(s.config.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.httpSrv = &http.Server{
		Addr:              s.config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.logg.Infow("metrics server listening", "addr", s.config.Addr, "path", s.config.Path)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logg.Errorw("metrics server exited", "error", err)
		}
	}()
}

// Stop shuts the scrape endpoint down.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
