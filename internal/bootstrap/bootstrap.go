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

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcentrix/workpipe/internal/config"
	"github.com/arcentrix/workpipe/internal/dispatcher"
	"github.com/arcentrix/workpipe/internal/source"
	"github.com/arcentrix/workpipe/pkg/log"
	"github.com/arcentrix/workpipe/pkg/metrics"
)

type App struct {
	Dispatcher    *dispatcher.Dispatcher
	Source        *source.Source
	MetricsServer *metrics.Server
	Logger        *log.Logger
	AppConf       *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	logger *log.Logger,
	d *dispatcher.Dispatcher,
	src *source.Source,
	metricsServer *metrics.Server,
	appConf *config.AppConfig,
) (*App, func(), error) {
	app := &App{
		Dispatcher:    d,
		Source:        src,
		MetricsServer: metricsServer,
		Logger:        logger,
		AppConf:       appConf,
	}

	cleanup := func() {
		// stop the task source before the dispatcher so nothing new
		// enters the pipe during drain
		if src != nil {
			log.Info("Shutting down task source...")
			src.Stop()
		}

		if d != nil {
			log.Info("Shutting down dispatcher...")
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			reclaimed, err := d.Stop(stopCtx)
			if err != nil {
				log.Errorw("Failed to stop dispatcher", "error", err)
			} else if len(reclaimed) > 0 {
				log.Warnw("Reclaimed unprocessed tasks on shutdown", "count", len(reclaimed))
			}
		}

		if metricsServer != nil {
			log.Info("Shutting down metrics server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Errorw("Failed to stop metrics server", "error", err)
			}
		}
	}

	return app, cleanup, nil
}

// ProvideHandler returns the default task handler, which logs
// delivered tasks at debug level.
func ProvideHandler() dispatcher.Handler {
	return dispatcher.HandlerFunc(func(ctx context.Context, task *dispatcher.Task) error {
		log.Debugw("task handled",
			"taskId", task.Id,
			"taskType", task.Type,
			"queuedFor", time.Since(task.EnqueuedAt).String(),
		)
		return nil
	})
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), *config.AppConfig, error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, nil, err
	}

	appConf := app.AppConf
	if err := log.Init(&appConf.Log); err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return app, cleanup, appConf, nil
}

// Run starts the app and blocks until an exit signal arrives.
func Run(app *App, cleanup func()) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.MetricsServer.Start()
	app.Dispatcher.Start(ctx)
	app.Source.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infow("received shutdown signal", "signal", sig.String())

	cancel()
	cleanup()
}
