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

// Package log is the front door for application logging. Long-lived
// components take a scoped logger from Component; the package-level
// helpers cover bootstrap and shutdown paths where no component
// instance is in hand yet.
package log

import (
	"fmt"

	"github.com/arcentrix/workpipe/pkg/logger"
	"github.com/google/wire"
)

// Conf is the logger configuration.
type Conf = logger.Conf

// Logger is the injectable logger instance.
type Logger = logger.Logger

// ProviderSet is the Wire provider set for logging.
var ProviderSet = wire.NewSet(logger.ProvideLogger)

// Init initializes the global logger.
func Init(conf *Conf) error {
	return logger.Init(conf)
}

// MustInit initializes the global logger and panics on failure.
func MustInit(conf *Conf) {
	logger.MustInit(conf)
}

// Component returns a logger scoped to the named runtime component,
// backed by the global logger.
func Component(name string) *Logger {
	return root().Component(name)
}

func root() *Logger {
	return &Logger{Logger: logger.GetLogger()}
}

// Debug logs a debug message.
func Debug(args ...any) {
	root().Debugw(fmt.Sprint(args...))
}

// Debugw logs a structured debug message.
func Debugw(msg string, keysAndValues ...any) {
	root().Debugw(msg, keysAndValues...)
}

// Info logs an info message.
func Info(args ...any) {
	root().Infow(fmt.Sprint(args...))
}

// Infow logs a structured info message.
func Infow(msg string, keysAndValues ...any) {
	root().Infow(msg, keysAndValues...)
}

// Warn logs a warn message.
func Warn(args ...any) {
	root().Warnw(fmt.Sprint(args...))
}

// Warnw logs a structured warn message.
func Warnw(msg string, keysAndValues ...any) {
	root().Warnw(msg, keysAndValues...)
}

// Error logs an error message.
func Error(args ...any) {
	root().Errorw(fmt.Sprint(args...))
}

// Errorw logs a structured error message.
func Errorw(msg string, keysAndValues ...any) {
	root().Errorw(msg, keysAndValues...)
}
