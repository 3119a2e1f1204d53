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

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/arcentrix/workpipe/internal/bootstrap"
	"github.com/arcentrix/workpipe/internal/config"
	"github.com/arcentrix/workpipe/internal/dispatcher"
	"github.com/arcentrix/workpipe/internal/source"
	"github.com/arcentrix/workpipe/pkg/log"
	"github.com/arcentrix/workpipe/pkg/metrics"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		// 日志层（依赖 config）
		log.ProviderSet,
		// 指标层（依赖 config）
		metrics.ProviderSet,
		// 分发层（依赖 config, metrics）
		bootstrap.ProvideHandler,
		dispatcher.ProviderSet,
		// 任务源（依赖 config, dispatcher）
		source.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
