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

package config

import (
	"fmt"
	"sync"

	"github.com/arcentrix/workpipe/internal/dispatcher"
	"github.com/arcentrix/workpipe/pkg/log"
	"github.com/arcentrix/workpipe/pkg/metrics"
	"github.com/fsnotify/fsnotify"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// ProviderSet is the Wire provider set for configuration.
var ProviderSet = wire.NewSet(
	NewConf,
	ProvideLogConf,
	ProvideMetricsConfig,
	ProvideDispatcherConfig,
	ProvideSourceConfig,
)

// SourceConfig drives the built-in synthetic task source.
type SourceConfig struct {
	// Rate is tasks per second; 0 disables the source.
	Rate int `mapstructure:"rate"`
	// TaskType tags generated tasks.
	TaskType string `mapstructure:"taskType"`
}

// SetDefaults applies default values to unset fields.
func (c *SourceConfig) SetDefaults() {
	if c.TaskType == "" {
		c.TaskType = "synthetic"
	}
}

// AppConfig is the root configuration.
type AppConfig struct {
	Log        log.Conf              `mapstructure:"log"`
	Metrics    metrics.MetricsConfig `mapstructure:"metrics"`
	Dispatcher dispatcher.Config     `mapstructure:"dispatcher"`
	Source     SourceConfig          `mapstructure:"source"`
}

var (
	cfg  AppConfig
	mu   sync.RWMutex
	once sync.Once
)

func NewConf(confFile string) *AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
	})
	mu.RLock()
	defer mu.RUnlock()
	return &cfg
}

// GetConfig returns the current configuration snapshot.
func GetConfig() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// LoadConfigFile load config file
func LoadConfigFile(confFile string) (AppConfig, error) {
	config := viper.New()
	config.SetConfigFile(confFile)
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("The configuration changes, re-analyze the configuration file", "file", e.Name)
		if err := config.ReadInConfig(); err != nil {
			log.Errorw("failed to re-read configuration file", "error", err, "file", e.Name)
			return
		}
		mu.Lock()
		if err := config.Unmarshal(&cfg); err != nil {
			mu.Unlock()
			log.Errorw("failed to unmarshal configuration file", "error", err, "file", e.Name)
			return
		}
		applyDefaults(&cfg)
		mu.Unlock()
		log.Infow("configuration reloaded successfully", "file", e.Name)
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}
	applyDefaults(&cfg)
	log.Infow("config file loaded", "path", confFile)

	return cfg, nil
}

func applyDefaults(c *AppConfig) {
	c.Metrics.SetDefaults()
	c.Dispatcher.SetDefaults()
	c.Source.SetDefaults()
}

// ProvideLogConf exposes the log section for injection.
func ProvideLogConf(c *AppConfig) *log.Conf {
	return &c.Log
}

// ProvideMetricsConfig exposes the metrics section for injection.
func ProvideMetricsConfig(c *AppConfig) metrics.MetricsConfig {
	return c.Metrics
}

// ProvideDispatcherConfig exposes the dispatcher section for injection.
func ProvideDispatcherConfig(c *AppConfig) dispatcher.Config {
	return c.Dispatcher
}

// ProvideSourceConfig exposes the source section for injection.
func ProvideSourceConfig(c *AppConfig) SourceConfig {
	return c.Source
}
