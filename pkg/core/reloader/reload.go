/*
Copyright 2021 Loggie Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reloader

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/loggie-io/filelogger/pkg/core/log"
	"github.com/loggie-io/filelogger/pkg/filelogging"
)

type ReloadConfig struct {
	Enabled      bool          `yaml:"enabled"`
	ConfigPath   string        `yaml:"-"`
	ReloadPeriod time.Duration `yaml:"period" default:"10s" validate:"gte=0"`
	// Watch reloads as soon as the config file changes, polling stays as a fallback.
	Watch bool `yaml:"watch"`
}

// LoadFunc reads the latest file setup, usually from ReloadConfig.ConfigPath.
type LoadFunc func() (*filelogging.Setup, error)

// ApplyFunc switches the running writer to a new setup.
type ApplyFunc func(setup *filelogging.Setup) error

type Reloader struct {
	config *ReloadConfig
	load   LoadFunc
	apply  ApplyFunc

	current filelogging.Setup
}

func NewReloader(config *ReloadConfig, current filelogging.Setup, load LoadFunc, apply ApplyFunc) *Reloader {
	r := &Reloader{
		config:  config,
		load:    load,
		apply:   apply,
		current: current,
	}
	r.initHttp()
	return r
}

func (r *Reloader) Run(stopCh <-chan struct{}) {
	log.Info("reloader starting...")
	period := r.config.ReloadPeriod
	if period <= 0 {
		period = 10 * time.Second
	}
	t := time.NewTicker(period)
	defer t.Stop()

	var changes <-chan struct{}
	if r.config.Watch && r.config.ConfigPath != "" {
		w, err := newConfigWatcher(r.config.ConfigPath)
		if err != nil {
			log.Warn("watch config %s failed, fall back to polling every %s: %v", r.config.ConfigPath, period, err)
		} else {
			defer w.stop()
			changes = w.changes
		}
	}

	for {
		select {
		case <-stopCh:
			log.Info("stop config reload")
			return

		case <-t.C:
			r.tryReload()

		case <-changes:
			r.tryReload()
		}
	}
}

func (r *Reloader) tryReload() {
	if _, err := r.reload(); err != nil {
		log.Warn("reload config %s failed, keep the current file setup: %v", r.config.ConfigPath, err)
	}
}

// reload applies the latest setup if it differs from the running one.
func (r *Reloader) reload() (bool, error) {
	setup, err := r.load()
	if err != nil {
		return false, err
	}

	if cmp.Equal(r.current, *setup) {
		return false, nil
	}

	log.Info("filelogger is reloading..")
	if log.IsDebugLevel() {
		log.Debug("file setup diff (-current +latest):\n%s", cmp.Diff(r.current, *setup))
	}

	if err := r.apply(setup); err != nil {
		return false, errors.WithMessage(err, "apply file setup")
	}
	r.current = *setup
	return true, nil
}
