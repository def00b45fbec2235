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

package main

import (
	"flag"
	"net/http"
	"os"
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/loggie-io/filelogger/cmd/subcmd"
	"github.com/loggie-io/filelogger/pkg/core/cfg"
	"github.com/loggie-io/filelogger/pkg/core/log"
	"github.com/loggie-io/filelogger/pkg/core/reloader"
	"github.com/loggie-io/filelogger/pkg/core/signals"
	"github.com/loggie-io/filelogger/pkg/core/sysconfig"
	"github.com/loggie-io/filelogger/pkg/filelogging"
	"github.com/loggie-io/filelogger/pkg/sink/file"
)

var (
	globalConfigFile string
	configType       string
)

func init() {
	flag.StringVar(&globalConfigFile, "config.system", "filelogger.yml", "global config file, or the env key when config.from=env")
	flag.StringVar(&configType, "config.from", cfg.TypeFile, "read the global config from file or env")
}

func main() {
	if err := subcmd.SwitchSubCommand(); err != nil {
		if err != subcmd.ErrExit {
			log.Fatal("run sub command error: %v", err)
		}
		return
	}

	flag.Parse()
	log.InitDefaultLogger()
	defer log.Close()

	// set up signals so we handle the first shutdown signal gracefully
	stopCh := signals.SetupSignalHandler()
	rotateCh := signals.SetupRotateHandler()

	// Automatically set GOMAXPROCS to match Linux container CPU quota
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debug)); err != nil {
		log.Fatal("set maxprocs error: %v", err)
	}
	log.Debug("real GOMAXPROCS %d", runtime.GOMAXPROCS(-1))

	syscfg := sysconfig.Config{}
	if err := cfg.UnpackTypeDefaultsAndValidate(configType, globalConfigFile, &syscfg); err != nil {
		log.Fatal("unpack global config file error: %+v", err)
	}
	fl := syscfg.FileLogger

	sink, err := file.NewSink(&fl.File, syscfg.SinkConfig())
	if err != nil {
		log.Fatal("start file sink error: %+v", err)
	}

	if fl.Reload.Enabled {
		if configType == cfg.TypeFile {
			fl.Reload.ConfigPath = globalConfigFile
			rld := reloader.NewReloader(&fl.Reload, fl.File, loadFileSetup, sink.Reload)
			go rld.Run(stopCh)
		} else {
			log.Warn("reload is only supported for config.from=%s", cfg.TypeFile)
		}
	}

	if fl.Http.Enabled {
		go func() {
			if err := http.ListenAndServe(fl.Http.Addr(), nil); err != nil {
				log.Fatal("http listen and serve err: %v", err)
			}
		}()
	}

	log.Info("started filelogger, pattern: %s", fl.File.FileNamePattern())
	if err := pipe(os.Stdin, sink, stopCh, rotateCh); err != nil {
		log.Error("read stdin error: %v", err)
	}

	if err := sink.Stop(); err != nil {
		log.Error("stop file sink error: %v", err)
	}
	log.Info("shutting down filelogger")
}

func loadFileSetup() (*filelogging.Setup, error) {
	c, err := sysconfig.Load(globalConfigFile)
	if err != nil {
		return nil, err
	}
	return &c.FileLogger.File, nil
}
