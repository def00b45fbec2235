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

package sysconfig

import (
	"fmt"

	"github.com/loggie-io/filelogger/pkg/core/cfg"
	"github.com/loggie-io/filelogger/pkg/core/reloader"
	"github.com/loggie-io/filelogger/pkg/filelogging"
	"github.com/loggie-io/filelogger/pkg/sink/file"
)

type Config struct {
	FileLogger FileLogger `yaml:"filelogger"`
}

type FileLogger struct {
	File   filelogging.Setup     `yaml:"file"`
	Buffer file.BufferConfig     `yaml:"buffer"`
	Reload reloader.ReloadConfig `yaml:"reload"`
	Http   Http                  `yaml:"http"`
}

type Http struct {
	Enabled bool   `yaml:"enabled" default:"false"`
	Host    string `yaml:"host" default:"0.0.0.0"`
	Port    int    `yaml:"port" default:"9196" validate:"gte=0,lte=65535"`
}

func (h Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

func (c *Config) Validate() error {
	return c.FileLogger.File.Validate()
}

func (c *Config) SinkConfig() *file.Config {
	return &file.Config{
		Buffer: c.FileLogger.Buffer,
	}
}

// Load reads the system config file, applying defaults and validation.
func Load(path string) (*Config, error) {
	c := &Config{}
	if err := cfg.UnpackFromFileDefaultsAndValidate(path, c); err != nil {
		return nil, err
	}
	return c, nil
}
