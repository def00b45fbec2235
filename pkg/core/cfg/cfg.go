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

package cfg

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/loggie-io/filelogger/pkg/core/log"
	"github.com/loggie-io/filelogger/pkg/util/yaml"
)

const (
	TypeFile = "file"
	TypeEnv  = "env"
)

// Validator is checked after the struct tags of a config passed validation.
type Validator interface {
	Validate() error
}

func UnpackFromFileDefaultsAndValidate(path string, config interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Warn("read config error. err: %v", err)
		return err
	}

	return UnpackRawDefaultsAndValidate(content, config)
}

func UnpackFromEnvDefaultsAndValidate(key string, config interface{}) error {
	content, ok := os.LookupEnv(key)
	if !ok {
		return errors.Errorf("env %s is not set", key)
	}
	return UnpackRawDefaultsAndValidate([]byte(content), config)
}

// UnpackTypeDefaultsAndValidate reads config from a file path or, when
// configType is env, from the environment variable named key.
func UnpackTypeDefaultsAndValidate(configType string, key string, config interface{}) error {
	var err error
	switch configType {
	case TypeEnv:
		err = UnpackFromEnvDefaultsAndValidate(key, config)
	default:
		err = UnpackFromFileDefaultsAndValidate(key, config)
	}
	return errors.WithMessagef(err, "unpack %s config %s", configType, key)
}

func UnpackFromFile(path string, config interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Warn("read config error. err: %v", err)
		return err
	}

	return UnpackRaw(content, config)
}

func UnpackRawDefaultsAndValidate(content []byte, config interface{}) error {
	if config == nil {
		return nil
	}
	err := yaml.Unmarshal(content, config)
	if err != nil {
		return err
	}

	if err := setDefault(config); err != nil {
		return err
	}

	if err := validate(config); err != nil {
		return err
	}

	return nil
}

func UnpackRaw(content []byte, config interface{}) error {
	if config == nil {
		return nil
	}

	return yaml.Unmarshal(content, config)
}

func UnpackRawAndDefaults(content []byte, config interface{}) error {
	if config == nil {
		return nil
	}

	err := yaml.Unmarshal(content, config)
	if err != nil {
		return err
	}

	return setDefault(config)
}

// Pack renders config as yaml after applying its defaults.
func Pack(config interface{}) ([]byte, error) {
	if config == nil {
		return nil, nil
	}

	if err := setDefault(config); err != nil {
		return nil, err
	}
	return yaml.Marshal(config)
}

func setDefault(config interface{}) error {
	return defaults.Set(config)
}

func validate(config interface{}) error {
	if config == nil {
		return nil
	}

	validate := validator.New()
	err := validate.Struct(config)
	if err != nil {
		return err
	}

	if cfg, ok := config.(Validator); ok {
		return cfg.Validate()
	}
	return nil
}
