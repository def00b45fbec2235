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

package file

import (
	"time"

	"github.com/loggie-io/filelogger/pkg/util/size"
)

type Config struct {
	Buffer BufferConfig `yaml:"buffer,omitempty"`
}

// BufferConfig batches lines in memory before they reach the rolling file.
type BufferConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// Size is the most data held before a flush. Defaults to 256KB.
	Size size.Size `yaml:"size,omitempty"`
	// FlushInterval is how often buffered data is flushed if there have been
	// no flushes in between.
	FlushInterval time.Duration `yaml:"flushInterval,omitempty" default:"30s" validate:"gte=0"`
}

func (c *BufferConfig) SetDefaults() {
	if c.Size.Bytes == 0 {
		c.Size = size.Of(_defaultBufferSize)
	}
}
