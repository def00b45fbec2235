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
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/loggie-io/filelogger/pkg/core/log"
	"github.com/loggie-io/filelogger/pkg/filelogging"
	"github.com/loggie-io/filelogger/pkg/metric"
)

var (
	LineEnding = []byte("\n")
)

// Sink writes lines to a rolling file. The file setup can be swapped at
// runtime with Reload.
type Sink struct {
	config *Config

	mu      sync.Mutex
	rolling *filelogging.RollingWriter
	buf     *Writer
	out     io.Writer
	stopped bool
}

func NewSink(setup *filelogging.Setup, config *Config) (*Sink, error) {
	if config == nil {
		config = &Config{}
	}
	s := &Sink{
		config: config,
	}
	if err := s.open(setup); err != nil {
		return nil, err
	}

	log.Info("file-sink start, file: %s, mode: %s", setup.FilePath(), setup.Mode)
	return s, nil
}

func (s *Sink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	setup := s.rolling.Setup()
	return fmt.Sprintf("sink/file(%s)", setup.FilePath())
}

// open must be called with mu held or before the sink is shared.
func (s *Sink) open(setup *filelogging.Setup) error {
	w, err := filelogging.NewRollingWriter(setup)
	if err != nil {
		return err
	}

	s.rolling = w
	s.out = w
	s.buf = nil
	if s.config.Buffer.Enabled {
		s.buf = NewWriter(w, &s.config.Buffer)
		s.out = s.buf
	}
	return nil
}

// close flushes and closes the current writers, mu must be held.
func (s *Sink) close() error {
	var err error
	if s.buf != nil {
		err = errors.WithMessage(s.buf.Stop(), "flush buffer")
	}
	if cerr := s.rolling.Close(); cerr != nil && err == nil {
		err = errors.WithMessage(cerr, "close rolling file")
	}
	return err
}

// Consume writes every line followed by a line ending.
func (s *Sink) Consume(lines ...[]byte) error {
	if len(lines) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return filelogging.ErrClosed
	}

	for _, line := range lines {
		if _, err := s.out.Write(line); err != nil {
			setup := s.rolling.Setup()
			return errors.WithMessagef(err, "write to %s", setup.FilePath())
		}
		if _, err := s.out.Write(LineEnding); err != nil {
			setup := s.rolling.Setup()
			return errors.WithMessagef(err, "write to %s", setup.FilePath())
		}
		metric.WrittenLines.Inc()
	}
	return nil
}

// Reload switches to a new setup. The old file is flushed and closed only
// after the new one opened successfully.
func (s *Sink) Reload(setup *filelogging.Setup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return filelogging.ErrClosed
	}

	oldRolling, oldBuf, oldOut := s.rolling, s.buf, s.out
	if err := s.open(setup); err != nil {
		s.rolling, s.buf, s.out = oldRolling, oldBuf, oldOut
		return errors.WithMessage(err, "reload file sink")
	}

	if oldBuf != nil {
		if err := oldBuf.Stop(); err != nil {
			oldSetup := oldRolling.Setup()
			log.Warn("flush buffer of %s failed: %v", oldSetup.FilePath(), err)
		}
	}
	if err := oldRolling.Close(); err != nil {
		oldSetup := oldRolling.Setup()
		log.Warn("close %s failed: %v", oldSetup.FilePath(), err)
	}

	log.Info("file-sink reloaded, file: %s, mode: %s", setup.FilePath(), setup.Mode)
	return nil
}

// Rotate flushes buffered lines and forces a rollover.
func (s *Sink) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return filelogging.ErrClosed
	}
	if s.buf != nil {
		if err := s.buf.Sync(); err != nil {
			return err
		}
	}
	return s.rolling.Rotate()
}

func (s *Sink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil || s.stopped {
		return nil
	}
	return s.buf.Sync()
}

func (s *Sink) Setup() filelogging.Setup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rolling.Setup()
}

func (s *Sink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true
	return s.close()
}
