/*
Copyright 2023 Loggie Authors

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

package filelogging

import (
	"io"
	"os"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/loggie-io/filelogger/pkg/metric"
	"github.com/loggie-io/filelogger/pkg/util/file"
)

// ErrClosed is returned by writes to a closed RollingWriter.
var ErrClosed = errors.New("rolling writer closed")

// time based modes are checked daily; the archive name only changes at the
// mode's boundary, so monthly and weekly files roll over once per month or week
const timeRolloverTick = 24 * time.Hour

// keepForever stands in for "no retention limit" on time based modes
const keepForever = 100 * 365 * 24 * time.Hour

type backend interface {
	io.WriteCloser
	Rotate() error
}

// RollingWriter writes to the file described by a Setup. Rollover, renaming
// and pruning are done by the backend library selected by the Setup's mode.
type RollingWriter struct {
	setup Setup

	mu      sync.Mutex
	backend backend
	closed  bool
}

func NewRollingWriter(setup *Setup) (*RollingWriter, error) {
	return newRollingWriter(setup, nil)
}

func newRollingWriter(setup *Setup, clock rotatelogs.Clock) (*RollingWriter, error) {
	if setup == nil {
		return nil, errors.New("setup is nil")
	}
	if err := setup.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid file logging setup")
	}
	if err := file.CreateDirIfNotExist(setup.Folder); err != nil {
		return nil, err
	}

	b, err := newBackend(setup, clock)
	if err != nil {
		return nil, err
	}
	return &RollingWriter{
		setup:   *setup,
		backend: b,
	}, nil
}

func newBackend(setup *Setup, clock rotatelogs.Clock) (backend, error) {
	if setup.Mode == FileSizeRollover {
		return &lumberjack.Logger{
			Filename:   setup.FilePath(),
			MaxSize:    setup.FileSizeLimit.Megabytes(), // megabytes
			MaxBackups: maxBackups(setup),               // files
			LocalTime:  !setup.UTC,
			Compress:   setup.Compress,
		}, nil
	}

	if clock == nil {
		clock = rotatelogs.Local
		if setup.UTC {
			clock = rotatelogs.UTC
		}
	}
	retention := rotatelogs.WithMaxAge(keepForever)
	if !setup.keepAll() && setup.LogFilesToKeep > 0 {
		retention = rotatelogs.WithRotationCount(uint(setup.LogFilesToKeep))
	}
	rl, err := rotatelogs.New(
		setup.ArchiveLayout(),
		rotatelogs.WithLinkName(setup.FilePath()),
		rotatelogs.WithRotationTime(timeRolloverTick),
		rotatelogs.WithClock(clock),
		retention,
	)
	if err != nil {
		return nil, errors.WithMessagef(err, "create %s rollover for %s", setup.Mode, setup.FilePath())
	}
	return rl, nil
}

// lumberjack retains every backup when MaxBackups is 0
func maxBackups(setup *Setup) int {
	if setup.keepAll() {
		return 0
	}
	return setup.LogFilesToKeep
}

func (w *RollingWriter) Setup() Setup {
	return w.setup
}

func (w *RollingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrClosed
	}
	n, err := w.backend.Write(p)
	metric.WrittenBytes.Add(float64(n))
	if err != nil {
		metric.WriteErrors.Inc()
	}
	return n, err
}

// Rotate forces a rollover now, independent of the mode's trigger.
func (w *RollingWriter) Rotate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if err := w.backend.Rotate(); err != nil {
		return errors.WithMessagef(err, "rotate %s", w.setup.FilePath())
	}
	metric.Rotations.WithLabelValues(w.setup.Mode.String()).Inc()

	if rl, ok := w.backend.(*rotatelogs.RotateLogs); ok {
		return w.pruneGenerations(rl.CurrentFileName())
	}
	return nil
}

// pruneGenerations applies the retention count to the generation files a
// forced rollover leaves behind (2019-04-24_foo.log.1, ...). rotatelogs only
// prunes names matching its strftime pattern, which never end in a generation.
// The file being written to is always kept.
func (w *RollingWriter) pruneGenerations(current string) error {
	if w.setup.keepAll() || w.setup.LogFilesToKeep <= 0 {
		return nil
	}
	archives, err := Archives(&w.setup)
	if err != nil {
		return err
	}

	excess := len(archives) - w.setup.LogFilesToKeep
	for _, a := range archives {
		if excess <= 0 {
			break
		}
		if a.Path == current {
			continue
		}
		if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
			return errors.WithMessagef(err, "remove archive %s", a.Path)
		}
		excess--
	}
	return nil
}

// CurrentFile is the file the backend is writing to at the moment.
func (w *RollingWriter) CurrentFile() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rl, ok := w.backend.(*rotatelogs.RotateLogs); ok {
		return rl.CurrentFileName()
	}
	return w.setup.FilePath()
}

func (w *RollingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.backend.Close()
}
