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
	"bufio"
	"io"
	"sync"
	"time"
)

const (
	// _defaultBufferSize specifies the default size used by Writer.
	_defaultBufferSize = 256 * 1024 // 256 kB

	// _defaultFlushInterval specifies the default flush interval for
	// Writer.
	_defaultFlushInterval = 30 * time.Second
)

// Writer buffers writes to W. Data is flushed when a write doesn't fit, when
// Sync is called, periodically, and on Stop.
type Writer struct {
	W io.Writer

	// Size specifies the maximum amount of data the writer will buffered
	// before flushing.
	//
	// Defaults to 256 kB if unspecified.
	Size int

	// AutoFlushDisabled whether to disable automatic flush
	AutoFlushDisabled bool
	// FlushInterval specifies how often the writer should flush data if
	// there have been no writes.
	//
	// Defaults to 30 seconds if unspecified.
	FlushInterval time.Duration

	mu          sync.Mutex
	initialized bool
	stopped     bool
	writer      *bufio.Writer
	ticker      *time.Ticker
	stop        chan struct{} // closed when flushLoop should stop
	done        chan struct{} // closed when flushLoop has stopped
}

func NewWriter(w io.Writer, config *BufferConfig) *Writer {
	return &Writer{
		W:             w,
		Size:          int(config.Size.Bytes),
		FlushInterval: config.FlushInterval,
	}
}

func (w *Writer) initialize() {
	size := w.Size
	if size <= 0 {
		size = _defaultBufferSize
	}

	w.writer = bufio.NewWriterSize(w.W, size)
	w.initialized = true

	if !w.AutoFlushDisabled {
		flushInterval := w.FlushInterval
		if flushInterval <= 0 {
			flushInterval = _defaultFlushInterval
		}
		w.ticker = time.NewTicker(flushInterval)
		w.stop = make(chan struct{})
		w.done = make(chan struct{})
		go w.flushLoop()
	}
}

// Write buffers bs. Writes after Stop are dropped.
func (w *Writer) Write(bs []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return 0, nil
	}

	if !w.initialized {
		w.initialize()
	}

	// flush first so a line is never split across two flushes, unless the
	// buffer is empty and bufio will pass a large write straight through
	if len(bs) > w.writer.Available() && w.writer.Buffered() > 0 {
		if err := w.writer.Flush(); err != nil {
			return 0, err
		}
	}

	return w.writer.Write(bs)
}

// Sync flushes buffered data to W.
func (w *Writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.initialized {
		return w.writer.Flush()
	}

	return nil
}

func (w *Writer) flushLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.ticker.C:
			// bufio keeps the error, Stop reports it
			_ = w.Sync()
		case <-w.stop:
			return
		}
	}
}

// Stop stops the flush loop and flushes remaining data. It does not close W.
func (w *Writer) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	initialized := w.initialized
	w.mu.Unlock()

	if !initialized {
		return nil
	}

	// flushLoop takes mu in Sync, so wait for it without holding the lock
	if !w.AutoFlushDisabled {
		w.ticker.Stop()
		close(w.stop)
		<-w.done
	}

	return w.Sync()
}
