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

package main

import (
	"bufio"
	"io"

	"github.com/loggie-io/filelogger/pkg/core/log"
	"github.com/loggie-io/filelogger/pkg/sink/file"
)

const maxLineBytes = 1024 * 1024

// pipe copies lines from r into the sink until r is drained or stopCh is
// closed. A value on rotateCh forces a rollover.
func pipe(r io.Reader, sink *file.Sink, stopCh <-chan struct{}, rotateCh <-chan struct{}) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-stopCh:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-stopCh:
			return nil

		case <-rotateCh:
			if err := sink.Rotate(); err != nil {
				log.Error("rotate %s error: %v", sink, err)
			}

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if err := sink.Consume(line); err != nil {
				log.Error("consume line error: %v", err)
			}
		}
	}
}
