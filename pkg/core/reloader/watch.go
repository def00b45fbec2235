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

package reloader

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/loggie-io/filelogger/pkg/core/log"
)

// configWatcher signals changes of a single file. The parent directory is
// watched, since editors and config maps replace the file instead of writing it.
type configWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

func newConfigWatcher(path string) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithMessage(err, "create fsnotify watcher")
	}
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, errors.WithMessagef(err, "watch %s", filepath.Dir(path))
	}

	w := &configWatcher{
		path:    path,
		watcher: watcher,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *configWatcher) run() {
	defer close(w.done)
	for {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isConfigEvent(e, w.path) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
				// a reload is already pending
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch config %s error: %v", w.path, err)
		}
	}
}

func (w *configWatcher) stop() {
	w.watcher.Close()
	<-w.done
}

func isConfigEvent(e fsnotify.Event, path string) bool {
	if filepath.Clean(e.Name) != path {
		return false
	}
	return e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
