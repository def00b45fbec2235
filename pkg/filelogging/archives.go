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
	"strings"

	"github.com/loggie-io/filelogger/pkg/util/file"
)

// Archives lists the files the setup's backend has produced, oldest first.
// For time based modes this includes the file currently written to.
func Archives(setup *Setup) ([]file.Info, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	files, err := file.Glob(setup.Folder, setup.ArchiveGlob())
	if err != nil {
		return nil, err
	}

	archives := files[:0]
	for _, f := range files {
		// rotatelogs holds <file>_lock while it rotates
		if strings.HasSuffix(f.Path, "_lock") {
			continue
		}
		archives = append(archives, f)
	}
	return archives, nil
}

// Archives lists the files produced by the writer's backend, oldest first.
func (w *RollingWriter) Archives() ([]file.Info, error) {
	return Archives(&w.setup)
}
