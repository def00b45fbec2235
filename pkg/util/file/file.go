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
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	xglob "github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// Info is a file found by Glob.
type Info struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Glob returns the regular files under dir matching pattern, oldest first.
// pattern is relative to dir and supports ** for recursive matching.
func Glob(dir string, pattern string) ([]Info, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	matches := make([]Info, 0)
	err := xglob.GlobWalk(os.DirFS(dir), pattern, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		matches = append(matches, Info{
			Path:    filepath.Join(dir, path),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "glob %s in %s", pattern, dir)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].ModTime.Equal(matches[j].ModTime) {
			return matches[i].Path < matches[j].Path
		}
		return matches[i].ModTime.Before(matches[j].ModTime)
	})
	return matches, nil
}

func CreateDirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return errors.WithMessagef(err, "Error creating directory: %s", dir)
		}
	}
	return nil
}
