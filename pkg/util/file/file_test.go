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

package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, filepath.Join(dir, "2019", "05", "foo.log"), now)
	touch(t, filepath.Join(dir, "2019", "04", "foo.log"), now.Add(-time.Hour))
	touch(t, filepath.Join(dir, "2019", "04", "bar.log"), now)
	touch(t, filepath.Join(dir, "foo.log"), now)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "nested oldest first",
			pattern: "????/??/foo.log",
			want: []string{
				filepath.Join(dir, "2019", "04", "foo.log"),
				filepath.Join(dir, "2019", "05", "foo.log"),
			},
		},
		{
			name:    "recursive",
			pattern: "**/bar.log",
			want:    []string{filepath.Join(dir, "2019", "04", "bar.log")},
		},
		{
			name:    "no match",
			pattern: "*.gz",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Glob(dir, tt.pattern)
			require.NoError(t, err)

			var paths []string
			for _, info := range got {
				paths = append(paths, info.Path)
				assert.Equal(t, int64(1), info.Size)
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestGlobMissingDir(t *testing.T) {
	got, err := Glob(filepath.Join(t.TempDir(), "missing"), "*")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateDirIfNotExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, CreateDirIfNotExist(dir))
	require.NoError(t, CreateDirIfNotExist(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
