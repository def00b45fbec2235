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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loggie-io/filelogger/pkg/metric"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

var april24 = fixedClock(time.Date(2019, time.April, 24, 10, 30, 0, 0, time.UTC))

func newTestWriter(t *testing.T, mode Mode) (*RollingWriter, *Setup) {
	t.Helper()
	s := NewSetup(t.TempDir())
	s.FileName = "foo"
	s.Mode = mode
	w, err := newRollingWriter(s, april24)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = w.Close()
	})
	return w, s
}

func TestRollingWriter_TimeModes(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		archive []string
	}{
		{name: "daily", mode: DailyRollover, archive: []string{"2019-04-24_foo.log"}},
		{name: "monthly", mode: MonthlyRollover, archive: []string{"2019", "04", "foo.log"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s := newTestWriter(t, tt.mode)

			_, err := w.Write([]byte("hello\n"))
			require.NoError(t, err)

			archive := filepath.Join(append([]string{s.Folder}, tt.archive...)...)
			assert.Equal(t, archive, w.CurrentFile())

			content, err := os.ReadFile(archive)
			require.NoError(t, err)
			assert.Equal(t, "hello\n", string(content))
		})
	}
}

func TestRollingWriter_Weekly(t *testing.T) {
	w, s := newTestWriter(t, WeeklyRollover)

	_, err := w.Write([]byte("week\n"))
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(s.Folder, "2019-*_foo.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRollingWriter_Size(t *testing.T) {
	w, s := newTestWriter(t, FileSizeRollover)

	_, err := w.Write([]byte("first\n"))
	require.NoError(t, err)
	assert.Equal(t, s.FilePath(), w.CurrentFile())

	content, err := os.ReadFile(s.FilePath())
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(content))
}

func TestRollingWriter_RotateSize(t *testing.T) {
	w, s := newTestWriter(t, FileSizeRollover)
	before := testutil.ToFloat64(metric.Rotations.WithLabelValues(FileSizeRollover.String()))

	_, err := w.Write([]byte("first\n"))
	require.NoError(t, err)
	require.NoError(t, w.Rotate())
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(s.Folder, "foo*.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	content, err := os.ReadFile(s.FilePath())
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(content))

	after := testutil.ToFloat64(metric.Rotations.WithLabelValues(FileSizeRollover.String()))
	assert.Equal(t, before+1, after)
}

func TestRollingWriter_RotateDaily(t *testing.T) {
	w, _ := newTestWriter(t, DailyRollover)

	_, err := w.Write([]byte("first\n"))
	require.NoError(t, err)
	first := w.CurrentFile()

	require.NoError(t, w.Rotate())
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	assert.NotEqual(t, first, w.CurrentFile())
	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(content))
}

func TestRollingWriter_Closed(t *testing.T) {
	w, _ := newTestWriter(t, FileSizeRollover)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err := w.Write([]byte("late"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, w.Rotate(), ErrClosed)
}

func TestNewRollingWriter_Invalid(t *testing.T) {
	_, err := NewRollingWriter(nil)
	assert.Error(t, err)

	s := NewSetup("")
	_, err = NewRollingWriter(s)
	assert.Error(t, err)
}

func TestNewRollingWriter_CreatesFolder(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "nested", "logs")
	s := NewSetup(folder)
	s.Mode = FileSizeRollover

	w, err := NewRollingWriter(s)
	require.NoError(t, err)
	defer w.Close()

	info, err := os.Stat(folder)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, *s, w.Setup())
}
