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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loggie-io/filelogger/pkg/util/size"
)

func TestNewSetup(t *testing.T) {
	s := NewSetup("/var/log/app")

	assert.Equal(t, "/var/log/app", s.Folder)
	assert.Equal(t, "lumberjack", s.FileName)
	assert.Equal(t, "log", s.FileExtension)
	assert.Equal(t, DailyRollover, s.Mode)
	assert.Equal(t, size.Of(size.MB), s.FileSizeLimit)
	assert.Equal(t, 7, s.LogFilesToKeep)
	assert.NoError(t, s.Validate())
}

func TestSetup_Paths(t *testing.T) {
	folder := filepath.Join("location", "app")
	tests := []struct {
		name    string
		mode    Mode
		pattern string
		layout  string
	}{
		{
			name:    "daily",
			mode:    DailyRollover,
			pattern: folder + "/%d_foo.txt",
			layout:  filepath.Join(folder, "%Y-%m-%d_foo.txt"),
		},
		{
			name:    "monthly",
			mode:    MonthlyRollover,
			pattern: folder + "/%d{yyyy/MM}/foo.txt",
			layout:  filepath.Join(folder, "%Y", "%m", "foo.txt"),
		},
		{
			name:    "weekly",
			mode:    WeeklyRollover,
			pattern: folder + "/%d{yyyy-ww}_foo.txt",
			layout:  filepath.Join(folder, "%Y-%W_foo.txt"),
		},
		{
			name:    "size",
			mode:    FileSizeRollover,
			pattern: folder + "/%i_foo.txt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSetup(folder + "/")
			s.FileName = "foo"
			s.FileExtension = "txt"
			s.Mode = tt.mode

			assert.Equal(t, filepath.Join(folder, "foo.txt"), s.FilePath())
			assert.Equal(t, tt.pattern, s.FileNamePattern())
			assert.Equal(t, tt.layout, s.ArchiveLayout())
		})
	}
}

func TestSetup_NoExtension(t *testing.T) {
	s := NewSetup("logs")
	s.FileExtension = ""
	assert.Equal(t, filepath.Join("logs", "lumberjack"), s.FilePath())
}

func TestSetup_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Setup)
		errIs  error
	}{
		{name: "ok", modify: func(s *Setup) {}},
		{name: "no folder", modify: func(s *Setup) { s.Folder = "" }},
		{name: "no file name", modify: func(s *Setup) { s.FileName = "" }},
		{name: "unknown mode", modify: func(s *Setup) { s.Mode = Mode(9) }, errIs: ErrUnknownMode},
		{name: "zero size limit", modify: func(s *Setup) {
			s.Mode = FileSizeRollover
			s.FileSizeLimit = size.Of(0)
		}},
		{name: "size limit below a megabyte", modify: func(s *Setup) {
			s.Mode = FileSizeRollover
			s.FileSizeLimit = size.Of(100)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSetup("logs")
			tt.modify(s)
			err := s.Validate()
			if tt.name == "ok" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestSetup_ZeroSizeLimitAllowedForTimeModes(t *testing.T) {
	s := NewSetup("logs")
	s.FileSizeLimit = size.Of(0)
	assert.NoError(t, s.Validate())
}

func TestSetup_KeepAll(t *testing.T) {
	s := NewSetup("logs")
	assert.False(t, s.keepAll())
	assert.Equal(t, 7, maxBackups(s))

	s.LogFilesToKeep = -1
	assert.True(t, s.keepAll())
	assert.Equal(t, 0, maxBackups(s))
	assert.NoError(t, s.Validate())
}
