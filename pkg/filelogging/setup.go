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

	"github.com/creasty/defaults"
	"github.com/pkg/errors"

	"github.com/loggie-io/filelogger/pkg/util/size"
)

const defaultFileSizeLimit = 1 * size.MB

// Setup describes where a rolling log file lives and how it rolls over.
type Setup struct {
	// Folder holds the active file and, for time based modes, its archives.
	Folder        string `yaml:"folder,omitempty" validate:"required"`
	FileName      string `yaml:"fileName,omitempty" default:"lumberjack"`
	FileExtension string `yaml:"fileExtension,omitempty" default:"log"`
	Mode          Mode   `yaml:"mode"`
	// FileSizeLimit only applies to FileSizeRollover.
	FileSizeLimit size.Size `yaml:"fileSizeLimit"`
	// LogFilesToKeep bounds the number of archives, a negative value keeps all of them.
	LogFilesToKeep int `yaml:"logFilesToKeep" default:"7"`
	// UTC formats archive timestamps in UTC instead of local time.
	UTC      bool `yaml:"utc,omitempty"`
	Compress bool `yaml:"compress,omitempty"`
}

func NewSetup(folder string) *Setup {
	s := &Setup{Folder: folder}
	_ = defaults.Set(s)
	return s
}

func (s *Setup) SetDefaults() {
	if s.FileSizeLimit.Bytes == 0 {
		s.FileSizeLimit = size.Of(defaultFileSizeLimit)
	}
}

func (s *Setup) Validate() error {
	if s.Folder == "" {
		return errors.New("folder is required")
	}
	if s.FileName == "" {
		return errors.New("fileName is required")
	}
	if !s.Mode.IsValid() {
		return errors.WithMessagef(ErrUnknownMode, "mode %d", int(s.Mode))
	}
	// lumberjack counts in whole megabytes
	if s.Mode == FileSizeRollover && s.FileSizeLimit.Bytes < size.MB {
		return errors.Errorf("fileSizeLimit %s is below 1MB, the smallest limit %s rollover supports", s.FileSizeLimit, s.Mode)
	}
	return nil
}

// keepAll reports whether archives are never pruned.
func (s *Setup) keepAll() bool {
	return s.LogFilesToKeep < 0
}

func (s *Setup) baseName() string {
	if s.FileExtension == "" {
		return s.FileName
	}
	return s.FileName + "." + s.FileExtension
}

// FilePath is the file that currently receives output.
func (s *Setup) FilePath() string {
	return filepath.Join(s.Folder, s.baseName())
}

// FileNamePattern combines the folder, the mode pattern and the file name,
// e.g. `/var/log/app/%d{yyyy/MM}/lumberjack.log`.
func (s *Setup) FileNamePattern() string {
	return filepath.Clean(s.Folder) + string(filepath.Separator) + s.Mode.FileNamePattern() + s.baseName()
}

// ArchiveLayout is the strftime layout the time based backend names files
// with. It is empty for FileSizeRollover.
func (s *Setup) ArchiveLayout() string {
	if !s.Mode.IsTimeBased() {
		return ""
	}
	return filepath.Join(s.Folder, s.Mode.archiveLayout()+s.baseName())
}

// ArchiveGlob matches, relative to Folder, the files the mode's backend
// produces: dated files for time based modes, lumberjack backups for
// FileSizeRollover. Forced rollovers of time based modes append a generation
// to the dated name, e.g. 2019-04-24_foo.log.1.
func (s *Setup) ArchiveGlob() string {
	switch s.Mode {
	case DailyRollover:
		return "????-??-??_" + s.baseName() + "*"
	case WeeklyRollover:
		return "????-??_" + s.baseName() + "*"
	case MonthlyRollover:
		return "????/??/" + s.baseName() + "*"
	}
	if s.FileExtension == "" {
		return s.FileName + "-*"
	}
	// lumberjack names backups <name>-<timestamp>.<ext>, plus .gz when compressed
	return s.FileName + "-*." + s.FileExtension + "*"
}
