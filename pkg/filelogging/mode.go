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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Mode selects how the log file rolls over. The set of modes is closed.
type Mode int

const (
	// DailyRollover rolls over at midnight.
	// For pattern `location/%d_foo.log` output goes to `location/foo.log`; at
	// midnight of 24th April 2019 the day's file becomes `location/2019-04-24_foo.log`.
	DailyRollover Mode = iota
	// MonthlyRollover rolls over at the month boundary, archiving April 2019
	// to `location/2019/04/foo.log`.
	MonthlyRollover
	// WeeklyRollover rolls over on the first day of each week. The first day
	// of the week is decided by the backend.
	WeeklyRollover
	// FileSizeRollover rolls over once the file reaches Setup.FileSizeLimit,
	// keeping at most Setup.LogFilesToKeep archives.
	FileSizeRollover
)

var ErrUnknownMode = errors.New("unknown rollover mode")

type modeInfo struct {
	name     string
	constant string
	pattern  string
	// layout is the strftime archive prefix handed to the time based backend
	layout string
}

var modeInfos = [...]modeInfo{
	DailyRollover:    {name: "daily", constant: "DAILY_ROLLOVER", pattern: "%d_", layout: "%Y-%m-%d_"},
	MonthlyRollover:  {name: "monthly", constant: "MONTHLY_ROLLOVER", pattern: "%d{yyyy/MM}/", layout: "%Y/%m/"},
	WeeklyRollover:   {name: "weekly", constant: "WEEKLY_ROLLOVER", pattern: "%d{yyyy-ww}_", layout: "%Y-%W_"},
	FileSizeRollover: {name: "size", constant: "FILE_SIZE_ROLLOVER", pattern: "%i_"},
}

// Modes returns every rollover mode in declaration order.
func Modes() []Mode {
	return []Mode{DailyRollover, MonthlyRollover, WeeklyRollover, FileSizeRollover}
}

// FileNamePattern returns the file name pattern that selects this mode in the
// rolling backend: `%d` is a date token with an optional format, `%i` an index.
func (m Mode) FileNamePattern() string {
	if !m.IsValid() {
		return ""
	}
	return modeInfos[m].pattern
}

func (m Mode) IsValid() bool {
	return m >= DailyRollover && m <= FileSizeRollover
}

func (m Mode) IsTimeBased() bool {
	return m.IsValid() && m != FileSizeRollover
}

func (m Mode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeInfos[m].name
}

func (m Mode) archiveLayout() string {
	if !m.IsValid() {
		return ""
	}
	return modeInfos[m].layout
}

// ParseMode accepts a mode name (daily, monthly, weekly, size) or its upper
// case constant spelling, ignoring case.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes() {
		info := modeInfos[m]
		if strings.EqualFold(s, info.name) || strings.EqualFold(s, info.constant) {
			return m, nil
		}
	}
	return 0, errors.WithMessagef(ErrUnknownMode, "mode %q", s)
}

func (m *Mode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	mode, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m Mode) MarshalYAML() (interface{}, error) {
	if !m.IsValid() {
		return nil, errors.WithMessagef(ErrUnknownMode, "mode %d", int(m))
	}
	return m.String(), nil
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	mode, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
