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

package size

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	KB = 1024
	MB = 1024 * KB
	GB = 1024 * MB
)

var sizeReg = regexp.MustCompile(`^(\d+(\.\d+)?)\s*(?i:(KB|MB|GB|K|M|G|B))?$`)

// Size is a byte count written as a human readable string, e.g. 1MB or 512KB.
type Size struct {
	Bytes int64
}

func Of(bytes int64) Size {
	return Size{Bytes: bytes}
}

// Parse reads a size such as "1.5MB". Units are powers of 1024.
func Parse(sizeStr string) (Size, error) {
	b, err := parseSize(sizeStr)
	if err != nil {
		return Size{}, err
	}
	return Size{Bytes: b}, nil
}

func MustParse(sizeStr string) Size {
	s, err := Parse(sizeStr)
	if err != nil {
		panic(err)
	}
	return s
}

// Megabytes rounds up to whole megabytes, never returning less than 1.
func (s Size) Megabytes() int {
	mb := (s.Bytes + MB - 1) / MB
	if mb < 1 {
		return 1
	}
	return int(mb)
}

// Set implements flag.Value.
func (s *Size) Set(sizeStr string) error {
	b, err := parseSize(sizeStr)
	if err != nil {
		return err
	}
	s.Bytes = b
	return nil
}

func (s *Size) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var sizeStr string
	if err := unmarshal(&sizeStr); err != nil {
		return err
	}

	size, err := parseSize(sizeStr)
	if err != nil {
		return err
	}

	s.Bytes = size
	return nil
}

func (s Size) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s Size) String() string {
	bytes := float64(s.Bytes)

	switch {
	case s.Bytes >= GB:
		return trimFloat(bytes/GB) + "GB"
	case s.Bytes >= MB:
		return trimFloat(bytes/MB) + "MB"
	case s.Bytes >= KB:
		return trimFloat(bytes/KB) + "KB"
	default:
		return strconv.FormatInt(s.Bytes, 10) + "B"
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseSize(sizeStr string) (int64, error) {
	sizeStr = strings.TrimSpace(sizeStr)
	if strings.HasPrefix(sizeStr, "-") {
		return 0, fmt.Errorf("size can't be negative: %s", sizeStr)
	}

	match := sizeReg.FindStringSubmatch(sizeStr)
	if match == nil {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	size, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	switch strings.ToUpper(match[3]) {
	case "KB", "K":
		size *= KB
	case "MB", "M":
		size *= MB
	case "GB", "G":
		size *= GB
	case "", "B":
		// no-op
	}

	return int64(size), nil
}
