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

package pattern

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPattern(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults",
			args: []string{"-folder", "location"},
			want: []string{
				"mode:            daily",
				"file:            " + filepath.Join("location", "lumberjack.log"),
				"pattern:         location/%d_lumberjack.log",
				"archive layout:  " + filepath.Join("location", "%Y-%m-%d_lumberjack.log"),
				"files to keep:   7",
			},
		},
		{
			name: "monthly",
			args: []string{"-folder", "location", "-fileName", "foo", "-fileExtension", "txt", "-mode", "MONTHLY_ROLLOVER"},
			want: []string{
				"mode:            monthly",
				"pattern:         location/%d{yyyy/MM}/foo.txt",
				"archive layout:  " + filepath.Join("location", "%Y/%m/foo.txt"),
			},
		},
		{
			name: "size",
			args: []string{"-folder", "location", "-mode", "size", "-fileSizeLimit", "10MB", "-logFilesToKeep", "-1"},
			want: []string{
				"mode:            size",
				"pattern:         location/%i_lumberjack.log",
				"size limit:      10MB",
				"files to keep:   -1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, RunPattern(tt.args, &out))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestRunPatternInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown mode", args: []string{"-mode", "hourly"}},
		{name: "empty folder", args: []string{"-folder", ""}},
		{name: "unknown flag", args: []string{"-foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, RunPattern(tt.args, &out))
		})
	}
}
