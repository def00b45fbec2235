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

package modes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunModes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunModes(&out))

	printed := out.String()
	for _, want := range []string{
		"daily", "%d_", "location/%d_foo.txt",
		"monthly", "%d{yyyy/MM}/", "location/%d{yyyy/MM}/foo.txt",
		"weekly", "%d{yyyy-ww}_", "location/%d{yyyy-ww}_foo.txt",
		"size", "%i_", "location/%i_foo.txt",
	} {
		assert.Contains(t, printed, want)
	}
}
