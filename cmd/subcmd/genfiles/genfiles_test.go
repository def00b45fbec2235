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

package genfiles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestGenLines(t *testing.T) {
	var got []int64
	n := GenLines(context.Background(), 5, rate.NewLimiter(rate.Inf, 1), func(index int64) {
		got = append(got, index)
	})

	assert.Equal(t, int64(5), n)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, got)
}

func TestGenLinesCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	n := GenLines(ctx, -1, rate.NewLimiter(rate.Limit(100), 1), func(int64) {})

	assert.Greater(t, n, int64(0))
	assert.Less(t, n, int64(100))
}
