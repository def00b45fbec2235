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

package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Namespace = "filelogger"
	ModeKey   = "mode"
)

var (
	WrittenLines = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "written_lines_total",
		Help:      "Lines handed to the file sink.",
	})
	WrittenBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "written_bytes_total",
		Help:      "Bytes written to rolling log files.",
	})
	WriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "write_errors_total",
		Help:      "Failed writes to rolling log files.",
	})
	Rotations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rotations_total",
		Help:      "Forced rollovers, by rollover mode.",
	}, []string{ModeKey})
)

func init() {
	http.Handle("/metrics", HandlePromMetrics())
	prometheus.MustRegister(WrittenLines, WrittenBytes, WriteErrors, Rotations)
}

// HandlePromMetrics export prometheus metrics
func HandlePromMetrics() http.Handler {
	return promhttp.Handler()
}
