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

package reloader

import (
	"net/http"
	"os"
	"sync"

	"github.com/loggie-io/filelogger/pkg/core/log"
)

const handleReadConfigPath = "/api/v1/reload/config"

var registerHttp sync.Once

func (r *Reloader) initHttp() {
	registerHttp.Do(func() {
		http.HandleFunc(handleReadConfigPath, r.readConfigHandler)
	})
}

func (r *Reloader) readConfigHandler(writer http.ResponseWriter, request *http.Request) {
	content, err := os.ReadFile(r.config.ConfigPath)
	if err != nil {
		log.Warn("read config error. err: %v", err)
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/yaml")
	writer.WriteHeader(http.StatusOK)
	writer.Write(content)
}
