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

package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// StackTag names the caller skip frames above StackTag as "file.go:line pkg.Func".
func StackTag(skip int) string {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}

	var name string
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		name = name[strings.LastIndex(name, "/")+1:]
	}
	return fmt.Sprintf("%s:%d %s", filepath.Base(file), line, name)
}

func formatLine(tag string, message string) string {
	return "[" + tag + "]: " + message
}
