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
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/loggie-io/filelogger/pkg/filelogging"
)

const SubCommandModes = "modes"

// RunModes prints every rollover mode with its pattern and an example file
// name pattern for location/foo.txt.
func RunModes(out io.Writer) error {
	table := tablewriter.NewWriter(out)
	table.Header("Mode", "Pattern", "Example")

	example := filelogging.NewSetup("location")
	example.FileName = "foo"
	example.FileExtension = "txt"
	for _, m := range filelogging.Modes() {
		example.Mode = m
		if err := table.Append([]string{m.String(), m.FileNamePattern(), example.FileNamePattern()}); err != nil {
			return err
		}
	}
	return table.Render()
}
