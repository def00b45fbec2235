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

package archives

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/loggie-io/filelogger/pkg/filelogging"
	"github.com/loggie-io/filelogger/pkg/util/size"
)

const SubCommandArchives = "archives"

// RunArchives lists the rolled files of a setup, oldest first.
func RunArchives(args []string, out io.Writer) error {
	setup := filelogging.NewSetup("")

	fs := flag.NewFlagSet(SubCommandArchives, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&setup.Folder, "folder", ".", "folder of the log file")
	fs.StringVar(&setup.FileName, "fileName", setup.FileName, "log file name without extension")
	fs.StringVar(&setup.FileExtension, "fileExtension", setup.FileExtension, "log file extension")
	fs.Var(&setup.Mode, "mode", "rollover mode: daily, weekly, monthly or size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	files, err := filelogging.Archives(setup)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		_, err := fmt.Fprintf(out, "no archives match %s in %s\n", setup.ArchiveGlob(), setup.Folder)
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("#", "File", "Size", "Modified")
	for i, f := range files {
		row := []string{strconv.Itoa(i + 1), f.Path, size.Of(f.Size).String(), f.ModTime.Format(time.RFC3339)}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
