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
	"flag"
	"fmt"
	"io"

	"github.com/loggie-io/filelogger/pkg/filelogging"
)

const SubCommandPattern = "pattern"

// RunPattern prints where a setup writes and how its archives are named.
func RunPattern(args []string, out io.Writer) error {
	setup := filelogging.NewSetup("")

	fs := flag.NewFlagSet(SubCommandPattern, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&setup.Folder, "folder", ".", "folder of the log file")
	fs.StringVar(&setup.FileName, "fileName", setup.FileName, "log file name without extension")
	fs.StringVar(&setup.FileExtension, "fileExtension", setup.FileExtension, "log file extension")
	fs.Var(&setup.Mode, "mode", "rollover mode: daily, weekly, monthly or size")
	fs.Var(&setup.FileSizeLimit, "fileSizeLimit", "size limit for size rollover")
	fs.IntVar(&setup.LogFilesToKeep, "logFilesToKeep", setup.LogFilesToKeep, "archives to keep, negative keeps all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := setup.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(out, "mode:            %s\n", setup.Mode)
	fmt.Fprintf(out, "file:            %s\n", setup.FilePath())
	fmt.Fprintf(out, "pattern:         %s\n", setup.FileNamePattern())
	if setup.Mode.IsTimeBased() {
		fmt.Fprintf(out, "archive layout:  %s\n", setup.ArchiveLayout())
	} else {
		fmt.Fprintf(out, "size limit:      %s\n", setup.FileSizeLimit)
	}
	fmt.Fprintf(out, "files to keep:   %d\n", setup.LogFilesToKeep)
	return nil
}
