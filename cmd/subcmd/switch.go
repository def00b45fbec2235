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

package subcmd

import (
	"os"

	"github.com/pkg/errors"

	"github.com/loggie-io/filelogger/cmd/subcmd/archives"
	"github.com/loggie-io/filelogger/cmd/subcmd/genfiles"
	"github.com/loggie-io/filelogger/cmd/subcmd/modes"
	"github.com/loggie-io/filelogger/cmd/subcmd/pattern"
)

// ErrExit tells main that a sub command ran and the process should exit.
var ErrExit = errors.New("exit")

func SwitchSubCommand() error {
	if len(os.Args) == 1 {
		return nil
	}
	var err error
	switch os.Args[1] {
	case modes.SubCommandModes:
		err = modes.RunModes(os.Stdout)

	case pattern.SubCommandPattern:
		err = pattern.RunPattern(os.Args[2:], os.Stdout)

	case archives.SubCommandArchives:
		err = archives.RunArchives(os.Args[2:], os.Stdout)

	case genfiles.SubCommandGenFiles:
		err = genfiles.RunGenFiles()

	default:
		return nil
	}

	if err != nil {
		return err
	}
	return ErrExit
}
