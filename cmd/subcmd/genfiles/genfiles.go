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
	"bytes"
	"context"
	"flag"
	"os"

	"golang.org/x/time/rate"

	"github.com/loggie-io/filelogger/pkg/core/log"
	"github.com/loggie-io/filelogger/pkg/core/signals"
)

const (
	SubCommandGenFiles = "genfiles"
)

var (
	genFilesCmd *flag.FlagSet
	totalCount  int64
	lineBytes   int
	qps         int
)

func init() {
	genFilesCmd = flag.NewFlagSet(SubCommandGenFiles, flag.ExitOnError)
	genFilesCmd.Int64Var(&totalCount, "totalCount", -1, "total line count, negative runs until interrupted")
	genFilesCmd.IntVar(&lineBytes, "lineBytes", 1024, "bytes per line")
	genFilesCmd.IntVar(&qps, "qps", 10, "line qps")
	log.SetFlag(genFilesCmd)
}

// RunGenFiles writes generated lines through the framework logger, so the
// log.rollover.* flags can be watched rolling files over.
func RunGenFiles() error {
	if len(os.Args) > 2 {
		if err := genFilesCmd.Parse(os.Args[2:]); err != nil {
			return err
		}
	}

	log.InitDefaultLogger()
	defer log.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := signals.SetupSignalHandler()
	go func() {
		<-stop
		cancel()
	}()

	content := bytes.Repeat([]byte("x"), lineBytes)
	logger := log.Tag(SubCommandGenFiles)
	GenLines(ctx, totalCount, rate.NewLimiter(rate.Limit(qps), 1), func(index int64) {
		logger.Info("%d %s", index, content)
	})
	return nil
}

// GenLines calls fn with an increasing index at the limiter's pace until
// total lines were generated or ctx is done. A negative total never ends.
func GenLines(ctx context.Context, total int64, limiter *rate.Limiter, fn func(index int64)) int64 {
	var i int64
	for ; total < 0 || i < total; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return i
		}
		fn(i)
	}
	return i
}
