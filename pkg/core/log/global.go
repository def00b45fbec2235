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

package log

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/loggie-io/filelogger/pkg/core/log/spi"
	"github.com/loggie-io/filelogger/pkg/filelogging"
	"github.com/loggie-io/filelogger/pkg/util/size"
)

var (
	defaultLogger *Logger
	AfterError    spi.AfterError
	gLoggerConfig = &LoggerConfig{}
)

func init() {
	SetFlag(flag.CommandLine)

	// usable before flags are parsed and InitDefaultLogger is called
	defaultLogger = &Logger{l: newZerolog(os.Stderr, zerolog.InfoLevel), level: zerolog.InfoLevel}
}

// SetFlag registers the log.* flags on f.
func SetFlag(f *flag.FlagSet) {
	gLoggerConfig.Rollover.Mode = filelogging.FileSizeRollover
	gLoggerConfig.Rollover.FileSizeLimit = size.Of(1024 * size.MB)

	f.StringVar(&gLoggerConfig.Level, "log.level", "info", "Global log output level")
	f.BoolVar(&gLoggerConfig.JsonFormat, "log.jsonFormat", true, "Parses the JSON log format")
	f.BoolVar(&gLoggerConfig.EnableStdout, "log.enableStdout", true, "EnableStdout enable the log print to stdout")
	f.BoolVar(&gLoggerConfig.EnableFile, "log.enableFile", false, "EnableFile makes the framework log to a file")
	f.StringVar(&gLoggerConfig.Directory, "log.directory", "/var/log", "Directory to log to to when log.enableFile is enabled")
	f.StringVar(&gLoggerConfig.Filename, "log.filename", "filelogger.log", "Filename is the name of the logfile which will be placed inside the directory")
	f.Var(&gLoggerConfig.Rollover.Mode, "log.rollover.mode", "Rollover mode of the logfile: daily, weekly, monthly or size")
	f.Var(&gLoggerConfig.Rollover.FileSizeLimit, "log.rollover.fileSizeLimit", "Size of the logfile before it's rolled, size mode only")
	f.IntVar(&gLoggerConfig.Rollover.LogFilesToKeep, "log.rollover.logFilesToKeep", 3, "Max number of rolled files to keep, negative keeps all")
	f.StringVar(&gLoggerConfig.TimeFormat, "log.timeFormat", "2006-01-02 15:04:05", "TimeFormat log time format")
	f.IntVar(&gLoggerConfig.CallerSkipCount, "log.callerSkipCount", 4, "CallerSkipCount is the number of stack frames to skip to find the caller")
	f.BoolVar(&gLoggerConfig.NoColor, "log.noColor", false, "NoColor disables the colorized output")
}

type LoggerConfig struct {
	Level           string         `yaml:"level,omitempty"`
	JsonFormat      bool           `yaml:"jsonFormat,omitempty"`
	EnableStdout    bool           `yaml:"enableStdout,omitempty"`
	EnableFile      bool           `yaml:"enableFile,omitempty"`
	Directory       string         `yaml:"directory,omitempty"`
	Filename        string         `yaml:"filename,omitempty"`
	Rollover        RolloverConfig `yaml:"rollover,omitempty"`
	TimeFormat      string         `yaml:"timeFormat,omitempty"`
	CallerSkipCount int            `yaml:"callerSkipCount,omitempty"`
	NoColor         bool           `yaml:"noColor,omitempty"`
}

type RolloverConfig struct {
	Mode           filelogging.Mode `yaml:"mode,omitempty"`
	FileSizeLimit  size.Size        `yaml:"fileSizeLimit,omitempty"`
	LogFilesToKeep int              `yaml:"logFilesToKeep,omitempty"`
}

// FileSetup describes the rolling file the logger writes to when EnableFile is set.
func (c *LoggerConfig) FileSetup() *filelogging.Setup {
	s := filelogging.NewSetup(c.Directory)
	if c.Filename != "" {
		ext := filepath.Ext(c.Filename)
		s.FileName = strings.TrimSuffix(c.Filename, ext)
		s.FileExtension = strings.TrimPrefix(ext, ".")
	}
	s.Mode = c.Rollover.Mode
	if c.Rollover.FileSizeLimit.Bytes > 0 {
		s.FileSizeLimit = c.Rollover.FileSizeLimit
	}
	s.LogFilesToKeep = c.Rollover.LogFilesToKeep
	return s
}

type Logger struct {
	l     *zerolog.Logger
	level zerolog.Level
	// tag prefixes every message as "[tag]: message"
	tag    string
	closer io.Closer
}

func InitDefaultLogger() {
	logger, err := NewLogger(gLoggerConfig)
	if err != nil {
		panic(fmt.Sprintf("init logger error: %v", err))
	}
	defaultLogger = logger
}

func NewLogger(config *LoggerConfig) (*Logger, error) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return nil, errors.Errorf("set log level %q error, choose trace/debug/info/warn/error/fatal/panic", config.Level)
	}

	var writers []io.Writer

	if config.EnableStdout {
		if config.JsonFormat {
			writers = append(writers, os.Stderr)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: config.TimeFormat,
				NoColor:    config.NoColor,
			})
		}
	}

	var closer io.Closer
	if config.EnableFile {
		w, err := filelogging.NewRollingWriter(config.FileSetup())
		if err != nil {
			return nil, errors.WithMessage(err, "create log file")
		}
		writers = append(writers, w)
		closer = w
	}

	zerolog.CallerSkipFrameCount = config.CallerSkipCount
	return &Logger{
		l:      newZerolog(io.MultiWriter(writers...), level),
		level:  level,
		closer: closer,
	}, nil
}

func newZerolog(w io.Writer, level zerolog.Level) *zerolog.Logger {
	logger := zerolog.New(zerolog.MultiLevelWriter(w)).Level(level).With().Timestamp().Caller().Logger()
	return &logger
}

// Tag returns a logger that prefixes messages with the given tag.
func (logger *Logger) Tag(tag string) *Logger {
	tagged := *logger
	tagged.tag = tag
	return &tagged
}

// Caller returns a logger tagged with the call site of Caller, rendered as
// "[[file.go:line pkg.Func]]: message". correction moves the call site
// further up the stack, for use from logging helpers.
func (logger *Logger) Caller(correction int) *Logger {
	return logger.Tag("[" + StackTag(1+correction) + "]")
}

// Close closes the log file, if any.
func (logger *Logger) Close() error {
	if logger.closer == nil {
		return nil
	}
	return logger.closer.Close()
}

func (logger *Logger) msg(format string, a []interface{}) string {
	m := format
	if a != nil {
		m = fmt.Sprintf(format, a...)
	}
	if logger.tag == "" {
		return m
	}
	return formatLine(logger.tag, m)
}

func (logger *Logger) Debug(format string, a ...interface{}) {
	logger.l.Debug().Msg(logger.msg(format, a))
}

func (logger *Logger) Info(format string, a ...interface{}) {
	logger.l.Info().Msg(logger.msg(format, a))
}

func (logger *Logger) Warn(format string, a ...interface{}) {
	logger.l.Warn().Msg(logger.msg(format, a))
}

func (logger *Logger) Error(format string, a ...interface{}) {
	logger.l.Error().Msg(logger.msg(format, a))
}

func (logger *Logger) Panic(format string, a ...interface{}) {
	logger.l.Panic().Msg(logger.msg(format, a))
}

func (logger *Logger) Fatal(format string, a ...interface{}) {
	logger.l.Fatal().Msg(logger.msg(format, a))
}

func IsDebugLevel() bool {
	return defaultLogger.level <= zerolog.DebugLevel
}

func Tag(tag string) *Logger {
	return defaultLogger.Tag(tag)
}

func Close() error {
	return defaultLogger.Close()
}

func Debug(format string, a ...interface{}) {
	defaultLogger.Debug(format, a...)
}

func Info(format string, a ...interface{}) {
	defaultLogger.Info(format, a...)
}

func Warn(format string, a ...interface{}) {
	defaultLogger.Warn(format, a...)
}

func Error(format string, a ...interface{}) {
	defer afterErrorOpt(format, a...)
	defaultLogger.Error(format, a...)
}

func Panic(format string, a ...interface{}) {
	defer afterErrorOpt(format, a...)
	defaultLogger.Panic(format, a...)
}

func Fatal(format string, a ...interface{}) {
	defaultLogger.Fatal(format, a...)
}

func afterErrorOpt(format string, a ...interface{}) {
	if AfterError == nil {
		return
	}
	var msg string
	if a == nil {
		msg = format
	} else {
		msg = fmt.Sprintf(format, a...)
	}
	AfterError(msg)
}
