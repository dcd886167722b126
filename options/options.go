// Package options provides the set of options that configure how a graph runner executes its
// targets.
package options

import (
	"io"
	"os"

	"github.com/gruntwork-io/graphrunner/util"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultShellPath is the shell used to interpret command actions
	DefaultShellPath = "/bin/sh"

	// DefaultLogLevel is the log level runners use unless told otherwise
	DefaultLogLevel = logrus.InfoLevel

	logPrefix = "graphrunner"
)

// RunnerOptions represents options that configure the behavior of a graph runner
type RunnerOptions struct {
	// The shell used to interpret command actions, invoked as `ShellPath -c <command line>`
	ShellPath string

	// If true, command actions are split into arguments following shell quoting rules and
	// executed directly, without a shell
	DisableShell bool

	// The working directory for command actions. The zero value means the working directory
	// of the current process.
	WorkingDir string

	// Environment variables to pass to command actions
	Env map[string]string

	// The logger to use for all log output
	Logger *logrus.Entry

	// The current log level
	LogLevel logrus.Level

	// The writer command actions use as their stdout
	Writer io.Writer

	// The writer command actions use as their stderr
	ErrWriter io.Writer
}

// NewRunnerOptions creates a new RunnerOptions with the default settings: command actions run
// through /bin/sh in the working directory of the current process, with the environment of the
// current process, and logs go to stderr at info level.
func NewRunnerOptions() *RunnerOptions {
	return NewRunnerOptionsWithWriters(os.Stdout, os.Stderr)
}

// NewRunnerOptionsWithWriters creates a new RunnerOptions with the default settings, except
// that command output and logs go to the given writers instead of the stdout and stderr of the
// current process.
func NewRunnerOptionsWithWriters(stdout io.Writer, stderr io.Writer) *RunnerOptions {
	return &RunnerOptions{
		ShellPath: DefaultShellPath,
		Env:       util.ParseEnvironmentVariables(os.Environ()),
		Logger:    util.CreateLogEntryWithWriter(stderr, logPrefix, DefaultLogLevel),
		LogLevel:  DefaultLogLevel,
		Writer:    stdout,
		ErrWriter: stderr,
	}
}

// NewRunnerOptionsForTest creates a new RunnerOptions suitable for unit tests: the default
// settings, but with debug logging enabled
func NewRunnerOptionsForTest() *RunnerOptions {
	opts := NewRunnerOptions()
	opts.LogLevel = logrus.DebugLevel
	opts.Logger = util.CreateLogEntry(logPrefix, logrus.DebugLevel)

	return opts
}

// Clone creates a copy of this RunnerOptions. The environment map is deep-copied, so the clone
// can be modified without affecting the original.
func (opts *RunnerOptions) Clone() *RunnerOptions {
	return &RunnerOptions{
		ShellPath:    opts.ShellPath,
		DisableShell: opts.DisableShell,
		WorkingDir:   opts.WorkingDir,
		Env:          util.CloneStringMap(opts.Env),
		Logger:       opts.Logger,
		LogLevel:     opts.LogLevel,
		Writer:       opts.Writer,
		ErrWriter:    opts.ErrWriter,
	}
}
