// Package shell runs the command lines of command actions and reports their exit status.
package shell

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/gruntwork-io/graphrunner/errors"
	"github.com/gruntwork-io/graphrunner/options"
	"github.com/hashicorp/go-multierror"
)

// RunShellCommand runs the given command line, connecting its stdin to the stdin of the current
// process and its stdout and stderr to the writers configured on the given options. The command
// line is interpreted by the configured shell (`ShellPath -c <command line>`) unless
// DisableShell is set, in which case it is split into arguments following shell quoting rules
// and executed directly. Blocks until the command exits.
func RunShellCommand(opts *options.RunnerOptions, commandLine string) error {
	opts.Logger.Debugf("Running command: %s", commandLine)

	cmd, err := buildCommand(opts, commandLine)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = opts.Writer
	cmd.Stderr = opts.ErrWriter
	cmd.Env = toEnvVarsList(opts.Env)
	cmd.Dir = opts.WorkingDir

	if err := cmd.Run(); err != nil {
		return errors.WithStackTrace(CommandFailedError{Command: commandLine, Underlying: err})
	}

	return nil
}

func buildCommand(opts *options.RunnerOptions, commandLine string) (*exec.Cmd, error) {
	if !opts.DisableShell {
		return exec.Command(opts.ShellPath, "-c", commandLine), nil
	}

	args, err := shlex.Split(commandLine)
	if err != nil {
		return nil, errors.WithStackTrace(CommandFailedError{Command: commandLine, Underlying: err})
	}

	if len(args) == 0 {
		return nil, errors.WithStackTrace(EmptyCommandError{Command: commandLine})
	}

	return exec.Command(args[0], args[1:]...), nil
}

func toEnvVarsList(envVarsAsMap map[string]string) []string {
	envVarsAsList := []string{}

	for key, value := range envVarsAsMap {
		envVarsAsList = append(envVarsAsList, fmt.Sprintf("%s=%s", key, value))
	}

	return envVarsAsList
}

// GetExitCode returns the exit code of a command. If the error does not implement
// errors.IErrorCode and is not an exec.ExitError or multierror.Error type, 0 and the error
// itself are returned.
func GetExitCode(err error) (int, error) {
	if exiterr, ok := errors.Unwrap(err).(errors.IErrorCode); ok {
		return exiterr.ExitStatus()
	}

	if exiterr, ok := errors.Unwrap(err).(*exec.ExitError); ok {
		return exiterr.ExitCode(), nil
	}

	if exiterr, ok := errors.Unwrap(err).(*multierror.Error); ok {
		for _, wrappedErr := range exiterr.Errors {
			if exitCode, exitCodeErr := GetExitCode(wrappedErr); exitCodeErr == nil {
				return exitCode, nil
			}
		}
	}

	return 0, err
}

// Custom error types

// CommandFailedError is returned when a command action could not be started or exited with a
// non-zero status
type CommandFailedError struct {
	Command    string
	Underlying error
}

func (err CommandFailedError) Error() string {
	return fmt.Sprintf("Command '%s' failed: %v", err.Command, err.Underlying)
}

func (err CommandFailedError) ExitStatus() (int, error) {
	return GetExitCode(err.Underlying)
}

func (err CommandFailedError) Unwrap() error {
	return err.Underlying
}

// EmptyCommandError is returned when DisableShell is set and the command line contains no
// arguments to execute
type EmptyCommandError struct {
	Command string
}

func (err EmptyCommandError) Error() string {
	return fmt.Sprintf("Cannot run command '%s': the command line contains no arguments", err.Command)
}
