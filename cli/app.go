package cli

import (
	"fmt"
	"os"

	"github.com/gruntwork-io/graphrunner/errors"
	"github.com/gruntwork-io/graphrunner/graph"
	"github.com/gruntwork-io/graphrunner/options"
	"github.com/gruntwork-io/graphrunner/shell"
	"github.com/gruntwork-io/graphrunner/util"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// The current version of the graphrunner CLI
const Version = "0.1.0"

// NewApp creates the graphrunner CLI App for the given runner. The app exposes the runner's
// registered targets on the command line, so a main package can register its targets and hand
// the rest over to RunApp.
func NewApp(runner *graph.Runner, opts *options.RunnerOptions) *cli.App {
	app := cli.NewApp()
	app.Name = "graphrunner"
	app.Usage = "Run a target and everything it depends on, each target at most once."
	app.UsageText = "graphrunner [global options] <command> [command options] [target...]"
	app.Version = Version
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   fmt.Sprintf("Set the log level. Must be one of: %v.", logrus.AllLevels),
			EnvVars: []string{"GRAPHRUNNER_LOG_LEVEL"},
			Value:   options.DefaultLogLevel.String(),
		},
		&cli.StringFlag{
			Name:    "working-dir",
			Usage:   "The directory in which to run command actions.",
			EnvVars: []string{"GRAPHRUNNER_WORKING_DIR"},
		},
	}
	app.Before = beforeRunningCommand(opts)
	app.Commands = []*cli.Command{
		runCommand(runner, opts),
		listCommand(runner, opts),
		graphCommand(runner, opts),
	}

	return app
}

func beforeRunningCommand(opts *options.RunnerOptions) cli.BeforeFunc {
	return func(ctx *cli.Context) error {
		level, err := util.ParseLogLevel(ctx.String("log-level"))
		if err != nil {
			return err
		}

		opts.LogLevel = level
		opts.Logger.Logger.SetLevel(level)
		opts.Logger.Logger.SetOutput(ctx.App.ErrWriter)

		if workingDir := ctx.String("working-dir"); workingDir != "" {
			opts.WorkingDir = workingDir
		}

		return nil
	}
}

func runCommand(runner *graph.Runner, opts *options.RunnerOptions) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run the given targets and all of their dependencies.",
		ArgsUsage: "<target>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ignore-errors",
				Usage: "Keep running the remaining targets when one fails and report all errors at the end.",
			},
		},
		Action: func(ctx *cli.Context) error {
			if !ctx.Args().Present() {
				return errors.WithStackTrace(MissingTargetError{})
			}

			if !ctx.Bool("ignore-errors") {
				for _, target := range ctx.Args().Slice() {
					if err := runner.Run(target); err != nil {
						return err
					}
				}

				return nil
			}

			var runErrors *multierror.Error

			for _, target := range ctx.Args().Slice() {
				if err := runner.Run(target); err != nil {
					opts.Logger.Errorf("Target %s failed: %v", target, err)
					runErrors = multierror.Append(runErrors, err)
				}
			}

			return runErrors.ErrorOrNil()
		},
	}
}

func listCommand(runner *graph.Runner, opts *options.RunnerOptions) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the names of all registered targets, one per line.",
		Action: func(ctx *cli.Context) error {
			for _, name := range runner.Targets() {
				if _, err := fmt.Fprintln(ctx.App.Writer, name); err != nil {
					return errors.WithStackTrace(err)
				}
			}

			return nil
		},
	}
}

func graphCommand(runner *graph.Runner, opts *options.RunnerOptions) *cli.Command {
	return &cli.Command{
		Name:  "graph",
		Usage: "Write the dependency graph to stdout in DOT format.",
		Action: func(ctx *cli.Context) error {
			return runner.WriteDot(ctx.App.Writer)
		},
	}
}

// RunApp runs the given app and exits the process with an exit code that reflects how it went.
// This method should only be called from main.
func RunApp(app *cli.App) {
	defer errors.Recover(checkForErrorsAndExit)

	checkForErrorsAndExit(app.Run(os.Args))
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(err error) {
	if err == nil {
		os.Exit(0)
	}

	if os.Getenv("GRAPHRUNNER_DEBUG") != "" {
		fmt.Fprintln(os.Stderr, errors.PrintErrorWithStackTrace(err))
	} else {
		fmt.Fprintln(os.Stderr, err.Error())
	}

	// exit with the exit code of the failed command, if there is one to propagate
	exitCode, exitCodeErr := shell.GetExitCode(err)
	if exitCodeErr != nil {
		exitCode = 1
	}

	os.Exit(exitCode)
}

// Custom error types

type MissingTargetError struct{}

func (err MissingTargetError) Error() string {
	return "Missing target argument (Example: graphrunner run build)"
}
