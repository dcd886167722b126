// Package graph implements a registry of named targets and an executor that runs a target
// after recursively running everything it depends on, each target at most once per run.
//
// A Runner is not safe for concurrent use: targets must not be registered while a run is in
// progress, Run must not be called from multiple goroutines at once, and actions must not call
// Run again on the same Runner.
package graph

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gruntwork-io/go-commons/collections"
	"github.com/gruntwork-io/graphrunner/errors"
	"github.com/gruntwork-io/graphrunner/options"
	"github.com/gruntwork-io/graphrunner/shell"
	"github.com/gruntwork-io/graphrunner/util"
)

const anonymousTargetPrefix = "anonymous-"

// Runner holds the registry of targets and runs them in dependency order
type Runner struct {
	Options *options.RunnerOptions

	targets   map[string]*Target
	anonymous map[uintptr]string
}

// NewRunner creates an empty Runner that executes targets with the given options
func NewRunner(opts *options.RunnerOptions) *Runner {
	return &Runner{
		Options:   opts,
		targets:   map[string]*Target{},
		anonymous: map[uintptr]string{},
	}
}

// Target registers a target under the given name, setting its action and appending the given
// dependencies. Registering a name a second time overwrites its action but appends to its
// dependency list, it never replaces the dependencies already recorded.
//
// The action may be nil (no work), a string (a command line for the shell), a func() error, or
// an Action value. Each dependency may be a string of whitespace-separated target names, a
// func() error to register as an anonymous target, or a slice of further dependencies
// ([]string or []interface{}) that is appended in order.
func (runner *Runner) Target(name string, action interface{}, dependencies ...interface{}) error {
	if name == "" || strings.Contains(name, " ") {
		return errors.WithStackTrace(InvalidTargetNameError{Name: name})
	}

	resolved, err := resolveAction(name, action)
	if err != nil {
		return err
	}

	target := runner.getOrCreateTarget(name)
	if target.registered {
		runner.Options.Logger.Debugf("Target %s is already registered, overwriting its action", name)
	}

	target.Action = resolved
	target.registered = true

	return runner.appendDependencies(target, dependencies)
}

// Depends appends the given dependencies to the target with the given name. The name does not
// have to be registered yet: the dependencies are recorded either way and take effect once an
// action is registered under that name.
func (runner *Runner) Depends(name string, dependencies ...interface{}) error {
	return runner.appendDependencies(runner.getOrCreateTarget(name), dependencies)
}

// Run runs the given target after recursively running everything it depends on, depth-first
// and in dependency-list order. Each target runs at most once per call, including targets
// reachable through more than one path or through a dependency cycle. The record of executed
// targets is scoped to this one call, so running the same target again runs everything again.
func (runner *Runner) Run(name string) error {
	runner.Options.Logger.Debugf("Running target %s", name)

	executed := []string{}

	return runner.runTarget(name, "", &executed)
}

// Targets returns the names of all registered targets in alphabetical order. Go does not
// guarantee iteration order for maps, so we sort to get a deterministic output.
func (runner *Runner) Targets() []string {
	names := []string{}

	for name, target := range runner.targets {
		if target.registered {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// Deps returns a copy of the dependency list recorded for the given registered target
func (runner *Runner) Deps(name string) ([]string, error) {
	target, exists := runner.targets[name]
	if !exists || !target.registered {
		return nil, errors.WithStackTrace(MissingDependencyError{Name: name})
	}

	return collections.MakeCopyOfList(target.Dependencies), nil
}

// Render this graph as a human-readable string, one registered target per line
func (runner *Runner) String() string {
	targets := []string{}

	for _, name := range runner.Targets() {
		targets = append(targets, "  => "+runner.targets[name].String())
	}

	return fmt.Sprintf("Graph with %d targets:\n%s", len(targets), strings.Join(targets, "\n"))
}

// runTarget runs a single target depth-first. Targets are marked as executed on entry, before
// their dependencies and action run, so that a dependency cycle terminates at the target whose
// run is already in progress instead of recursing forever.
func (runner *Runner) runTarget(name string, dependent string, executed *[]string) error {
	if util.ListContainsElement(*executed, name) {
		runner.Options.Logger.Debugf("Target %s has already run, skipping", name)
		return nil
	}

	*executed = append(*executed, name)

	target, exists := runner.targets[name]
	if !exists || !target.registered {
		return errors.WithStackTrace(MissingDependencyError{Name: name, Dependent: dependent})
	}

	for _, dependency := range target.Dependencies {
		if err := runner.runTarget(dependency, name, executed); err != nil {
			return err
		}
	}

	return runner.runAction(target)
}

// runAction dispatches on the action variant of the given target. Errors from a proc action
// propagate unchanged; command failures carry the command line and its exit status.
func (runner *Runner) runAction(target *Target) error {
	switch target.Action.Kind {
	case ActionEmpty:
		runner.Options.Logger.Debugf("Target %s has no action", target.Name)
		return nil
	case ActionCommand:
		return shell.RunShellCommand(runner.Options, target.Action.Command)
	case ActionProc:
		return target.Action.Proc()
	default:
		return errors.WithStackTrace(UnknownActionTypeError{TargetName: target.Name, ActionType: fmt.Sprintf("ActionKind(%d)", target.Action.Kind)})
	}
}

func (runner *Runner) getOrCreateTarget(name string) *Target {
	target, exists := runner.targets[name]
	if !exists {
		target = &Target{Name: name}
		runner.targets[name] = target
	}

	return target
}

func resolveAction(name string, action interface{}) (Action, error) {
	switch action := action.(type) {
	case nil:
		return EmptyAction(), nil
	case string:
		return CommandAction(action), nil
	case func() error:
		return ProcAction(action), nil
	case Action:
		return action, nil
	default:
		return Action{}, errors.WithStackTrace(UnknownActionTypeError{TargetName: name, ActionType: fmt.Sprintf("%T", action)})
	}
}

func (runner *Runner) appendDependencies(target *Target, dependencies []interface{}) error {
	for _, dependency := range dependencies {
		if err := runner.appendDependency(target, dependency); err != nil {
			return err
		}
	}

	return nil
}

// appendDependency normalizes one dependency into target names and appends them to the given
// target's dependency list. Strings are split on whitespace, functions are registered as
// anonymous targets, and slices are normalized element by element.
func (runner *Runner) appendDependency(target *Target, dependency interface{}) error {
	switch dependency := dependency.(type) {
	case string:
		target.Dependencies = append(target.Dependencies, strings.Fields(dependency)...)
	case func() error:
		target.Dependencies = append(target.Dependencies, runner.registerAnonymousTarget(dependency))
	case []string:
		for _, element := range dependency {
			target.Dependencies = append(target.Dependencies, strings.Fields(element)...)
		}
	case []interface{}:
		for _, element := range dependency {
			if err := runner.appendDependency(target, element); err != nil {
				return err
			}
		}
	default:
		return errors.WithStackTrace(UnknownDependencyTypeError{TargetName: target.Name, DependencyType: fmt.Sprintf("%T", dependency)})
	}

	return nil
}

// registerAnonymousTarget registers the given function as a target with a generated name and
// returns that name. Passing the same function value again reuses the existing entry, so a
// function shared between several dependency lists still runs at most once per run. Closures
// created by the same function literal share underlying code and therefore share one anonymous
// target.
func (runner *Runner) registerAnonymousTarget(proc func() error) string {
	pointer := reflect.ValueOf(proc).Pointer()
	if name, exists := runner.anonymous[pointer]; exists {
		return name
	}

	name := anonymousTargetPrefix + uuid.New().String()
	runner.targets[name] = &Target{Name: name, Action: ProcAction(proc), registered: true}
	runner.anonymous[pointer] = name

	runner.Options.Logger.Debugf("Registered anonymous dependency as target %s", name)

	return name
}
