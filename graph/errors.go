package graph

import "fmt"

// Custom error types

// MissingDependencyError is returned when a run reaches a name with no registered target,
// either because the root target does not exist or because a dependency list names a target
// that was never registered. Dependent is empty for the root flavor.
type MissingDependencyError struct {
	Name      string
	Dependent string
}

func (err MissingDependencyError) Error() string {
	if err.Dependent == "" {
		return fmt.Sprintf("Target %s does not exist in the graph", err.Name)
	}

	return fmt.Sprintf("Target %s specifies %s as a dependency, but that target does not exist in the graph", err.Dependent, err.Name)
}

// InvalidTargetNameError is returned when registering a target with an empty name or a name
// that contains spaces
type InvalidTargetNameError struct {
	Name string
}

func (err InvalidTargetNameError) Error() string {
	return fmt.Sprintf("'%s' is not a valid target name: names must be non-empty and cannot contain spaces", err.Name)
}

// UnknownActionTypeError is returned when registering a target whose action is not one of the
// supported variants
type UnknownActionTypeError struct {
	TargetName string
	ActionType string
}

func (err UnknownActionTypeError) Error() string {
	return fmt.Sprintf("%s is not a valid action type for target %s: actions must be nil, a command line string, a func() error, or an Action", err.ActionType, err.TargetName)
}

// UnknownDependencyTypeError is returned when a dependency is not one of the supported shapes
type UnknownDependencyTypeError struct {
	TargetName     string
	DependencyType string
}

func (err UnknownDependencyTypeError) Error() string {
	return fmt.Sprintf("%s is not a valid dependency type for target %s: dependencies must be strings of target names, func() error values, or slices of dependencies", err.DependencyType, err.TargetName)
}
