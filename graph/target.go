package graph

import (
	"fmt"
	"strings"
)

// Target represents a named unit of work together with the names of the targets that must run
// before it. Entries that have only been named as a dependency of some other target, but never
// registered with an action of their own, keep registered set to false and cannot be run.
type Target struct {
	Name         string
	Action       Action
	Dependencies []string

	registered bool
}

// Render this target as a human-readable string
func (target *Target) String() string {
	return fmt.Sprintf(
		"Target %s (action: %s, dependencies: [%s])",
		target.Name, target.Action, strings.Join(target.Dependencies, ", "),
	)
}
