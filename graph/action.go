package graph

import "fmt"

// ActionKind identifies which variant of work an Action performs
type ActionKind byte

const (
	// ActionEmpty performs no work. Useful for grouping dependencies under a single name.
	ActionEmpty ActionKind = iota

	// ActionCommand runs a command line through the shell
	ActionCommand

	// ActionProc invokes a function
	ActionProc
)

// Action is the work a target performs once all of its dependencies have run. Exactly one of
// the three variants applies, chosen by Kind. The zero value is the empty action.
type Action struct {
	Kind    ActionKind
	Command string
	Proc    func() error
}

// EmptyAction returns an action that performs no work
func EmptyAction() Action {
	return Action{Kind: ActionEmpty}
}

// CommandAction returns an action that runs the given command line through the shell
func CommandAction(command string) Action {
	return Action{Kind: ActionCommand, Command: command}
}

// ProcAction returns an action that invokes the given function
func ProcAction(proc func() error) Action {
	return Action{Kind: ActionProc, Proc: proc}
}

func (action Action) String() string {
	switch action.Kind {
	case ActionCommand:
		return fmt.Sprintf("command '%s'", action.Command)
	case ActionProc:
		return "proc"
	default:
		return "empty"
	}
}
