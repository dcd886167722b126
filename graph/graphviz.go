package graph

import (
	"fmt"
	"io"
	"sort"

	"github.com/gruntwork-io/graphrunner/errors"
	"github.com/gruntwork-io/graphrunner/util"
)

// WriteDot emits a GraphViz compatible definition of this graph, with one node per target and
// one edge per dependency. It can be used to dump a .dot file. Names that are depended on but
// never registered as targets are styled in red.
func (runner *Runner) WriteDot(w io.Writer) error {
	if _, err := w.Write([]byte("digraph {\n")); err != nil {
		return errors.WithStackTrace(err)
	}

	defer func(w io.Writer) {
		if _, err := w.Write([]byte("}\n")); err != nil {
			runner.Options.Logger.Warnf("Failed to close graphviz output: %v", err)
		}
	}(w)

	for _, name := range runner.nodeNames() {
		target, exists := runner.targets[name]

		// apply a different coloring for names that cannot be run
		style := ""
		if !exists || !target.registered {
			style = "[color=red]"
		}

		nodeLine := fmt.Sprintf("\t\"%s\" %s;\n", name, style)
		if _, err := w.Write([]byte(nodeLine)); err != nil {
			return errors.WithStackTrace(err)
		}

		if !exists {
			continue
		}

		for _, dependency := range util.RemoveDuplicatesFromList(target.Dependencies) {
			edgeLine := fmt.Sprintf("\t\"%s\" -> \"%s\";\n", name, dependency)
			if _, err := w.Write([]byte(edgeLine)); err != nil {
				return errors.WithStackTrace(err)
			}
		}
	}

	return nil
}

// nodeNames returns every name this graph mentions, registered or not, in alphabetical order
func (runner *Runner) nodeNames() []string {
	names := []string{}

	for name, target := range runner.targets {
		names = append(names, name)
		names = append(names, target.Dependencies...)
	}

	names = util.RemoveDuplicatesFromList(names)
	sort.Strings(names)

	return names
}
