package graph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gruntwork-io/graphrunner/errors"
	"github.com/gruntwork-io/graphrunner/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mockOptions = options.NewRunnerOptionsForTest()

func TestRegisterTarget(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	require.NoError(t, runner.Target("compile", nil))

	assert.Equal(t, []string{"compile"}, runner.Targets())

	deps, err := runner.Deps("compile")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestRegisterTargetInvalidName(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	for _, name := range []string{"", "two words", "lots of words in here"} {
		err := runner.Target(name, nil)
		assert.True(t, errors.IsError(err, InvalidTargetNameError{Name: name}), "For name '%s', got: %v", name, err)
	}

	assert.Empty(t, runner.Targets())
}

func TestRegisterTargetUnknownActionType(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	err := runner.Target("compile", 42)
	assert.True(t, errors.IsError(err, UnknownActionTypeError{TargetName: "compile", ActionType: "int"}), "Got: %v", err)

	// a rejected action must not create the target
	assert.Empty(t, runner.Targets())
}

func TestRegisterTargetOverwritesActionAndAppendsDependencies(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	firstRan := false
	secondRan := false

	require.NoError(t, runner.Target("build", func() error { firstRan = true; return nil }, "fetch"))
	require.NoError(t, runner.Target("build", func() error { secondRan = true; return nil }, "lint"))
	require.NoError(t, runner.Target("fetch", nil))
	require.NoError(t, runner.Target("lint", nil))

	deps, err := runner.Deps("build")
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "lint"}, deps)

	require.NoError(t, runner.Run("build"))
	assert.False(t, firstRan, "The overwritten action should not run")
	assert.True(t, secondRan, "The overwriting action should run")
}

func TestDependsAppendsAndKeepsDuplicates(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	require.NoError(t, runner.Target("build", nil))
	require.NoError(t, runner.Depends("build", "compile"))
	require.NoError(t, runner.Depends("build", "compile link"))

	deps, err := runner.Deps("build")
	require.NoError(t, err)
	assert.Equal(t, []string{"compile", "compile", "link"}, deps)
}

func TestDependsDoesNotRegisterTarget(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	require.NoError(t, runner.Target("real", nil))
	require.NoError(t, runner.Depends("ghost", "real"))

	assert.Equal(t, []string{"real"}, runner.Targets())

	_, err := runner.Deps("ghost")
	assert.True(t, errors.IsError(err, MissingDependencyError{Name: "ghost"}), "Got: %v", err)

	err = runner.Run("ghost")
	assert.True(t, errors.IsError(err, MissingDependencyError{Name: "ghost"}), "Got: %v", err)
}

func TestDependencyNormalization(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		dependency interface{}
		expected   []string
	}{
		{"compile", []string{"compile"}},
		{"compile link", []string{"compile", "link"}},
		{"  compile \t link  ", []string{"compile", "link"}},
		{"", []string{}},
		{[]string{"compile", "link package"}, []string{"compile", "link", "package"}},
		{[]interface{}{"compile", []string{"link"}, []interface{}{"package"}}, []string{"compile", "link", "package"}},
	}

	for _, testCase := range testCases {
		runner := NewRunner(mockOptions)
		require.NoError(t, runner.Target("build", nil, testCase.dependency), "For dependency %v", testCase.dependency)

		deps, err := runner.Deps("build")
		require.NoError(t, err)
		assert.Equal(t, testCase.expected, deps, "For dependency %v", testCase.dependency)
	}
}

func TestDependencyFunctionsBecomeAnonymousTargets(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	require.NoError(t, runner.Target("build", nil, func() error { return nil }))

	deps, err := runner.Deps("build")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.True(t, strings.HasPrefix(deps[0], "anonymous-"), "Got dependency name: %s", deps[0])

	// the anonymous target is registered and runnable like any other target
	assert.Contains(t, runner.Targets(), deps[0])
	assert.NoError(t, runner.Run(deps[0]))
}

func TestAnonymousDependencyDeduplication(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	sharedProc := func() error { return nil }

	require.NoError(t, runner.Target("a", nil, sharedProc))
	require.NoError(t, runner.Target("b", nil, sharedProc))

	depsA, err := runner.Deps("a")
	require.NoError(t, err)
	depsB, err := runner.Deps("b")
	require.NoError(t, err)

	require.Len(t, depsA, 1)
	assert.Equal(t, depsA, depsB, "The same function value should reuse one anonymous target")

	// a different function mints a fresh anonymous target
	require.NoError(t, runner.Target("c", nil, func() error { return fmt.Errorf("never run") }))

	depsC, err := runner.Deps("c")
	require.NoError(t, err)
	require.Len(t, depsC, 1)
	assert.NotEqual(t, depsA[0], depsC[0])
}

func TestUnknownDependencyType(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	err := runner.Target("build", nil, 42)
	assert.True(t, errors.IsError(err, UnknownDependencyTypeError{TargetName: "build", DependencyType: "int"}), "Got: %v", err)

	err = runner.Depends("build", nil)
	assert.True(t, errors.IsError(err, UnknownDependencyTypeError{TargetName: "build", DependencyType: "<nil>"}), "Got: %v", err)
}

func TestTargetsSortedAlphabetically(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	require.NoError(t, runner.Target("zebra", nil))
	require.NoError(t, runner.Target("alpha", "echo alpha"))
	require.NoError(t, runner.Target("mango", nil))

	assert.Equal(t, []string{"alpha", "mango", "zebra"}, runner.Targets())
}

func TestDepsReturnsCopy(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	require.NoError(t, runner.Target("build", nil, "compile"))

	deps, err := runner.Deps("build")
	require.NoError(t, err)

	deps[0] = "changed"

	depsAgain, err := runner.Deps("build")
	require.NoError(t, err)
	assert.Equal(t, []string{"compile"}, depsAgain, "Changing the returned list should not affect the graph")
}

func TestRunnerString(t *testing.T) {
	t.Parallel()

	runner := NewRunner(mockOptions)

	require.NoError(t, runner.Target("build", nil, "compile link"))
	require.NoError(t, runner.Target("compile", "cc main.c"))

	rendered := runner.String()

	assert.Contains(t, rendered, "Graph with 2 targets:")
	assert.Contains(t, rendered, "Target build (action: empty, dependencies: [compile, link])")
	assert.Contains(t, rendered, "Target compile (action: command 'cc main.c', dependencies: [])")
}
