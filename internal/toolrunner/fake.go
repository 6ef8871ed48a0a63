package toolrunner

import (
	"context"
	"sync"
)

// FakeRunner is a scriptable Runner for tests. Outcomes are keyed by command
// name, optionally including the first argument ("bun build" vs "bun x") so
// the bundler and CSS processor can be scripted independently even when they
// share a binary. Unscripted invocations succeed with empty output. Every
// invocation is recorded so tests can assert ordering and arguments.
type FakeRunner struct {
	mu       sync.Mutex
	outcomes map[string]fakeOutcome
	Calls    []Spec
}

type fakeOutcome struct {
	result Result
	err    error
	effect func(Spec)
}

// NewFakeRunner returns an empty scriptable runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{outcomes: make(map[string]fakeOutcome)}
}

// Script sets the outcome for invocations matching key, which is either a
// bare command name or "command firstArg".
func (f *FakeRunner) Script(key string, result Result, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes[key] = fakeOutcome{result: result, err: err}
}

// ScriptEffect sets the outcome for key and a side effect executed on each
// matching invocation. Tests use the effect to emulate a tool writing its
// output files.
func (f *FakeRunner) ScriptEffect(key string, result Result, effect func(Spec)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes[key] = fakeOutcome{result: result, effect: effect}
}

// Run records the call and returns the scripted outcome. The more specific
// "command firstArg" key wins over the bare command name.
func (f *FakeRunner) Run(_ context.Context, spec Spec) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, spec)
	if len(spec.Args) > 0 {
		if o, ok := f.outcomes[spec.Command+" "+spec.Args[0]]; ok {
			if o.effect != nil {
				o.effect(spec)
			}
			return o.result, o.err
		}
	}
	if o, ok := f.outcomes[spec.Command]; ok {
		if o.effect != nil {
			o.effect(spec)
		}
		return o.result, o.err
	}
	return Result{}, nil
}

// CallCount returns how many recorded invocations match key.
func (f *FakeRunner) CallCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c.Command == key {
			n++
			continue
		}
		if len(c.Args) > 0 && c.Command+" "+c.Args[0] == key {
			n++
		}
	}
	return n
}
