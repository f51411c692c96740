package tools

import (
	"errors"
	"fmt"
)

// ErrToolNotFound reports a call naming a tool the set does not carry.
var ErrToolNotFound = errors.New("tool not found")

// Set is a fixed collection of tools, constructed once and dispatched by
// name by its exclusive caller.
type Set []Tool

// Find returns the tool with the given name.
func (s Set) Find(name string) (Tool, bool) {
	for _, tool := range s {
		if tool.Function.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}

// Names lists the tool names in declaration order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for _, tool := range s {
		names = append(names, tool.Function.Name)
	}
	return names
}

// Call executes the named tool with raw JSON arguments.
func (s Set) Call(name, arguments string) (string, error) {
	tool, ok := s.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	response, err := tool.Execute(arguments)
	if err != nil {
		return "", fmt.Errorf("failed to execute tool %q: %w", name, err)
	}
	return response, nil
}

// Observed returns a copy of the set whose executions are reported to the
// observer. The observer runs before each call and its returned function,
// if any, after the call settles.
func (s Set) Observed(observe func(name, arguments string) func(response string, err error)) Set {
	observed := make(Set, 0, len(s))
	for _, tool := range s {
		execute := tool.execute
		name := tool.Function.Name
		tool.execute = func(arguments string) (string, error) {
			done := observe(name, arguments)
			response, err := execute(arguments)
			if done != nil {
				done(response, err)
			}
			return response, err
		}
		observed = append(observed, tool)
	}
	return observed
}

// Definitions returns the wire-facing descriptions for the handshake.
func (s Set) Definitions() []Function {
	definitions := make([]Function, 0, len(s))
	for _, tool := range s {
		definitions = append(definitions, tool.Function)
	}
	return definitions
}
