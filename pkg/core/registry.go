package core

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownTool is returned when a call names a tool the registry does not
// hold. The rendered text matches what callers have come to expect.
var ErrUnknownTool = errors.New("Unknown tool")

// Registry routes calls by tool name. It is deliberately thin: schemas and
// execution live on the tools themselves.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry builds a registry holding the given tools, preserving
// registration order for schema advertisement.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, exists := r.tools[t.Name()]; exists {
			continue
		}
		r.tools[t.Name()] = t
		r.order = append(r.order, t.Name())
	}
	return r
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t, nil
}

// Tools returns all tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Call routes one invocation by name and executes it.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	t, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return t.Execute(ctx, args)
}
