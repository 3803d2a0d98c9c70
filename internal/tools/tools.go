// Package tools implements the deterministic labor-law calculators and the
// catalog the router exposes to the routing model.
package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownTool indicates a dispatch to a name outside the registry.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrBadArguments indicates arguments that do not satisfy a tool's schema.
	ErrBadArguments = errors.New("bad tool arguments")
)

// Property describes one parameter in a tool's JSON schema.
type Property struct {
	Type        string   `json:"type"`
	Enum        []string `json:"enum,omitempty"`
	Description string   `json:"description"`
	Default     any      `json:"default,omitempty"`
}

// Parameters is the JSON-schema object for a tool's arguments.
type Parameters struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Spec declares one callable tool: its schema for the routing model plus
// the context phrases that hint when it applies.
type Spec struct {
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Parameters          Parameters `json:"parameters"`
	ContextRequirements []string   `json:"context_requirements"`

	handler func(args map[string]any) (string, error)
}

// Registry holds the tool catalog.
type Registry struct {
	specs []Spec
	index map[string]*Spec
}

// NewRegistry builds the registry with the full calculator catalog.
func NewRegistry() *Registry {
	r := &Registry{index: make(map[string]*Spec)}
	for _, spec := range catalog() {
		r.specs = append(r.specs, spec)
	}
	for i := range r.specs {
		r.index[r.specs[i].Name] = &r.specs[i]
	}
	return r
}

// Specs returns the catalog in declaration order.
func (r *Registry) Specs() []Spec { return r.specs }

// Names returns the sorted tool names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.index))
	for name := range r.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CatalogJSON renders the catalog as indented JSON for the routing prompt.
// Vietnamese text stays unescaped.
func (r *Registry) CatalogJSON() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.specs); err != nil {
		return "[]"
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Execute dispatches to the named tool with the given arguments.
func (r *Registry) Execute(name string, args map[string]any) (string, error) {
	spec, ok := r.index[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return spec.handler(args)
}
