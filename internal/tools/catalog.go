// ABOUTME: Tool catalog types, registry lookup, schema generation, and argument filtering.
// ABOUTME: The declared parameter list doubles as the argument allow-list at dispatch time.

package tools

import "context"

// Param is one declared tool parameter. Type is a JSON schema primitive,
// currently "string" or "number".
type Param struct {
	Name string
	Type string
}

// Handler executes a tool with filtered arguments and returns the text
// result shown to the caller.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Tool is one immutable catalog entry.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// InputSchema builds the JSON schema object advertised for this tool.
// Every declared parameter appears in both properties and required.
func (t *Tool) InputSchema() map[string]any {
	props := make(map[string]any, len(t.Params))
	required := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		props[p.Name] = map[string]any{"type": p.Type}
		required = append(required, p.Name)
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// FilterArgs drops arguments a tool invocation must not see: empty-string
// and null values (some LLM callers send empty placeholders for optional
// fields) and keys not in the tool's declared parameters. Idempotent.
func (t *Tool) FilterArgs(args map[string]any) map[string]any {
	allowed := make(map[string]struct{}, len(t.Params))
	for _, p := range t.Params {
		allowed[p.Name] = struct{}{}
	}

	filtered := make(map[string]any, len(args))
	for k, v := range args {
		if v == nil || v == "" {
			continue
		}
		if _, ok := allowed[k]; !ok {
			continue
		}
		filtered[k] = v
	}
	return filtered
}

// Registry is the fixed, ordered tool catalog.
type Registry struct {
	ordered []*Tool
	byName  map[string]*Tool
}

// NewRegistry builds a registry from the given tools, preserving order.
func NewRegistry(tools ...*Tool) *Registry {
	r := &Registry{
		ordered: tools,
		byName:  make(map[string]*Tool, len(tools)),
	}
	for _, t := range tools {
		r.byName[t.Name] = t
	}
	return r
}

// List returns the tools in declaration order.
func (r *Registry) List() []*Tool {
	return r.ordered
}

// Resolve looks up a tool by name.
func (r *Registry) Resolve(name string) (*Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}
