package domain

import (
	m "mutscore.dev/pkg/mutscore/internal/model"
)

// Registry builds tool adapters over shared infrastructure.
type Registry struct {
	deps ToolDeps
}

// NewRegistry creates a Registry handing deps to every adapter it builds.
func NewRegistry(deps ToolDeps) *Registry {
	return &Registry{deps: deps}
}

// Tool resolves a tool identifier into an adapter bound to checkout and class.
func (r *Registry) Tool(name string, checkout m.Path, class string) (*Tool, error) {
	kind, err := m.ParseToolKind(name)
	if err != nil {
		return nil, err
	}

	return NewTool(kind, checkout, class, r.deps), nil
}

// AllTools returns one adapter per engine in the fixed order judy, jumble, major, pit.
func (r *Registry) AllTools(checkout m.Path, class string) []*Tool {
	kinds := m.ToolKinds()

	tools := make([]*Tool, 0, len(kinds))
	for _, kind := range kinds {
		tools = append(tools, NewTool(kind, checkout, class, r.deps))
	}

	return tools
}

// Tools resolves names, or every engine when names is empty.
func (r *Registry) Tools(names []string, checkout m.Path, class string) ([]*Tool, error) {
	if len(names) == 0 {
		return r.AllTools(checkout, class), nil
	}

	tools := make([]*Tool, 0, len(names))

	for _, name := range names {
		tool, err := r.Tool(name, checkout, class)
		if err != nil {
			return nil, err
		}

		tools = append(tools, tool)
	}

	return tools, nil
}
