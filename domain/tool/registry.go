package tool

import "encoding/json"

// Registry defines the interface for tool registration and lookup.
// This is a repository interface - implementations are in infrastructure.
// Registration happens before a run starts; during a run the registry
// is read-only.
type Registry interface {
	// Register adds a tool to the registry.
	// Returns ErrToolExists if the name is already taken.
	Register(tool Tool) error

	// Resolve retrieves a tool by name.
	// Returns ErrToolNotFound if the tool is absent.
	Resolve(name string) (Tool, error)

	// Validate checks args against the named tool's input schema.
	// Returns ErrToolNotFound for unknown tools and a *ValidationError
	// listing every violated field for schema failures.
	Validate(name string, args json.RawMessage) error

	// List returns all registered tools.
	List() []Tool

	// Names returns all registered tool names.
	Names() []string

	// Has checks if a tool is registered.
	Has(name string) bool

	// Unregister removes a tool from the registry.
	Unregister(name string) error
}

// Info is a prompt-friendly description of a registered tool.
type Info struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema,omitempty"`
}

// Describe renders registry contents for planner prompting.
func Describe(r Registry) []Info {
	tools := r.List()
	infos := make([]Info, 0, len(tools))
	for _, t := range tools {
		infos = append(infos, Info{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema().Raw(),
		})
	}
	return infos
}
