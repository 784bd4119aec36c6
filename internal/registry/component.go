// Package registry stores reusable component descriptors as JSON files
// validated against an embedded JSON Schema. A descriptor records what a
// component does, what it takes and returns, and what it depends on, so
// plan tasks can reference implemented work instead of re-describing it.
package registry

// Parameter describes one input a component accepts.
type Parameter struct {
	// Name of the parameter
	Name string `json:"name"`
	// ParamType is the data type of the parameter (e.g., str, int, list, dict)
	ParamType string `json:"param_type"`
	// Description of the parameter's purpose
	Description string `json:"description"`
	// DefaultValue is an optional default for the parameter
	DefaultValue interface{} `json:"default_value,omitempty"`
}

// Dependency names a package a component needs, optionally pinned to a
// version.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Component is one registry entry.
type Component struct {
	// ID is the descriptor's file identity within the store. Assigned on
	// first Add when empty.
	ID string `json:"id,omitempty"`
	// ComponentType is the kind of component (e.g., function, class, module)
	ComponentType string `json:"component_type"`
	// Name of the component
	Name string `json:"name"`
	// Description is a natural language summary of the component's functionality
	Description string `json:"description"`
	// InputParameters lists the inputs the component accepts
	InputParameters []Parameter `json:"input_parameters,omitempty"`
	// OutputType is the data type of the output (e.g., str, int, list, dict)
	OutputType string `json:"output_type,omitempty"`
	// OutputDescription describes the output
	OutputDescription string `json:"output_description,omitempty"`
	// Dependencies lists the packages the component needs
	Dependencies []Dependency `json:"dependencies,omitempty"`
	// Code holds the component's implementation, when captured
	Code string `json:"code,omitempty"`
	// ExampleUsage is a snippet demonstrating how to use the component
	ExampleUsage string `json:"example_usage,omitempty"`
	// Tags categorize the component for search
	Tags []string `json:"tags,omitempty"`
	// Metadata carries additional free-form fields (e.g., author)
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
