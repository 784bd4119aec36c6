package plan

import "fmt"

// ReadyTasksRequest configures the ready-task query.
type ReadyTasksRequest struct {
	// IncludeInProgress also reports tasks already being worked on.
	IncludeInProgress bool
}

// DefaultReadyTasksRequest returns the default query configuration.
func DefaultReadyTasksRequest() *ReadyTasksRequest {
	return &ReadyTasksRequest{}
}

// Validate checks the request shape before any graph access.
func (r *ReadyTasksRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("ready tasks request is required")
	}
	return nil
}

// OutlineRequest configures outline rendering.
type OutlineRequest struct {
	// IncludeStatus appends the status of each node in parentheses.
	IncludeStatus bool
}

// DefaultOutlineRequest returns the default outline configuration.
func DefaultOutlineRequest() *OutlineRequest {
	return &OutlineRequest{IncludeStatus: true}
}

// Validate checks the request shape before any graph access.
func (r *OutlineRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("outline request is required")
	}
	return nil
}

// MermaidRequest configures mermaid flowchart rendering.
type MermaidRequest struct {
	// IncludeDescriptions attaches node descriptions as labels.
	IncludeDescriptions bool
}

// DefaultMermaidRequest returns the default mermaid configuration.
func DefaultMermaidRequest() *MermaidRequest {
	return &MermaidRequest{IncludeDescriptions: true}
}

// Validate checks the request shape before any graph access.
func (r *MermaidRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("mermaid request is required")
	}
	return nil
}

// GraphvizRequest configures DOT rendering.
type GraphvizRequest struct {
	// IncludeDescriptions attaches node descriptions as label attributes.
	IncludeDescriptions bool
}

// DefaultGraphvizRequest returns the default DOT configuration.
func DefaultGraphvizRequest() *GraphvizRequest {
	return &GraphvizRequest{IncludeDescriptions: true}
}

// Validate checks the request shape before any graph access.
func (r *GraphvizRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("graphviz request is required")
	}
	return nil
}
