// Package plan builds a dependency graph from an XML work breakdown and
// answers queries against it.
//
// A plan document nests epics, stories, and tasks. Building validates the
// document against the embedded schema, extracts the hierarchy, and
// flattens it into a graph with two edge kinds: ComponentOf edges point
// from each child to its parent, DependsOn edges point from a task to the
// task ids it waits on. Dependency targets are allowed to dangle; queries
// treat them as unmet.
package plan

import (
	"errors"
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/allenday/mtf/internal/schema"
)

// BuildError is the checked failure for graph builds. A build that returns
// it produced nothing; the previously built plan and graph are untouched.
type BuildError struct {
	Kind  schema.Kind
	Path  string
	Cause error
}

func (e *BuildError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("build plan graph from %s: %s: %v", e.Path, e.Kind, e.Cause)
	}
	return fmt.Sprintf("build plan graph: %s: %v", e.Kind, e.Cause)
}

// Unwrap exposes the originating cause for errors.Is and errors.As.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// FailedWith reports whether err is a BuildError of the given kind.
func FailedWith(err error, kind schema.Kind) bool {
	var berr *BuildError
	return errors.As(err, &berr) && berr.Kind == kind
}

// PlanGraph owns one plan document's hierarchy and graph. Every build
// replaces both wholesale; nothing is merged across builds.
type PlanGraph struct {
	plan  *Plan
	graph *Graph
}

// New returns a PlanGraph holding an empty graph.
func New() *PlanGraph {
	return &PlanGraph{graph: NewGraph()}
}

// Plan returns the hierarchy from the last successful build, or nil before
// the first one.
func (pg *PlanGraph) Plan() *Plan {
	return pg.plan
}

// Graph returns the graph from the last successful build. It is never nil.
func (pg *PlanGraph) Graph() *Graph {
	return pg.graph
}

// BuildFromFile validates the document at path against the plan schema,
// parses it, and replaces the held plan and graph. On failure the previous
// state is kept and the returned error is a *BuildError.
func (pg *PlanGraph) BuildFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &BuildError{Kind: schema.IOFailure, Path: path, Cause: err}
	}
	return pg.build(path, data)
}

// BuildFromBytes is BuildFromFile for an in-memory document.
func (pg *PlanGraph) BuildFromBytes(data []byte) error {
	return pg.build("", data)
}

func (pg *PlanGraph) build(path string, data []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return &BuildError{Kind: schema.MalformedDocument, Path: path, Cause: err}
	}

	validator, err := schema.Default()
	if err != nil {
		return fmt.Errorf("load plan schema: %w", err)
	}
	if err := validator.ValidateDocument(doc); err != nil {
		kind := schema.SchemaViolation
		var serr *schema.Error
		if errors.As(err, &serr) {
			kind = serr.Kind
		}
		return &BuildError{Kind: kind, Path: path, Cause: err}
	}

	parsed := parsePlan(doc.Root())
	pg.plan = parsed
	pg.graph = buildGraph(parsed)
	return nil
}
