package plan

// NodeKind discriminates the closed set of node variants stored in a graph.
type NodeKind string

const (
	KindEpic  NodeKind = "epic"
	KindStory NodeKind = "story"
	KindTask  NodeKind = "task"
)

// NodeCore holds the fields shared by every plan element.
type NodeCore struct {
	ID          string
	Description string
	Status      Status
	Priority    int
}

// Node is the closed union of plan elements. Only Epic, Story, and Task
// implement it. Nodes are snapshots of parse-time values and are never
// mutated after a build.
type Node interface {
	Core() NodeCore
	Kind() NodeKind
	isNode()
}

// Epic is a top-level initiative grouping stories.
type Epic struct {
	NodeCore
	Stories []*Story
}

// Story is a feature slice inside an epic, carrying a point estimate.
type Story struct {
	NodeCore
	Points int
	Tasks  []*Task
}

// Task is a leaf work item. DependsOn lists task ids that must be complete
// before this one can start; the ids are not resolved at parse time.
type Task struct {
	NodeCore
	DependsOn []string
}

// Plan is the root aggregate produced by a build. Version comes from the
// document's version attribute, defaulting to "1.0".
type Plan struct {
	Version string
	Epics   []*Epic
}

func (e *Epic) Core() NodeCore { return e.NodeCore }
func (e *Epic) Kind() NodeKind { return KindEpic }
func (e *Epic) isNode()        {}

func (s *Story) Core() NodeCore { return s.NodeCore }
func (s *Story) Kind() NodeKind { return KindStory }
func (s *Story) isNode()        {}

func (t *Task) Core() NodeCore { return t.NodeCore }
func (t *Task) Kind() NodeKind { return KindTask }
func (t *Task) isNode()        {}

// Compile-time verification that the union is complete
var (
	_ Node = (*Epic)(nil)
	_ Node = (*Story)(nil)
	_ Node = (*Task)(nil)
)
