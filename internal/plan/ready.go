package plan

// ReadyTasks returns the ids of tasks that can start now: the task is not
// complete, and every direct dependency resolves to a node with status
// complete. In-progress tasks are reported only when the request includes
// them. A dependency id with no node counts as unmet, never as an error.
// Results follow node insertion order.
func (g *Graph) ReadyTasks(req *ReadyTasksRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var ready []string
	for _, id := range g.order {
		task, ok := g.nodes[id].(*Task)
		if !ok {
			continue
		}
		if task.Status == StatusComplete {
			continue
		}
		if task.Status == StatusInProgress && !req.IncludeInProgress {
			continue
		}
		if g.dependenciesMet(id) {
			ready = append(ready, id)
		}
	}
	return ready, nil
}

func (g *Graph) dependenciesMet(id string) bool {
	for _, dep := range g.dependsOn[id] {
		node, ok := g.nodes[dep]
		if !ok {
			return false
		}
		if node.Core().Status != StatusComplete {
			return false
		}
	}
	return true
}
