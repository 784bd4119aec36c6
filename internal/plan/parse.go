package plan

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// parsePlan extracts the typed hierarchy from a validated document root.
// An element that fails field extraction is dropped silently together with
// its whole subtree; siblings are unaffected.
func parsePlan(root *etree.Element) *Plan {
	p := &Plan{Version: root.SelectAttrValue("version", "1.0")}
	for _, el := range root.FindElements(".//epic") {
		if epic, ok := parseEpic(el); ok {
			p.Epics = append(p.Epics, epic)
		}
	}
	return p
}

func parseEpic(el *etree.Element) (*Epic, bool) {
	core, ok := parseCore(el)
	if !ok {
		return nil, false
	}
	epic := &Epic{NodeCore: core}
	for _, sel := range el.FindElements(".//story") {
		if story, ok := parseStory(sel); ok {
			epic.Stories = append(epic.Stories, story)
		}
	}
	return epic, true
}

func parseStory(el *etree.Element) (*Story, bool) {
	core, ok := parseCore(el)
	if !ok {
		return nil, false
	}
	points, ok := parseInt(childText(el, "points", "0"))
	if !ok {
		return nil, false
	}
	story := &Story{NodeCore: core, Points: points}
	for _, tel := range el.FindElements(".//task") {
		if task, ok := parseTask(tel); ok {
			story.Tasks = append(story.Tasks, task)
		}
	}
	return story, true
}

func parseTask(el *etree.Element) (*Task, bool) {
	core, ok := parseCore(el)
	if !ok {
		return nil, false
	}
	task := &Task{NodeCore: core}
	for _, dep := range el.FindElements(".//depends_on") {
		if target := dep.Text(); target != "" {
			task.DependsOn = append(task.DependsOn, target)
		}
	}
	return task, true
}

// parseCore extracts the fields shared by every level. An empty id, an
// unknown status, or a non-numeric priority rejects the element.
func parseCore(el *etree.Element) (NodeCore, bool) {
	id := el.SelectAttrValue("id", "")
	if id == "" {
		return NodeCore{}, false
	}
	status, err := ParseStatus(el.SelectAttrValue("status", ""))
	if err != nil {
		return NodeCore{}, false
	}
	priority, ok := parseInt(childText(el, "priority", "1"))
	if !ok {
		return NodeCore{}, false
	}
	return NodeCore{
		ID:          id,
		Description: childText(el, "description", ""),
		Status:      status,
		Priority:    priority,
	}, true
}

// childText returns the text of the first direct child with the given tag,
// or fallback when no such child exists.
func childText(el *etree.Element, tag, fallback string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return fallback
	}
	return child.Text()
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
