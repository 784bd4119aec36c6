package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/allenday/mtf/internal/registry"
)

// componentTypes are the descriptor kinds offered by the form.
var componentTypes = []string{"function", "class", "module"}

// RunComponentForm collects a component descriptor interactively. Values
// already set on c are used as form defaults.
func RunComponentForm(c *registry.Component) error {
	if c.ComponentType == "" {
		c.ComponentType = componentTypes[0]
	}

	// Convert options to huh options
	typeOptions := make([]huh.Option[string], len(componentTypes))
	for i, t := range componentTypes {
		typeOptions[i] = huh.NewOption(t, t)
	}

	tags := strings.Join(c.Tags, ", ")
	deps := formatDependencies(c.Dependencies)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Component type").
				Options(typeOptions...).
				Value(&c.ComponentType),
			huh.NewInput().
				Title("Name").
				Placeholder("parse_plan").
				Value(&c.Name).
				Validate(requireValue("name")),
			huh.NewText().
				Title("Description").
				Placeholder("What does this component do?").
				Value(&c.Description).
				Validate(requireValue("description")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output type").
				Placeholder("dict").
				Value(&c.OutputType),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated, e.g. parser, xml").
				Value(&tags),
			huh.NewInput().
				Title("Dependencies").
				Description("Comma separated name@version pairs, e.g. lxml@4.9.3, click").
				Value(&deps),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	c.Tags = SplitList(tags)
	c.Dependencies = ParseDependencies(deps)

	return nil
}

// requireValue rejects blank input for a required field
func requireValue(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// SplitList splits comma separated input into trimmed, non-empty items.
func SplitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// ParseDependencies parses comma separated name@version pairs. Items
// without a version pin come back with Version empty.
func ParseDependencies(raw string) []registry.Dependency {
	var deps []registry.Dependency
	for _, item := range SplitList(raw) {
		name, version, _ := strings.Cut(item, "@")
		deps = append(deps, registry.Dependency{
			Name:    strings.TrimSpace(name),
			Version: strings.TrimSpace(version),
		})
	}
	return deps
}

// formatDependencies renders dependencies back into form input text
func formatDependencies(deps []registry.Dependency) string {
	items := make([]string, 0, len(deps))
	for _, d := range deps {
		if d.Version != "" {
			items = append(items, d.Name+"@"+d.Version)
		} else {
			items = append(items, d.Name)
		}
	}
	return strings.Join(items, ", ")
}
