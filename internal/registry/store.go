package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound reports a lookup for a component id the store does not hold.
var ErrNotFound = errors.New("component not found")

// Store persists component descriptors as one JSON file per component,
// named <id>.json under the registry directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first write, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Add validates the component and writes its descriptor, assigning a fresh
// id when none is set. An existing descriptor with the same id is replaced.
func (s *Store) Add(c *Component) error {
	if c == nil {
		return fmt.Errorf("component is required")
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	if err := ValidateDescriptor(c); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal component: %w", err)
	}

	path := filepath.Join(s.dir, c.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write component: %w", err)
	}

	return nil
}

// Get loads one component by id.
func (s *Store) Get(id string) (*Component, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("invalid component id %q", id)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("component %q in registry %s: %w", id, s.dir, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read component %q: %w", id, err)
	}

	var c Component
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode component %q: %w", id, err)
	}

	return &c, nil
}

// List returns every stored component sorted by name, then id.
func (s *Store) List() ([]*Component, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry dir: %w", err)
	}

	var components []*Component
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		c, err := s.Get(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	sort.Slice(components, func(i, j int) bool {
		if components[i].Name != components[j].Name {
			return components[i].Name < components[j].Name
		}
		return components[i].ID < components[j].ID
	})

	return components, nil
}

// FindByTag returns the components carrying the tag, sorted by name.
func (s *Store) FindByTag(tag string) ([]*Component, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	var matched []*Component
	for _, c := range all {
		if slices.Contains(c.Tags, tag) {
			matched = append(matched, c)
		}
	}

	return matched, nil
}
