package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/allenday/mtf/internal/config"
	apperrors "github.com/allenday/mtf/internal/errors"
)

// forceNonInteractive disables prompting so tests never open a form
func forceNonInteractive(t *testing.T) {
	t.Helper()
	orig, had := os.LookupEnv("CI")
	os.Setenv("CI", "true")
	t.Cleanup(func() {
		if had {
			os.Setenv("CI", orig)
		} else {
			os.Unsetenv("CI")
		}
	})
}

// resetNewFlags restores the registry new flag variables after a test
func resetNewFlags(t *testing.T) {
	t.Helper()
	origID, origType, origName := newID, newType, newName
	origDescription, origOutputType := newDescription, newOutputType
	origTags, origDeps := newTags, newDeps
	t.Cleanup(func() {
		newID, newType, newName = origID, origType, origName
		newDescription, newOutputType = origDescription, origOutputType
		newTags, newDeps = origTags, origDeps
	})
}

// TestRunRegistryNew tests non-interactive component registration
func TestRunRegistryNew(t *testing.T) {
	forceNonInteractive(t)
	resetNewFlags(t)

	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Default()
	cfg.Registry.Dir = t.TempDir()

	newID = "xml-parser"
	newType = "function"
	newName = "parse_plan"
	newDescription = "Parse a plan document into a graph"
	newOutputType = ""
	newTags = "parser, xml"
	newDeps = "lxml@4.9.3"

	if err := runRegistryNew(registryNewCmd, nil); err != nil {
		t.Fatalf("runRegistryNew() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Registry.Dir, "xml-parser.json")); err != nil {
		t.Errorf("expected descriptor file to exist: %v", err)
	}
}

// TestRunRegistryNewMissingFlags tests the non-interactive guard
func TestRunRegistryNewMissingFlags(t *testing.T) {
	forceNonInteractive(t)
	resetNewFlags(t)

	newID, newName, newDescription = "", "", ""
	newType = "function"
	newTags, newDeps, newOutputType = "", "", ""

	err := runRegistryNew(registryNewCmd, nil)
	if err == nil {
		t.Fatal("expected error without --name and --description, got nil")
	}
	if !strings.Contains(err.Error(), "non-interactively") {
		t.Errorf("expected guard message, got %q", err.Error())
	}
}

// TestRunRegistryValidate tests descriptor file validation
func TestRunRegistryValidate(t *testing.T) {
	tmpDir := t.TempDir()

	valid := filepath.Join(tmpDir, "valid.json")
	validDoc := `{
  "component_type": "function",
  "name": "parse_plan",
  "description": "Parse a plan document into a graph"
}`
	if err := os.WriteFile(valid, []byte(validDoc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	invalid := filepath.Join(tmpDir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"component_type": "function"}`), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := runRegistryValidate(registryValidateCmd, []string{valid}); err != nil {
		t.Errorf("expected valid descriptor to pass, got %v", err)
	}

	err := runRegistryValidate(registryValidateCmd, []string{invalid})
	if err == nil {
		t.Fatal("expected invalid descriptor to fail, got nil")
	}
	if !strings.Contains(err.Error(), "failed validation") {
		t.Errorf("expected validation summary, got %q", err.Error())
	}
}

// TestRunRegistryValidateMissingFile tests the file-not-found error
func TestRunRegistryValidateMissingFile(t *testing.T) {
	err := runRegistryValidate(registryValidateCmd, []string{filepath.Join(t.TempDir(), "nope.json")})
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}

	var mtfErr *apperrors.MTFError
	if !errors.As(err, &mtfErr) {
		t.Fatalf("expected MTFError, got %T", err)
	}
	if mtfErr.Code != apperrors.ErrCodeFileNotFound {
		t.Errorf("expected code %s, got %s", apperrors.ErrCodeFileNotFound, mtfErr.Code)
	}
}

// TestRunRegistryShowNotFound tests the missing-component error
func TestRunRegistryShowNotFound(t *testing.T) {
	forceNonInteractive(t)

	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Default()
	cfg.Registry.Dir = t.TempDir()

	err := runRegistryShow(registryShowCmd, []string{"ghost"})
	if err == nil {
		t.Fatal("expected error for unknown component, got nil")
	}

	var mtfErr *apperrors.MTFError
	if !errors.As(err, &mtfErr) {
		t.Fatalf("expected MTFError, got %T", err)
	}
	if mtfErr.Code != apperrors.ErrCodeRegistryNotFound {
		t.Errorf("expected code %s, got %s", apperrors.ErrCodeRegistryNotFound, mtfErr.Code)
	}
}

// TestRunRegistryList tests listing through a populated store
func TestRunRegistryList(t *testing.T) {
	forceNonInteractive(t)
	resetNewFlags(t)

	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = config.Default()
	cfg.Registry.Dir = t.TempDir()

	newID = "graph-renderer"
	newType = "function"
	newName = "render_graph"
	newDescription = "Render the dependency graph"
	newTags = "renderer"
	newDeps = ""

	if err := runRegistryNew(registryNewCmd, nil); err != nil {
		t.Fatalf("runRegistryNew() error = %v", err)
	}

	if err := runRegistryList(registryListCmd, nil); err != nil {
		t.Errorf("runRegistryList() error = %v", err)
	}

	// Filtering by an unknown tag is not an error
	origTag := listTag
	defer func() { listTag = origTag }()
	listTag = "nonexistent"
	if err := runRegistryList(registryListCmd, nil); err != nil {
		t.Errorf("runRegistryList() with tag filter error = %v", err)
	}
}
