package ux

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathDefaults provides smart defaults for common file paths
type PathDefaults struct {
	MTFDir string
}

// NewPathDefaults creates a new PathDefaults with sensible defaults
func NewPathDefaults() *PathDefaults {
	return &PathDefaults{
		MTFDir: ".mtf",
	}
}

// PlanFile returns the default path to the plan document
func (pd *PathDefaults) PlanFile() string {
	return "plan.xml"
}

// ConfigFile returns the default path to the project config file
func (pd *PathDefaults) ConfigFile() string {
	return ".mtf.yaml"
}

// RegistryDir returns the default component registry directory
func (pd *PathDefaults) RegistryDir() string {
	return filepath.Join(pd.MTFDir, "registry")
}

// ValidateMTFSetup checks if the .mtf directory is initialized
func (pd *PathDefaults) ValidateMTFSetup() error {
	if _, err := os.Stat(pd.MTFDir); os.IsNotExist(err) {
		return fmt.Errorf(".mtf directory not found. Run 'mtf init' to set it up")
	}
	return nil
}

// ValidateRequiredFile checks if a required file exists and provides helpful error
func ValidateRequiredFile(path string, fileType string, creationCommand string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%s not found at: %s\n\nRun '%s' to create it", fileType, path, creationCommand)
	} else if err != nil {
		return fmt.Errorf("error accessing %s: %w", path, err)
	}
	return nil
}

// SuggestNextSteps provides contextual next steps based on what exists
func SuggestNextSteps() string {
	defaults := NewPathDefaults()

	_, hasPlan := os.Stat(defaults.PlanFile())
	_, hasRegistry := os.Stat(defaults.RegistryDir())

	if os.IsNotExist(hasPlan) {
		return "Run 'mtf init' to scaffold a project, then check plan.xml with 'mtf plan validate'"
	}

	if os.IsNotExist(hasRegistry) {
		return "Run 'mtf plan ready' to list unblocked tasks, or 'mtf registry new' to register a component"
	}

	return "Run 'mtf plan ready' to list unblocked tasks"
}
