package ux

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DiscoverConfigFile searches for a config file in multiple locations
// Priority: current dir -> parent dirs up to git root -> home dir
func DiscoverConfigFile(filename string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// 1. Check current directory
	configPath := filepath.Join(cwd, filename)
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	// 2. Search parent directories, stopping at the git root
	dir := cwd
	for {
		configPath = filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		gitDir := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitDir); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	// 3. Try git root explicitly
	if gitRoot, err := getGitRoot(); err == nil {
		configPath = filepath.Join(gitRoot, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	// 4. Check home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath = filepath.Join(homeDir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	// Not found - return expected location in the current directory
	return filepath.Join(cwd, filename), nil
}

// getGitRoot returns the git repository root directory
func getGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// EnsureMTFDir ensures the .mtf directory and its subdirectories exist
func EnsureMTFDir() error {
	defaults := NewPathDefaults()

	if _, err := os.Stat(defaults.MTFDir); os.IsNotExist(err) {
		if err := os.MkdirAll(defaults.MTFDir, 0755); err != nil {
			return err
		}
	}

	return os.MkdirAll(defaults.RegistryDir(), 0755)
}
