package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cardiolab/hra-cli/internal/logging"
	"github.com/cardiolab/hra-cli/internal/study"
)

func getStudyDir() string {
	// Try current directory first
	if _, err := os.Stat("studies"); err == nil {
		return "studies"
	}

	// Try relative to executable
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "studies")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}

	// Default to studies in current directory
	return "studies"
}

// loadStudies builds the registry: embedded defaults first, then any
// YAML files in the study directory overriding them by name.
func loadStudies() (*study.Registry, error) {
	registry := study.NewRegistry()
	if err := registry.LoadDefaults(); err != nil {
		return nil, fmt.Errorf("failed to load built-in studies: %w", err)
	}
	dir := getStudyDir()
	if _, err := os.Stat(dir); err == nil {
		if err := registry.LoadFromDir(dir); err != nil {
			return nil, fmt.Errorf("failed to load studies from %s: %w", dir, err)
		}
	}
	return registry, nil
}

// resolveStudy accepts either a registered study name or a path to a
// study YAML file.
func resolveStudy(nameOrPath string) (*study.Study, error) {
	if strings.ContainsRune(nameOrPath, os.PathSeparator) || strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") {
		registry := study.NewRegistry()
		if err := registry.LoadFromFile(nameOrPath); err != nil {
			return nil, err
		}
		names := registry.List()
		if len(names) == 0 {
			return nil, fmt.Errorf("no study defined in %s", nameOrPath)
		}
		return registry.Get(names[0])
	}

	registry, err := loadStudies()
	if err != nil {
		return nil, err
	}
	s, err := registry.Get(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load study '%s': %w", nameOrPath, err)
	}
	return s, nil
}

func newLogger() zerolog.Logger {
	return logging.New(rootVerbose, rootQuiet)
}
