package study

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed studies/*.yaml
var embeddedStudies embed.FS

// Registry holds all available study definitions.
type Registry struct {
	studies map[string]*Study
}

// NewRegistry creates an empty study registry.
func NewRegistry() *Registry {
	return &Registry{studies: make(map[string]*Study)}
}

// LoadDefaults loads the studies embedded in the binary.
func (r *Registry) LoadDefaults() error {
	entries, err := embeddedStudies.ReadDir("studies")
	if err != nil {
		return fmt.Errorf("failed to read embedded studies: %w", err)
	}
	for _, entry := range entries {
		data, err := embeddedStudies.ReadFile(filepath.Join("studies", entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read embedded study %s: %w", entry.Name(), err)
		}
		if err := r.add(data, entry.Name()); err != nil {
			return err
		}
	}
	return nil
}

// LoadFromFile loads a study definition from a YAML file.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read study file: %w", err)
	}
	return r.add(data, path)
}

// LoadFromDir loads every .yaml/.yml study definition in a directory.
func (r *Registry) LoadFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read studies directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		if err := r.LoadFromFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) add(data []byte, origin string) error {
	var s Study
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse study YAML from %s: %w", origin, err)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}
	r.studies[s.Name] = &s
	return nil
}

// Get retrieves a study by name.
func (r *Registry) Get(name string) (*Study, error) {
	s, ok := r.studies[name]
	if !ok {
		return nil, fmt.Errorf("study '%s' not found", name)
	}
	return s, nil
}

// List returns all study names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.studies))
	for name := range r.studies {
		names = append(names, name)
	}
	return names
}

// ListWithDescriptions returns all studies with their descriptions.
func (r *Registry) ListWithDescriptions() map[string]string {
	result := make(map[string]string)
	for name, s := range r.studies {
		result[name] = s.Description
	}
	return result
}
