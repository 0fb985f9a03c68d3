package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = ".dtsgen.yaml"

// ProjectConfig represents a .dtsgen.yaml file next to the sources
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Output file extension for WSDL packages (.d.ts or .ts)
	Extension string `yaml:"extension,omitempty"`

	// simpleType names that are not redeclared
	BasicTypes []string `yaml:"basic_types,omitempty"`

	// Outer namespace wrapped around every WSDL package
	Namespace string `yaml:"namespace,omitempty"`

	// Extra type aliases appended to every WSDL package
	Typedefs map[string]string `yaml:"typedefs,omitempty"`

	// Leading comment of generated files
	Header string `yaml:"header,omitempty"`

	// Syntax-check generated files
	Check bool `yaml:"check,omitempty"`
}

// DefaultProjectConfig returns sensible defaults
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version:    "1.0",
		Extension:  ".d.ts",
		BasicTypes: []string{"string", "number", "boolean", "Date"},
	}
}

// LoadProjectConfig loads a .dtsgen.yaml from the given directory
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ProjectFile)

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Also try .dtsgen.yml
		configPath = filepath.Join(dir, ".dtsgen.yml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return DefaultProjectConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveProjectConfig saves the config to .dtsgen.yaml
func SaveProjectConfig(dir string, cfg *ProjectConfig) error {
	configPath := filepath.Join(dir, ProjectFile)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Merge applies overrides from another config (e.g., CLI flags)
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if other.Extension != "" {
		c.Extension = other.Extension
	}

	if len(other.BasicTypes) > 0 {
		c.BasicTypes = other.BasicTypes
	}

	if other.Namespace != "" {
		c.Namespace = other.Namespace
	}

	for name, typ := range other.Typedefs {
		if c.Typedefs == nil {
			c.Typedefs = make(map[string]string)
		}
		c.Typedefs[name] = typ
	}

	if other.Header != "" {
		c.Header = other.Header
	}

	if other.Check {
		c.Check = true
	}
}
