// Package modconfig loads the YAML configuration file that drives a
// registry: additional descriptor search roots, the redefine-permission
// flag, and default filter policy — a declarative alternative to
// AILANG_PATH / getDefaultSearchPaths-style environment scraping.
//
// Mirrors AILANG's internal/eval_harness/spec.go, which decodes a
// benchmark spec file via gopkg.in/yaml.v3 struct tags the same way.
package modconfig

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the decoded loader configuration.
type Config struct {
	// SearchRoots are additional directories scanned for XML module
	// descriptors when resolving a module by identifier; the modlink
	// command scans them after its --dir directory.
	SearchRoots []string `yaml:"searchRoots"`

	// AllowRedefine gates the registry's administrative mutation methods
	// (Relink, SetAndRefreshResourceLoaders, SetAndRelinkDependencies).
	AllowRedefine bool `yaml:"allowRedefine"`

	// DefaultImportAccept and DefaultExportAccept are decoded and reported
	// through ImportAcceptDefault and ExportAcceptDefault. Nothing else
	// reads them: modspec.WithDefaults always fills nil filters with
	// AcceptAll for import and RejectAll for export, whatever this file
	// says.
	DefaultImportAccept *bool `yaml:"defaultImportAccept"`
	DefaultExportAccept *bool `yaml:"defaultExportAccept"`

	// LogLevel is one of "debug", "info", "warn".
	LogLevel string `yaml:"logLevel"`
}

// Default returns the configuration spec.md's own defaults describe:
// no extra search roots, redefinition disabled, info-level logging.
func Default() *Config {
	return &Config{LogLevel: "info"}
}

// Load decodes a Config from r.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return nil, fmt.Errorf("modconfig: decode: %w", err)
	}
	return cfg, nil
}

// LoadFile opens path and decodes it via Load.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("modconfig: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// ImportAcceptDefault reports the configured default import-filter
// policy (true unless DefaultImportAccept explicitly overrides it).
func (c *Config) ImportAcceptDefault() bool {
	if c.DefaultImportAccept == nil {
		return true
	}
	return *c.DefaultImportAccept
}

// ExportAcceptDefault reports the configured default export-filter
// policy (false unless DefaultExportAccept explicitly overrides it).
func (c *Config) ExportAcceptDefault() bool {
	if c.DefaultExportAccept == nil {
		return false
	}
	return *c.DefaultExportAccept
}
