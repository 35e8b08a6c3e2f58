package modconfig_test

import (
	"strings"
	"testing"

	"github.com/aloubyansky/jboss-modules/internal/modconfig"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := modconfig.Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.AllowRedefine {
		t.Errorf("AllowRedefine should default to false")
	}
	if !cfg.ImportAcceptDefault() {
		t.Errorf("ImportAcceptDefault should default to true")
	}
	if cfg.ExportAcceptDefault() {
		t.Errorf("ExportAcceptDefault should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	const doc = `
searchRoots:
  - /opt/modules
  - /opt/modules-extra
allowRedefine: true
defaultExportAccept: true
logLevel: debug
`
	cfg, err := modconfig.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.SearchRoots) != 2 {
		t.Fatalf("SearchRoots = %v", cfg.SearchRoots)
	}
	if !cfg.AllowRedefine {
		t.Errorf("AllowRedefine should be true")
	}
	if !cfg.ExportAcceptDefault() {
		t.Errorf("ExportAcceptDefault override should be true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	const doc = "notAField: true\n"
	if _, err := modconfig.Load(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}
