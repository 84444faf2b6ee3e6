package internal

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pemsift.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConverterConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "blockTypes:\n  - SIGNED MESSAGE\noutDir: ./converted\n")

	cfg, err := LoadConverterConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"CMS", "PKCS7", "CERTIFICATE", "SIGNED MESSAGE"}
	if !reflect.DeepEqual(cfg.BlockTypes, want) {
		t.Errorf("BlockTypes = %v, want %v", cfg.BlockTypes, want)
	}
	if cfg.OutDir != "./converted" {
		t.Errorf("OutDir = %q, want ./converted", cfg.OutDir)
	}
}

func TestLoadConverterConfig_defaultsOnly(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "{}\n")

	cfg, err := LoadConverterConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg.BlockTypes, []string{"CMS", "PKCS7", "CERTIFICATE"}) {
		t.Errorf("BlockTypes = %v, want defaults", cfg.BlockTypes)
	}
}

func TestLoadConverterConfig_duplicateOfDefaultIgnored(t *testing.T) {
	// WHY: A config listing a default type again must not produce a
	// duplicate entry in the search list.
	t.Parallel()
	path := writeConfig(t, "blockTypes: [CMS, EXTRA]\n")

	cfg, err := LoadConverterConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"CMS", "PKCS7", "CERTIFICATE", "EXTRA"}
	if !reflect.DeepEqual(cfg.BlockTypes, want) {
		t.Errorf("BlockTypes = %v, want %v", cfg.BlockTypes, want)
	}
}

func TestLoadConverterConfig_missingFile(t *testing.T) {
	t.Parallel()
	if _, err := LoadConverterConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadConverterConfig_invalidYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "blockTypes: [unterminated\n")
	if _, err := LoadConverterConfig(path); err == nil {
		t.Fatal("expected error")
	}
}
