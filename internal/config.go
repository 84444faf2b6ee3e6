package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sensiblebit/pemsift"
)

// ConverterConfig represents the optional converter configuration file.
type ConverterConfig struct {
	// BlockTypes are additional PEM block types to search beyond the
	// defaults (CMS, PKCS7, CERTIFICATE).
	BlockTypes []string `yaml:"blockTypes,omitempty"`
	// OutDir places generated CSV files in a directory instead of next to
	// their inputs.
	OutDir string `yaml:"outDir,omitempty"`
}

// LoadConverterConfig loads converter configuration from the specified YAML
// file. The returned block type list always includes the defaults, with any
// configured extras appended in order and duplicates removed.
func LoadConverterConfig(path string) (*ConverterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ConverterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.BlockTypes = mergeBlockTypes(cfg.BlockTypes)
	return &cfg, nil
}

// mergeBlockTypes prepends the default block types to extras, removing
// duplicates while preserving order.
func mergeBlockTypes(extra []string) []string {
	all := append(pemsift.DefaultBlockTypes(), extra...)
	seen := make(map[string]bool, len(all))
	merged := make([]string, 0, len(all))
	for _, t := range all {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}
	return merged
}
