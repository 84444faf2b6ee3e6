package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sensiblebit/pemsift"
)

// ErrNoData is returned when the located XML document flattens to zero
// entries, so there is nothing to write as CSV.
var ErrNoData = errors.New("no data to convert to CSV")

// ConvertResult holds the outcome of one PEM-to-CSV conversion.
type ConvertResult struct {
	InputPath  string
	OutputPath string
	RootTag    string
	Columns    int
	CSV        string
}

// ConvertFile runs the full pipeline on one PEM file: decode the PEM body,
// locate the embedded XML, flatten it, and write the CSV next to the input
// (or into cfg.OutDir when set) with the extension replaced by ".csv".
// Fail-fast: any error aborts the conversion with no partial output.
func ConvertFile(path string, cfg *Config) (*ConvertResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	csvText, rootTag, columns, err := convertData(data, cfg.BlockTypes)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}

	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", cfg.OutDir, err)
		}
	}
	outPath := CSVPath(path, cfg.OutDir)
	if err := os.WriteFile(outPath, []byte(csvText), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}
	slog.Info("conversion complete", "input", path, "output", outPath, "root", rootTag, "columns", columns)
	logPreview(csvText)

	result := &ConvertResult{
		InputPath:  path,
		OutputPath: outPath,
		RootTag:    rootTag,
		Columns:    columns,
		CSV:        csvText,
	}

	if cfg.Catalog != nil {
		sum := sha256.Sum256([]byte(csvText))
		rec := ConversionRecord{
			InputPath:   path,
			OutputPath:  outPath,
			RootTag:     rootTag,
			Columns:     columns,
			CSVSHA256:   hex.EncodeToString(sum[:]),
			ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := cfg.Catalog.InsertConversion(rec); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// ExtractXML decodes a PEM body and returns the embedded XML document
// without converting it.
func ExtractXML(path string, blockTypes []string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	der, err := pemsift.DecodePEM(data, blockTypes)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	xmlDoc, err := pemsift.LocateXML(der)
	if err != nil {
		return "", fmt.Errorf("locating XML in %s: %w", path, err)
	}
	return xmlDoc, nil
}

// convertData converts raw PEM text to CSV text, returning the root tag
// name and the column count alongside.
func convertData(data []byte, blockTypes []string) (csvText, rootTag string, columns int, err error) {
	der, err := pemsift.DecodePEM(data, blockTypes)
	if err != nil {
		return "", "", 0, err
	}
	xmlDoc, err := pemsift.LocateXML(der)
	if err != nil {
		return "", "", 0, err
	}
	tree, err := ParseXML(xmlDoc)
	if err != nil {
		return "", "", 0, err
	}
	rec, err := Flatten(tree)
	if err != nil {
		return "", "", 0, err
	}
	if rec.Len() == 0 {
		return "", "", 0, ErrNoData
	}
	if keys := tree.Keys(); len(keys) > 0 {
		rootTag = keys[0]
	}
	return EncodeCSV([]*FlatRecord{rec}), rootTag, rec.Len(), nil
}

// CSVPath derives the output path for an input file by replacing its
// extension with ".csv". When outDir is non-empty the file is placed there
// instead of next to the input.
func CSVPath(inputPath, outDir string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	if outDir == "" {
		return base
	}
	return filepath.Join(outDir, filepath.Base(base))
}

// logPreview logs the first few lines of the generated CSV at debug level.
func logPreview(csvText string) {
	const maxLines = 5
	lines := strings.Split(csvText, "\n")
	for i, line := range lines {
		if i == maxLines {
			slog.Debug("preview truncated", "remaining_lines", len(lines)-maxLines)
			break
		}
		slog.Debug("csv preview", "line", i+1, "text", line)
	}
}
