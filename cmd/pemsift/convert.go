package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sensiblebit/pemsift/internal"
	"github.com/spf13/cobra"
)

var convertFile string

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a PEM-embedded XML payload to CSV",
	Long:  "Extract the XML document embedded in a PEM container and write it as a flattened CSV file named after the input. Without --file, *.pem files in the working directory are listed for selection.",
	Example: `  pemsift convert --file message.pem
  pemsift convert`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertFile, "file", "f", "", "Path to PEM file to process")

	registerCompletion(convertCmd, "file", fileCompletion)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	path, err := resolveInput(convertFile)
	if err != nil {
		return err
	}
	cfg.InputPath = path

	catalog, err := internal.NewCatalog(dbPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()
	cfg.Catalog = catalog

	result, err := internal.ConvertFile(path, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Converted %s -> %s (%d columns)\n", result.InputPath, result.OutputPath, result.Columns)
	return nil
}

// resolveInput returns the file to process. An explicit path must exist.
// Without one, the *.pem files in the working directory are offered for
// selection; on a non-terminal stdin the first file is used.
func resolveInput(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("input file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	files, err := internal.FindPEMFiles(".")
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", errors.New("no PEM files found in current directory (use --file <path>)")
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return files[0], nil
	}
	return internal.ChooseFile(files, os.Stdin, os.Stderr)
}
