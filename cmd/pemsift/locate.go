package main

import (
	"fmt"

	"github.com/sensiblebit/pemsift/internal"
	"github.com/spf13/cobra"
)

var locateFile string

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the XML document embedded in a PEM container",
	Long:  "Decode a PEM container and print the located XML payload to stdout without converting it. Useful for checking what the converter would see.",
	Example: `  pemsift locate --file message.pem
  pemsift locate`,
	Args: cobra.NoArgs,
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().StringVarP(&locateFile, "file", "f", "", "Path to PEM file to inspect")

	registerCompletion(locateCmd, "file", fileCompletion)
}

func runLocate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	path, err := resolveInput(locateFile)
	if err != nil {
		return err
	}

	xmlDoc, err := internal.ExtractXML(path, cfg.BlockTypes)
	if err != nil {
		return err
	}

	fmt.Println(xmlDoc)
	return nil
}
