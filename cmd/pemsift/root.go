package main

import (
	"github.com/sensiblebit/pemsift"
	"github.com/sensiblebit/pemsift/internal"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	dbPath     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "pemsift",
	Short: "Extract XML payloads from PEM containers into CSV",
	Long:  "Extract XML documents embedded in ASN.1-encoded PEM containers (CMS, PKCS#7, X.509) and flatten them into tabular CSV rows.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetupLogger(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite catalog path (default: in-memory)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to converter config YAML")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig builds the runtime configuration from the persistent flags,
// applying the optional YAML config file when given.
func loadConfig() (*internal.Config, error) {
	cfg := &internal.Config{BlockTypes: pemsift.DefaultBlockTypes()}
	if configPath != "" {
		fileCfg, err := internal.LoadConverterConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg.BlockTypes = fileCfg.BlockTypes
		cfg.OutDir = fileCfg.OutDir
	}
	return cfg, nil
}
