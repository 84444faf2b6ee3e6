package main

import (
	"errors"
	"fmt"

	"github.com/sensiblebit/pemsift/internal"
	"github.com/spf13/cobra"
)

var historyInput string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions",
	Long:  "List conversion records from the SQLite catalog, newest first. Requires a persistent catalog (--db).",
	Example: `  pemsift history --db catalog.db
  pemsift history --db catalog.db --input message.pem`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyInput, "input", "", "Only show conversions of this input path")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if dbPath == "" {
		return errors.New("history requires a persistent catalog: pass --db <path>")
	}

	catalog, err := internal.NewCatalog(dbPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()

	var recs []internal.ConversionRecord
	if historyInput != "" {
		recs, err = catalog.GetConversionsByInput(historyInput)
	} else {
		recs, err = catalog.GetAllConversions()
	}
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("No conversions recorded")
		return nil
	}
	for _, rec := range recs {
		fmt.Printf("%s  %s -> %s  root=%s columns=%d sha256=%s\n",
			rec.ConvertedAt, rec.InputPath, rec.OutputPath, rec.RootTag, rec.Columns, rec.CSVSHA256[:12])
	}
	return nil
}
