package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// registerCompletion registers a shell completion function for a flag on a
// command. It panics if the flag does not exist (programmer error).
func registerCompletion(cmd *cobra.Command, flagName string, completeFunc func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)) {
	if err := cmd.RegisterFlagCompletionFunc(flagName, completeFunc); err != nil {
		panic(fmt.Sprintf("%s --%s: %v", cmd.Name(), flagName, err))
	}
}

// fileCompletion is a shell completion function that suggests files using the
// shell's default file completion behavior.
func fileCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveDefault
}
