// Package main provides the chaincred CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "chaincred",
		Short: "Verifiable skill scores from git history",
		Long: `ChainCred analyzes git repositories, measures a contributor's authorship,
and scores their technology skills from observable evidence.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newScoreCmd(),
		newAuthorshipCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
