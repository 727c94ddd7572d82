package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JerrySanjuJoanes/chaincred/pkg/authorship"
	"github.com/JerrySanjuJoanes/chaincred/pkg/gitlog"
)

func newAuthorshipCmd() *cobra.Command {
	var (
		repoPath string
		gitPath  string
		top      int
	)

	cmd := &cobra.Command{
		Use:   "authorship",
		Short: "Show the authorship breakdown of a repository",
		Long:  `Reads the git history and prints each author's share of surviving line changes, with bot accounts flagged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthorship(cmd.Context(), authorshipOpts{
				repoPath: repoPath,
				gitPath:  gitPath,
				top:      top,
			})
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo-path", "", "Path to repository root (default: detect from working directory)")
	cmd.Flags().StringVar(&gitPath, "git-path", "", "Path to git binary")
	cmd.Flags().IntVar(&top, "top", 20, "Number of authors to show")

	return cmd
}

type authorshipOpts struct {
	repoPath string
	gitPath  string
	top      int
}

func runAuthorship(ctx context.Context, opts authorshipOpts) error {
	repoRoot, err := resolveRepo(opts.repoPath)
	if err != nil {
		return err
	}

	cfg := loadConfig(repoRoot)

	collector := &gitlog.Collector{GitPath: firstNonEmpty(opts.gitPath, cfg.Analysis.GitPath, "git")}
	changes, err := collector.Collect(ctx, repoRoot)
	if err != nil {
		return fmt.Errorf("collecting history: %w", err)
	}

	shares := authorship.Breakdown(changes, cfg.Classifier())
	if len(shares) == 0 {
		fmt.Fprintln(os.Stderr, "No commits found.")
		return nil
	}

	fmt.Printf("%-40s %10s %8s %8s\n", "AUTHOR", "LINES", "COMMITS", "SHARE")
	for i, s := range shares {
		if opts.top > 0 && i >= opts.top {
			fmt.Printf("... and %d more\n", len(shares)-i)
			break
		}
		name := s.Author.String()
		if s.IsBot {
			name += " (bot)"
		}
		fmt.Printf("%-40s %10d %8d %7.1f%%\n", name, s.Lines, s.Commits, s.Fraction*100)
	}

	return nil
}
