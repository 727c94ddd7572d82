package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
	"github.com/JerrySanjuJoanes/chaincred/pkg/config"
	"github.com/JerrySanjuJoanes/chaincred/pkg/gitlog"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		repoPath     string
		output       string
		gitPath      string
		technologies []string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a repository and save its snapshot",
		Long:  `Reads the git history and source tree of a repository and saves a repository analysis for later scoring.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), analyzeOpts{
				repoPath:     repoPath,
				output:       output,
				gitPath:      gitPath,
				technologies: technologies,
			})
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo-path", "", "Path to repository root (default: detect from working directory)")
	cmd.Flags().StringVar(&output, "output", "", "Output path (default: ~/.cache/chaincred/<repo>/analyses/<id>.json)")
	cmd.Flags().StringVar(&gitPath, "git-path", "", "Path to git binary")
	cmd.Flags().StringSliceVar(&technologies, "technologies", nil, "Technologies to collect evidence for (default: all known)")

	return cmd
}

type analyzeOpts struct {
	repoPath     string
	output       string
	gitPath      string
	technologies []string
}

func runAnalyze(ctx context.Context, opts analyzeOpts) error {
	repoRoot, err := resolveRepo(opts.repoPath)
	if err != nil {
		return err
	}

	cfg := loadConfig(repoRoot)

	technologies := opts.technologies
	if len(technologies) == 0 {
		technologies = cfg.Analysis.Technologies
	}

	analyzer := analysis.NewAnalyzer(technologies)
	analyzer.Git = &gitlog.Collector{GitPath: firstNonEmpty(opts.gitPath, cfg.Analysis.GitPath, "git")}

	fmt.Fprintf(os.Stderr, "Analyzing %s...\n", repoRoot)

	ra, err := analyzer.Analyze(ctx, repoRoot)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	outPath := opts.output
	if outPath == "" {
		outPath = filepath.Join(config.AnalysisDir(repoRoot), ra.ID+".json")
	}

	if err := analysis.SaveRepoAnalysis(outPath, ra); err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Analysis saved to %s\n", outPath)
	fmt.Fprintf(os.Stderr, "  Commits:      %d\n", ra.CommitCount())
	fmt.Fprintf(os.Stderr, "  Technologies: %d\n", len(ra.Facts))

	return nil
}

func resolveRepo(repoPath string) (string, error) {
	if repoPath != "" {
		abs, err := filepath.Abs(repoPath)
		if err != nil {
			return "", fmt.Errorf("resolving repo path: %w", err)
		}
		return config.FindRepoRoot(abs)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	return config.FindRepoRoot(cwd)
}

func loadConfig(repoRoot string) *config.Config {
	cfgFile := config.FindConfigFile(repoRoot)
	if cfgFile == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
