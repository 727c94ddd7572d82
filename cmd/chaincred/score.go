package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
	"github.com/JerrySanjuJoanes/chaincred/pkg/config"
	"github.com/JerrySanjuJoanes/chaincred/pkg/gitlog"
	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
	"github.com/JerrySanjuJoanes/chaincred/pkg/surface"
)

func newScoreCmd() *cobra.Command {
	var (
		name          string
		email         string
		repos         []string
		analysisFiles []string
		technologies  []string
		gitPath       string
		output        string
		savePath      string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a contributor's skills across repositories",
		Long: `Analyzes one or more repositories (or loads saved analyses), computes the
contributor's authorship in each, and aggregates technology skill scores.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), scoreOpts{
				name:          name,
				email:         email,
				repos:         repos,
				analysisFiles: analysisFiles,
				technologies:  technologies,
				gitPath:       gitPath,
				output:        output,
				savePath:      savePath,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Contributor name (default: git config user.name)")
	cmd.Flags().StringVar(&email, "email", "", "Contributor email (default: git config user.email)")
	cmd.Flags().StringSliceVar(&repos, "repo", nil, "Repository path to analyze (repeatable)")
	cmd.Flags().StringSliceVar(&analysisFiles, "analysis", nil, "Saved analysis file to load (repeatable)")
	cmd.Flags().StringSliceVar(&technologies, "technologies", nil, "Technologies to score (default: all known)")
	cmd.Flags().StringVar(&gitPath, "git-path", "", "Path to git binary")
	cmd.Flags().StringVar(&output, "output", "text", "Output format: text, json, or markdown")
	cmd.Flags().StringVar(&savePath, "save", "", "Also save the report JSON to this path")

	return cmd
}

type scoreOpts struct {
	name          string
	email         string
	repos         []string
	analysisFiles []string
	technologies  []string
	gitPath       string
	output        string
	savePath      string
}

func runScore(ctx context.Context, opts scoreOpts) error {
	if len(opts.repos) == 0 && len(opts.analysisFiles) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		opts.repos = []string{cwd}
	}

	var cfgRoot string
	if len(opts.repos) > 0 {
		root, err := resolveRepo(opts.repos[0])
		if err != nil {
			return err
		}
		cfgRoot = root
	} else {
		cfgRoot, _ = os.Getwd()
	}
	cfg := loadConfig(cfgRoot)

	contributor, err := resolveContributor(ctx, opts, cfgRoot)
	if err != nil {
		return err
	}

	analyses, err := collectAnalyses(ctx, opts, cfg)
	if err != nil {
		return err
	}

	registry, err := cfg.Registry()
	if err != nil {
		return fmt.Errorf("building technology registry: %w", err)
	}

	technologies := opts.technologies
	if len(technologies) == 0 {
		technologies = cfg.Analysis.Technologies
	}

	capper, err := cfg.Capper()
	if err != nil {
		return fmt.Errorf("building confidence tiers: %w", err)
	}

	pipeline := analysis.NewPipeline(registry, capper, cfg.Classifier())
	report, err := pipeline.Run(contributor, analyses, technologies)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	if opts.savePath != "" {
		if err := analysis.SaveReport(opts.savePath, report); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report saved to %s\n", opts.savePath)
	}

	renderer, err := rendererFor(opts.output)
	if err != nil {
		return err
	}
	return renderer.Render(os.Stdout, report)
}

// collectAnalyses loads saved analyses and analyzes live repositories in
// parallel, preserving the order the repos were given in.
func collectAnalyses(ctx context.Context, opts scoreOpts, cfg *config.Config) ([]*analysis.RepoAnalysis, error) {
	var analyses []*analysis.RepoAnalysis

	for _, path := range opts.analysisFiles {
		ra, err := analysis.LoadRepoAnalysis(path)
		if err != nil {
			return nil, fmt.Errorf("loading analysis %s: %w", path, err)
		}
		analyses = append(analyses, ra)
	}

	fromRepos := make([]*analysis.RepoAnalysis, len(opts.repos))
	g, gctx := errgroup.WithContext(ctx)
	for i, repoPath := range opts.repos {
		g.Go(func() error {
			root, err := resolveRepo(repoPath)
			if err != nil {
				return err
			}

			analyzer := analysis.NewAnalyzer(opts.technologies)
			analyzer.Git = &gitlog.Collector{GitPath: firstNonEmpty(opts.gitPath, cfg.Analysis.GitPath, "git")}

			ra, err := analyzer.Analyze(gctx, root)
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", root, err)
			}

			fromRepos[i] = ra
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analyses = append(analyses, fromRepos...)
	return analyses, nil
}

// resolveContributor fills in name and email from git config when flags are
// not given.
func resolveContributor(ctx context.Context, opts scoreOpts, repoRoot string) (identity.Identity, error) {
	name := opts.name
	email := opts.email

	if name == "" {
		name, _ = gitConfigValue(ctx, repoRoot, "user.name")
	}
	if email == "" {
		email, _ = gitConfigValue(ctx, repoRoot, "user.email")
	}

	if email == "" {
		return identity.Identity{}, fmt.Errorf("contributor email required: pass --email or set git config user.email")
	}
	return identity.Identity{Name: name, Email: email}, nil
}

func gitConfigValue(ctx context.Context, dir, key string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "config", "--get", key)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func rendererFor(format string) (surface.Renderer, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return &surface.TerminalRenderer{}, nil
	case "json":
		return &surface.JSONRenderer{}, nil
	case "markdown", "md":
		return &surface.MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json, or markdown)", format)
	}
}
