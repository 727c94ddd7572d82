package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/JerrySanjuJoanes/chaincred/pkg/authorship"
	"github.com/JerrySanjuJoanes/chaincred/pkg/evidence"
	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
	"github.com/JerrySanjuJoanes/chaincred/pkg/scoring"
)

// smallRepoCommits is the history size under which scores get a reliability
// warning.
const smallRepoCommits = 10

// SkillReport is the final output for one contributor across all analyzed
// repositories.
type SkillReport struct {
	Contributor  identity.Identity              `json:"contributor"`
	GeneratedAt  time.Time                      `json:"generated_at"`
	Repositories []RepoSummary                  `json:"repositories"`
	Skills       []scoring.AggregatedSkillScore `json:"skills"`
	Failures     []Failure                      `json:"failures,omitempty"`
	Warnings     []string                       `json:"warnings,omitempty"`
}

// RepoSummary is the authorship view of one analyzed repository.
type RepoSummary struct {
	ID           string  `json:"id"`
	RepoName     string  `json:"repo_name"`
	Commits      int     `json:"commits"`
	HumanCommits int     `json:"human_commits"`
	BotCommits   int     `json:"bot_commits"`
	Authorship   float64 `json:"authorship"`
	NoHumanLines bool    `json:"no_human_lines,omitempty"`
}

// Failure records one (technology, repository) scoring error. Failures are
// isolated: a bad rule table or corrupt fact bag skips that pair and the rest
// of the report still builds.
type Failure struct {
	RepoName   string `json:"repo_name"`
	Technology string `json:"technology"`
	Message    string `json:"message"`
}

// skillEvaluator is the evaluation seam, satisfied by scoring.Evaluator.
type skillEvaluator interface {
	Evaluate(technology string, facts evidence.Facts, meta scoring.RepoMeta) (*scoring.Evaluation, error)
}

// Pipeline runs the full scoring flow over captured snapshots.
type Pipeline struct {
	registry   *scoring.Registry
	evaluator  skillEvaluator
	capper     *scoring.Capper
	classifier *identity.Classifier
}

// NewPipeline wires a pipeline. Nil arguments fall back to the defaults.
func NewPipeline(registry *scoring.Registry, capper *scoring.Capper, classifier *identity.Classifier) *Pipeline {
	if registry == nil {
		registry = scoring.DefaultRegistry()
	}
	if capper == nil {
		capper = scoring.NewCapper(nil)
	}
	if classifier == nil {
		classifier = identity.NewClassifier(nil)
	}
	return &Pipeline{
		registry:   registry,
		evaluator:  scoring.NewEvaluator(registry),
		capper:     capper,
		classifier: classifier,
	}
}

// Run scores contributor across the given snapshots. An empty technologies
// list scores every registered technology; an unregistered name in an
// explicit list gets one failure entry and skips only that technology.
func (p *Pipeline) Run(contributor identity.Identity, repos []*RepoAnalysis, technologies []string) (*SkillReport, error) {
	report := &SkillReport{
		Contributor: contributor,
		GeneratedAt: time.Now().UTC(),
	}

	if len(technologies) == 0 {
		technologies = p.registry.Technologies()
	} else {
		known := make([]string, 0, len(technologies))
		for _, tech := range technologies {
			if _, err := p.registry.Lookup(tech); err != nil {
				report.Failures = append(report.Failures, Failure{
					Technology: tech,
					Message:    err.Error(),
				})
				continue
			}
			known = append(known, tech)
		}
		sort.Strings(known)
		technologies = known
	}

	fractions := make([]authorship.Fraction, len(repos))
	for i, repo := range repos {
		frac := authorship.Compute(repo.Changes, contributor, p.classifier)
		fractions[i] = frac

		report.Repositories = append(report.Repositories, RepoSummary{
			ID:           repo.ID,
			RepoName:     repo.RepoName,
			Commits:      repo.CommitCount(),
			HumanCommits: frac.HumanCommits,
			BotCommits:   frac.BotCommits,
			Authorship:   frac.Value,
			NoHumanLines: frac.NoHumanLines,
		})
		report.Warnings = append(report.Warnings, repoWarnings(repo, frac, p.classifier)...)
	}

	for _, tech := range technologies {
		perRepo := make([]scoring.RepoSkillScore, 0, len(repos))
		for i, repo := range repos {
			frac := fractions[i]
			facts := repo.Facts[tech]

			eval, err := p.evaluator.Evaluate(tech, facts, scoring.RepoMeta{
				CommitCount: repo.CommitsBy(contributor),
				Authorship:  frac.Value,
			})
			if err != nil {
				report.Failures = append(report.Failures, Failure{
					RepoName: repo.RepoName, Technology: tech,
					Message: fmt.Sprintf("evaluating: %v", err),
				})
				continue
			}

			capped, err := p.capper.Cap(eval.SubScore, frac.Value)
			if err != nil {
				report.Failures = append(report.Failures, Failure{
					RepoName: repo.RepoName, Technology: tech,
					Message: fmt.Sprintf("capping: %v", err),
				})
				continue
			}

			perRepo = append(perRepo, scoring.RepoSkillScore{
				RepoID:     repo.RepoName,
				Technology: tech,
				SubScore:   eval.SubScore,
				Capped:     capped,
				Authorship: frac.Value,
				Detected:   eval.Detected,
				Trail:      eval.Trail,
			})
		}

		agg, err := scoring.Aggregate(tech, perRepo)
		if err != nil {
			report.Failures = append(report.Failures, Failure{
				Technology: tech,
				Message:    fmt.Sprintf("aggregating: %v", err),
			})
			continue
		}
		report.Skills = append(report.Skills, *agg)
	}

	return report, nil
}

func repoWarnings(repo *RepoAnalysis, frac authorship.Fraction, classifier *identity.Classifier) []string {
	var warnings []string
	if frac.BotCommits > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"repository %s: %d bot commits excluded from authorship", repo.RepoName, frac.BotCommits))
	}
	if frac.NoHumanLines && repo.CommitCount() > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"repository %s: no human-attributed line changes", repo.RepoName))
	}
	if n := repo.CommitCount(); n > 0 && n < smallRepoCommits {
		warnings = append(warnings, fmt.Sprintf(
			"repository %s: only %d commits, scores may be unreliable", repo.RepoName, n))
	}
	if humans := humanAuthorCount(repo, classifier); humans == 1 {
		warnings = append(warnings, fmt.Sprintf(
			"repository %s: single human contributor", repo.RepoName))
	}
	return warnings
}

func humanAuthorCount(repo *RepoAnalysis, classifier *identity.Classifier) int {
	n := 0
	for _, s := range authorship.Breakdown(repo.Changes, classifier) {
		if !s.IsBot {
			n++
		}
	}
	return n
}
