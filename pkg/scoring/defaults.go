package scoring

import "github.com/JerrySanjuJoanes/chaincred/pkg/evidence"

// Default bucket tables. Threshold values are policy, not architecture:
// operators can retune every table via configuration without touching the
// evaluator.

// authorshipCriterion is the shared fifth criterion: the only one reading
// the authorship fraction directly.
func authorshipCriterion() Criterion {
	return Criterion{
		Key:    "authorship_confidence",
		Name:   "Authorship confidence",
		Source: SourceAuthorship,
		Buckets: []Bucket{
			{Threshold: 0.30, Score: 6},
			{Threshold: 0.50, Score: 12},
			{Threshold: 0.70, Score: 20},
		},
	}
}

func commitMaturity(buckets ...Bucket) Criterion {
	return Criterion{
		Key:     "git_maturity",
		Name:    "Git maturity",
		Source:  SourceCommitCount,
		Buckets: buckets,
	}
}

func steps(t1, t2, t3 float64) []Bucket {
	return []Bucket{
		{Threshold: t1, Score: 6},
		{Threshold: t2, Score: 12},
		{Threshold: t3, Score: 20},
	}
}

// DefaultRuleSets returns the standard rule tables for all supported
// technologies.
func DefaultRuleSets() []RuleSet {
	return []RuleSet{
		{
			Technology: "React",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "react_presence", Name: "React presence", Source: SourceFactFlag,
					FactKey: evidence.FactDependencyPresent, Unit: "React dependencies",
					Buckets: []Bucket{{Threshold: 1, Score: 20}}},
				{Key: "hooks_usage", Name: "Hooks usage", Source: SourceFactCount,
					FactKey: "pattern:hooks", Unit: "hook usages", Buckets: steps(1, 5, 10)},
				{Key: "project_size", Name: "Project size", Source: SourceFactCount,
					FactKey: evidence.FactLOCWithTechnology, Unit: "lines of code",
					Buckets: steps(500, 1500, 3000)},
				commitMaturity(steps(5, 15, 30)...),
				authorshipCriterion(),
			},
		},
		{
			Technology: "Django",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "django_presence", Name: "Django presence", Source: SourceFactFlag,
					FactKey: evidence.FactDependencyPresent, Unit: "Django dependencies",
					Buckets: []Bucket{{Threshold: 1, Score: 20}}},
				{Key: "app_structure", Name: "App structure", Source: SourceFactCount,
					FactKey: "pattern:apps", Unit: "Django apps", Buckets: steps(1, 2, 3)},
				{Key: "orm_usage", Name: "ORM usage", Source: SourceFactCount,
					FactKey: "pattern:orm", Unit: "ORM patterns", Buckets: steps(1, 5, 10)},
				{Key: "rest_practices", Name: "REST practices", Source: SourceFactCount,
					FactKey: "pattern:rest", Unit: "REST patterns", Buckets: steps(1, 4, 8)},
				authorshipCriterion(),
			},
		},
		{
			Technology: "NodeJS",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "node_presence", Name: "Node.js presence", Source: SourceFactFlag,
					FactKey: evidence.FactDependencyPresent, Unit: "Node.js package files",
					Buckets: []Bucket{{Threshold: 1, Score: 20}}},
				{Key: "api_design", Name: "API design", Source: SourceFactCount,
					FactKey: "pattern:api", Unit: "API endpoints", Buckets: steps(3, 8, 15)},
				{Key: "middleware_usage", Name: "Middleware usage", Source: SourceFactCount,
					FactKey: "pattern:middleware", Unit: "middleware patterns", Buckets: steps(1, 5, 10)},
				commitMaturity(steps(5, 12, 25)...),
				authorshipCriterion(),
			},
		},
		{
			Technology: "TailwindCSS",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "tailwind_presence", Name: "Tailwind presence", Source: SourceFactFlag,
					FactKey: evidence.FactDependencyPresent, Unit: "Tailwind dependencies",
					Buckets: []Bucket{{Threshold: 1, Score: 20}}},
				{Key: "config_quality", Name: "Config quality", Source: SourceFactFlag,
					FactKey: evidence.FactConfigPresent, Unit: "tailwind config",
					Buckets: []Bucket{{Threshold: 1, Score: 20}}},
				{Key: "utility_usage", Name: "Utility usage", Source: SourceFactCount,
					FactKey: "pattern:utilities", Unit: "utility class usages", Buckets: steps(3, 10, 20)},
				commitMaturity(steps(5, 10, 20)...),
				authorshipCriterion(),
			},
		},
		{
			Technology: "Python",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "python_presence", Name: "Python presence", Source: SourceFactCount,
					FactKey: evidence.FactFilesOfType, Unit: "Python files", Buckets: steps(1, 5, 10)},
				{Key: "python_structure", Name: "Project structure", Source: SourceFactCount,
					FactKey: "pattern:structure", Unit: "structure files", Buckets: steps(1, 2, 3)},
				{Key: "project_size", Name: "Project size", Source: SourceFactCount,
					FactKey: evidence.FactLOCWithTechnology, Unit: "lines of code",
					Buckets: steps(200, 800, 2000)},
				commitMaturity(steps(5, 12, 25)...),
				authorshipCriterion(),
			},
		},
		{
			Technology: "JavaScript",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "js_presence", Name: "JavaScript presence", Source: SourceFactCount,
					FactKey: evidence.FactFilesOfType, Unit: "JS files", Buckets: steps(3, 8, 15)},
				{Key: "modern_js_usage", Name: "Modern JS usage", Source: SourceFactCount,
					FactKey: "pattern:modern", Unit: "modern JS patterns", Buckets: steps(3, 10, 20)},
				{Key: "project_size", Name: "Project size", Source: SourceFactCount,
					FactKey: evidence.FactLOCWithTechnology, Unit: "lines of code",
					Buckets: steps(500, 1500, 3000)},
				commitMaturity(steps(6, 15, 30)...),
				authorshipCriterion(),
			},
		},
		{
			Technology: "TypeScript",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "ts_presence", Name: "TypeScript presence", Source: SourceFactCount,
					FactKey: evidence.FactFilesOfType, Unit: "TS files", Buckets: steps(1, 5, 10)},
				{Key: "type_safety", Name: "Type safety", Source: SourceFactCount,
					FactKey: "pattern:types", Unit: "type annotations", Buckets: steps(3, 10, 20)},
				{Key: "config_quality", Name: "Config quality", Source: SourceFactFlag,
					FactKey: evidence.FactConfigPresent, Unit: "tsconfig.json",
					Buckets: []Bucket{{Threshold: 1, Score: 20}}},
				commitMaturity(steps(5, 12, 25)...),
				authorshipCriterion(),
			},
		},
		{
			Technology: "C",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "c_presence", Name: "C presence", Source: SourceFactCount,
					FactKey: evidence.FactFilesOfType, Unit: "C files", Buckets: steps(1, 5, 10)},
				{Key: "pointer_usage", Name: "Memory management", Source: SourceFactCount,
					FactKey: "pattern:memory", Unit: "memory operations", Buckets: steps(3, 7, 15)},
				{Key: "modular_design", Name: "Modular design", Source: SourceFactCount,
					FactKey: "pattern:header_pairs", Unit: "header/source pairs", Buckets: steps(1, 3, 5)},
				commitMaturity(steps(4, 10, 20)...),
				authorshipCriterion(),
			},
		},
		{
			Technology: "C++",
			Criteria: [CriteriaPerSkill]Criterion{
				{Key: "cpp_presence", Name: "C++ presence", Source: SourceFactCount,
					FactKey: evidence.FactFilesOfType, Unit: "C++ files", Buckets: steps(1, 5, 10)},
				{Key: "oop_usage", Name: "OOP usage", Source: SourceFactCount,
					FactKey: "pattern:oop", Unit: "OOP patterns", Buckets: steps(3, 7, 15)},
				{Key: "stl_usage", Name: "STL usage", Source: SourceFactCount,
					FactKey: "pattern:stl", Unit: "STL usages", Buckets: steps(1, 5, 10)},
				commitMaturity(steps(4, 10, 20)...),
				authorshipCriterion(),
			},
		},
	}
}

// DefaultRegistry builds a registry from DefaultRuleSets. The defaults are
// statically valid, so this never fails.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultRuleSets()...)
	if err != nil {
		panic(err)
	}
	return r
}
