// Package static implements evidence.Collector by walking a repository
// checkout and matching per-technology detection profiles: file extensions,
// content patterns, and package/config marker files.
package static

// Profile declares how to detect one technology in a source tree.
type Profile struct {
	Technology string

	// Extensions counted into files_of_type and loc_with_technology, and
	// scanned for content patterns (leading dot included).
	Extensions []string

	// DependencyFiles are package manifests whose presence (and, when
	// DependencyMatch is non-empty, whose content) sets dependency_present.
	DependencyFiles []string
	DependencyMatch []string

	// ConfigFiles set config_present by name.
	ConfigFiles []string

	// Patterns maps a fact key suffix to content substrings; hits across all
	// matching files accumulate into "pattern:<suffix>".
	Patterns map[string][]string

	// FileNamePatterns maps a fact key suffix to exact file names; each match
	// counts one into "pattern:<suffix>" (e.g. Django apps via models.py).
	FileNamePatterns map[string][]string

	// PairExtensions, when set, records min(count(a), count(b)) into
	// "pattern:header_pairs" (C header/source pairing).
	PairExtensions [2]string
}

// DefaultProfiles returns the detection profiles for all technologies
// covered by the default rule tables.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Technology:      "React",
			Extensions:      []string{".jsx", ".tsx", ".js", ".ts"},
			DependencyFiles: []string{"package.json"},
			DependencyMatch: []string{`"react"`},
			Patterns: map[string][]string{
				"hooks": {"useState(", "useEffect(", "useContext(", "useReducer("},
			},
		},
		{
			Technology:      "Django",
			Extensions:      []string{".py"},
			DependencyFiles: []string{"requirements.txt", "pyproject.toml", "Pipfile"},
			DependencyMatch: []string{"django"},
			Patterns: map[string][]string{
				"orm":  {"models.Model", ".objects.", ".filter(", ".get("},
				"rest": {"APIView", "Serializer", "status.HTTP_", "ViewSet"},
			},
			FileNamePatterns: map[string][]string{
				"apps": {"models.py"},
			},
		},
		{
			Technology:      "NodeJS",
			Extensions:      []string{".js", ".mjs", ".cjs"},
			DependencyFiles: []string{"package.json", "package-lock.json", "yarn.lock"},
			Patterns: map[string][]string{
				"api":        {"app.get(", "app.post(", "app.put(", "app.delete(", "router."},
				"middleware": {"app.use(", "next(", "middleware"},
			},
		},
		{
			Technology:      "TailwindCSS",
			Extensions:      []string{".css", ".html", ".jsx", ".tsx", ".vue"},
			DependencyFiles: []string{"package.json"},
			DependencyMatch: []string{"tailwindcss"},
			ConfigFiles:     []string{"tailwind.config.js", "tailwind.config.ts", "tailwind.config.cjs"},
			Patterns: map[string][]string{
				"utilities": {"@tailwind", "flex ", "grid ", "text-", "bg-"},
			},
		},
		{
			Technology: "Python",
			Extensions: []string{".py"},
			FileNamePatterns: map[string][]string{
				"structure": {"__init__.py", "setup.py", "pyproject.toml", "requirements.txt"},
			},
		},
		{
			Technology: "JavaScript",
			Extensions: []string{".js", ".mjs", ".cjs"},
			Patterns: map[string][]string{
				"modern": {"=>", "async ", "await ", "import ", "export "},
			},
		},
		{
			Technology:  "TypeScript",
			Extensions:  []string{".ts", ".tsx"},
			ConfigFiles: []string{"tsconfig.json"},
			Patterns: map[string][]string{
				"types": {": string", ": number", "interface ", "type ", ": boolean"},
			},
		},
		{
			Technology: "C",
			Extensions: []string{".c", ".h"},
			Patterns: map[string][]string{
				"memory": {"malloc(", "free(", "calloc(", "realloc("},
			},
			PairExtensions: [2]string{".c", ".h"},
		},
		{
			Technology: "C++",
			Extensions: []string{".cpp", ".hpp", ".cc", ".cxx"},
			Patterns: map[string][]string{
				"oop": {"class ", "public:", "private:", "protected:", "virtual "},
				"stl": {"std::", "#include <vector>", "#include <map>", "#include <algorithm>"},
			},
		},
	}
}
