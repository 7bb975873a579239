package analysis

import (
	"path"
	"sort"
	"strings"
)

const (
	maxLanguages = 3
	noExtension  = "no-ext"
)

var extensionLanguages = map[string]string{
	"py":         "Python",
	"js":         "JavaScript",
	"jsx":        "React/JavaScript",
	"ts":         "TypeScript",
	"tsx":        "React/TypeScript",
	"java":       "Java",
	"cpp":        "C++",
	"c":          "C",
	"cs":         "C#",
	"php":        "PHP",
	"rb":         "Ruby",
	"go":         "Go",
	"rs":         "Rust",
	"swift":      "Swift",
	"kt":         "Kotlin",
	"html":       "HTML",
	"css":        "CSS",
	"scss":       "SCSS",
	"md":         "Markdown",
	"json":       "JSON",
	"xml":        "XML",
	"yaml":       "YAML",
	"yml":        "YAML",
	"sql":        "SQL",
	"sh":         "Shell",
	"dockerfile": "Docker",
}

// * extension returns the lower-cased extension of the file name in p.
// * A bare "Dockerfile" counts as its own extension.
func extension(p string) string {
	base := strings.ToLower(path.Base(p))
	if i := strings.LastIndex(base, "."); i >= 0 {
		return base[i+1:]
	}
	if _, ok := extensionLanguages[base]; ok {
		return base
	}
	return noExtension
}

func languageFor(ext string) string {
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return strings.ToUpper(ext)
}

// * PrimaryLanguages tallies extensions over distinct files and returns the
// * labels of the three most common, ties broken by extension.
func PrimaryLanguages(files []string) []string {
	counts := make(map[string]int)
	for _, f := range files {
		counts[extension(f)]++
	}

	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if counts[exts[i]] != counts[exts[j]] {
			return counts[exts[i]] > counts[exts[j]]
		}
		return exts[i] < exts[j]
	})

	// * yml and yaml share a label, so duplicates are skipped
	languages := make([]string, 0, maxLanguages)
	seen := make(map[string]bool)
	for _, ext := range exts {
		lang := languageFor(ext)
		if seen[lang] {
			continue
		}
		seen[lang] = true
		languages = append(languages, lang)
		if len(languages) == maxLanguages {
			break
		}
	}
	return languages
}
