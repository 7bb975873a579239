package analysis

import (
	"fmt"
	"sort"
	"strings"
)

const (
	maxCategories = 3
	maxKeyAreas   = 5
)

type category struct {
	label    string
	keywords []string
}

// * Declaration order is the tie-break when two categories have the same hit count
var functionalityCategories = []category{
	{label: "feature", keywords: []string{"add", "implement", "create", "new", "feature"}},
	{label: "bugfix", keywords: []string{"fix", "bug", "error", "issue", "resolve"}},
	{label: "refactor", keywords: []string{"refactor", "cleanup", "reorganize", "improve"}},
	{label: "ui", keywords: []string{"ui", "frontend", "css", "style", "design", "interface"}},
	{label: "backend", keywords: []string{"api", "backend", "server", "database", "endpoint"}},
	{label: "test", keywords: []string{"test", "testing", "spec", "unit", "integration"}},
	{label: "docs", keywords: []string{"doc", "readme", "documentation", "comment"}},
	{label: "config", keywords: []string{"config", "setup", "deploy", "build", "ci"}},
}

type areaRule struct {
	area     string
	contains []string
	suffixes []string
}

func (r areaRule) matches(s string) bool {
	for _, kw := range r.contains {
		if strings.Contains(s, kw) {
			return true
		}
	}
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

var fileAreaRules = []areaRule{
	{area: "Frontend", contains: []string{"frontend", "src", "components", "ui"}},
	{area: "Backend", contains: []string{"backend", "api", "server"}},
	{area: "Testing", contains: []string{"test", "spec"}},
	{area: "Configuration", contains: []string{"config", "setup", ".yml", ".yaml", "docker"}},
	{area: "Documentation", suffixes: []string{".md", ".txt", ".rst"}},
	{area: "Styling", contains: []string{"css", "scss", "style"}},
	{area: "Core Development", suffixes: []string{".py", ".js", ".ts", ".jsx", ".tsx"}},
}

var messageAreaRules = []areaRule{
	{area: "Database", contains: []string{"database", "db", "sql"}},
	{area: "Security", contains: []string{"security", "auth", "login"}},
	{area: "Performance", contains: []string{"performance", "optimize"}},
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// * TopCategories returns up to three matched categories, most hits first.
// * A message counts at most once per category.
func TopCategories(messages []string) []string {
	counts := make([]int, len(functionalityCategories))
	for _, msg := range messages {
		lower := strings.ToLower(msg)
		for i, c := range functionalityCategories {
			if containsAny(lower, c.keywords) {
				counts[i]++
			}
		}
	}

	order := make([]int, len(functionalityCategories))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	var top []string
	for _, i := range order[:maxCategories] {
		if counts[i] > 0 {
			top = append(top, functionalityCategories[i].label)
		}
	}
	return top
}

// * SummarizeFunctionality renders the one-line description shown on a contributor profile
func SummarizeFunctionality(messages []string, fileCount int, languages []string) string {
	var b strings.Builder

	if top := TopCategories(messages); len(top) > 0 {
		fmt.Fprintf(&b, "Focused on %s", strings.Join(top, ", "))
	} else {
		fmt.Fprintf(&b, "Contributed %d commits", len(messages))
	}

	if len(languages) > 0 {
		fmt.Fprintf(&b, " using %s", strings.Join(languages[:min(2, len(languages))], ", "))
	}

	switch {
	case fileCount > 10:
		fmt.Fprintf(&b, ", touching %d files across multiple areas", fileCount)
	case fileCount > 0:
		fmt.Fprintf(&b, ", working on %d files", fileCount)
	}

	b.WriteString(".")
	return b.String()
}

// * IdentifyKeyAreas matches file paths and commit messages against the area rules.
// * The result is sorted alphabetically and capped at five.
func IdentifyKeyAreas(files, messages []string) []string {
	found := make(map[string]struct{})

	for _, f := range files {
		lower := strings.ToLower(f)
		for _, rule := range fileAreaRules {
			if rule.matches(lower) {
				found[rule.area] = struct{}{}
			}
		}
	}

	for _, msg := range messages {
		lower := strings.ToLower(msg)
		for _, rule := range messageAreaRules {
			if rule.matches(lower) {
				found[rule.area] = struct{}{}
			}
		}
	}

	areas := make([]string, 0, len(found))
	for area := range found {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	if len(areas) > maxKeyAreas {
		areas = areas[:maxKeyAreas]
	}
	return areas
}
