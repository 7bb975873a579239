package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
)

const (
	maxContentLength         = 8000
	maxCriticalContentLength = 12000
	maxUsageFiles            = 40
	keyFilesPerCategory      = 5
)

var (
	setupFiles = newSet("package.json", "requirements.txt", "Pipfile", "pyproject.toml", "setup.py",
		"Dockerfile", "docker-compose.yml", "docker-compose.yaml", "Makefile", "CMakeLists.txt",
		"pom.xml", "build.gradle", "Cargo.toml", "go.mod", ".env.example", ".env.template")

	entryPoints = newSet("main.py", "app.py", "run.py", "server.py", "manage.py", "wsgi.py", "asgi.py",
		"index.js", "main.js", "server.js", "app.js", "start.js",
		"index.html", "index.htm", "main.html", "main.go")

	docFiles = newSet("readme.md", "readme.txt", "readme.rst", "install.md", "installation.md",
		"usage.md", "getting-started.md", "quickstart.md", "setup.md")

	docKeywords = []string{"readme", "install", "setup", "usage", "getting", "start", "quick", "tutorial", "guide"}

	syntaxByExtension = map[string]string{
		"py": "python", "js": "javascript", "ts": "typescript", "jsx": "javascript",
		"json": "json", "yaml": "yaml", "yml": "yaml", "toml": "toml",
		"md": "markdown", "txt": "text", "dockerfile": "dockerfile",
		"java": "java", "go": "go", "php": "php", "rb": "ruby",
	}
)

// * structure categories, in report order
var structureCategories = []string{"frontend", "backend", "config", "docs", "tests", "other"}

type locationRule struct {
	category   string
	indicators []string
	analyze    []string
}

var locationRules = []locationRule{
	{
		category:   "frontend",
		indicators: []string{"frontend", "client", "public", "web", "ui", "www"},
		analyze:    []string{".js", ".jsx", ".ts", ".tsx", ".vue", ".html", ".css", ".scss", ".less"},
	},
	{
		category:   "backend",
		indicators: []string{"backend", "server", "api", "src", "lib", "internal", "cmd", "pkg"},
		analyze:    []string{".py", ".js", ".ts", ".java", ".go", ".php", ".rb", ".rs", ".cpp", ".c", ".cs"},
	},
	{
		category:   "tests",
		indicators: []string{"test", "tests", "spec", "__tests__"},
		analyze:    []string{".py", ".js", ".ts", ".java", ".go", ".php", ".rb"},
	},
}

var otherAnalyzed = []string{".py", ".js", ".ts", ".java", ".go", ".php", ".rb", ".md", ".yml", ".yaml", ".json", ".toml"}

func newSet(items ...string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, item := range items {
		s[item] = true
	}
	return s
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// * repoLayout is the categorised tree of a repository
type repoLayout struct {
	structure map[string][]string
	critical  []models.TreeEntry
	analyzed  []models.TreeEntry
}

func (l *repoLayout) filesToAnalyze() []models.TreeEntry {
	files := append([]models.TreeEntry{}, l.critical...)
	files = append(files, l.analyzed...)
	if len(files) > maxUsageFiles {
		files = files[:maxUsageFiles]
	}
	return files
}

func (l *repoLayout) isCritical(p string) bool {
	for _, e := range l.critical {
		if e.Path == p {
			return true
		}
	}
	return false
}

func categorize(entries []models.TreeEntry) *repoLayout {
	layout := &repoLayout{structure: make(map[string][]string)}

	for _, entry := range entries {
		p := entry.Path
		name := path.Base(p)
		lowerName := strings.ToLower(name)
		lowerPath := strings.ToLower(p)

		switch {
		case setupFiles[name]:
			layout.critical = append(layout.critical, entry)
			layout.structure["config"] = append(layout.structure["config"], p)

		case entryPoints[name]:
			layout.critical = append(layout.critical, entry)
			switch {
			case hasAnySuffix(name, []string{".py", ".go"}):
				layout.structure["backend"] = append(layout.structure["backend"], p)
			default:
				layout.structure["frontend"] = append(layout.structure["frontend"], p)
			}

		case docFiles[lowerName] || (strings.HasSuffix(lowerName, ".md") && containsAny(lowerName, docKeywords)):
			layout.critical = append(layout.critical, entry)
			layout.structure["docs"] = append(layout.structure["docs"], p)

		default:
			category := "other"
			analyze := otherAnalyzed
			for _, rule := range locationRules {
				if containsAny(lowerPath, rule.indicators) {
					category = rule.category
					analyze = rule.analyze
					break
				}
			}

			layout.structure[category] = append(layout.structure[category], p)
			if hasAnySuffix(name, analyze) {
				layout.analyzed = append(layout.analyzed, entry)
			}
		}
	}

	return layout
}

func syntaxFor(p string) string {
	name := strings.ToLower(path.Base(p))
	ext := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i+1:]
	}
	if syntax, ok := syntaxByExtension[ext]; ok {
		return syntax
	}
	return "text"
}

// * collectRepository renders the tree summary and the bounded contents of the selected files
func collectRepository(ctx context.Context, gh GitHubReader, owner, repo, repoURL, branch, sha string, entries []models.TreeEntry, workers int) (string, int, int) {
	layout := categorize(entries)
	files := layout.filesToAnalyze()

	contents := make([]string, len(files))
	failures := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			contents[i], failures[i] = gh.GetFileContent(ctx, owner, repo, f.Path, sha)
			return nil
		})
	}
	_ = g.Wait()

	var b strings.Builder
	fmt.Fprintf(&b, "# Complete Repository Analysis: %s\n", repoURL)
	fmt.Fprintf(&b, "## Branch: %s\n## Commit SHA: %s\n\n", branch, sha)

	b.WriteString("## COMPLETE REPOSITORY STRUCTURE ANALYSIS\n")
	fmt.Fprintf(&b, "**Total files in repository:** %d\n", len(entries))
	fmt.Fprintf(&b, "**Files analyzed for usage guide:** %d\n", len(files))
	fmt.Fprintf(&b, "**Critical configuration files found:** %d\n\n", len(layout.critical))

	b.WriteString("### File Categories:\n")
	for _, category := range structureCategories {
		paths := layout.structure[category]
		if len(paths) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- **%s:** %d files\n", strings.ToUpper(category[:1])+category[1:], len(paths))
		fmt.Fprintf(&b, "  - Key files: %s\n", strings.Join(paths[:min(keyFilesPerCategory, len(paths))], ", "))
	}
	b.WriteString("\n")

	if len(layout.critical) > 0 {
		b.WriteString("### CRITICAL FILES FOR SETUP & USAGE:\n")
		for _, e := range layout.critical {
			fmt.Fprintf(&b, "- %s\n", e.Path)
		}
		b.WriteString("\n")
	}

	for i, f := range files {
		if failures[i] != nil {
			fmt.Fprintf(&b, "\n### File: %s\n*Could not read file: %v*\n\n", f.Path, failures[i])
			continue
		}

		limit := maxContentLength
		if layout.isCritical(f.Path) {
			limit = maxCriticalContentLength
		}
		content, cut := truncate(contents[i], limit)
		if cut {
			content += "\n# ...Content Truncated for Size...\n"
		}
		fmt.Fprintf(&b, "\n### File: %s\n```%s\n%s\n```\n", f.Path, syntaxFor(f.Path), content)
	}

	return b.String(), len(files), len(layout.critical)
}

func usageGuidePrompt(collected string, analyzed, critical int) string {
	return fmt.Sprintf(`You are a senior software architect and technical documentation expert. You have been given the COMPLETE analysis of an entire GitHub repository - all its files, structure, and dependencies.

COMPREHENSIVE REPOSITORY ANALYSIS:
- Total files analyzed: %d
- Critical configuration files: %d
- Complete project structure breakdown provided below

YOUR TASK: Create the most accurate and comprehensive README.md usage guide possible.

ANALYSIS REQUIREMENTS:
1. TECHNOLOGY STACK IDENTIFICATION:
   - Examine ALL configuration files (package.json, requirements.txt, go.mod, etc.)
   - Identify the exact technologies, frameworks, and versions used
   - Determine if it's frontend-only, backend-only, or full-stack

2. INSTALLATION & SETUP:
   - Provide step-by-step installation based on ACTUAL dependency files found
   - Include environment setup if config files exist (.env examples, etc.)
   - Cover all prerequisites based on the tech stack identified

3. HOW TO RUN THE APPLICATION:
   - Find ALL entry points (main.py, index.js, main.go, etc.)
   - Check package.json "scripts" section for available commands
   - Provide separate instructions for frontend/backend if both exist
   - Include development vs production run instructions

4. PROJECT STRUCTURE EXPLANATION:
   - Explain the purpose of major directories and key files
   - Highlight important configuration and entry point files
   - Explain the architecture and data flow

5. CONFIGURATION & ENVIRONMENT:
   - Detail any environment variables needed
   - Explain configuration files and their purposes
   - Include database setup if applicable

6. ADDITIONAL USAGE INFORMATION:
   - API endpoints if it's a backend service
   - Build processes if applicable
   - Testing instructions if test files are present
   - Deployment notes if Dockerfile or similar exists

The README should be professional, complete, and actionable - someone should be able to clone the repo and get it running by following your instructions exactly.

COMPLETE REPOSITORY DATA:
%s

Return ONLY the markdown content for the README.md file.
`, analyzed, critical, collected)
}
