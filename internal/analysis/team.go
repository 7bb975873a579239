package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/llm"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const (
	smallTeamSize     = 3
	promptTopMembers  = 5
	promptAreas       = 3
	promptSampleLines = 10

	teamPromptHeader = "Based on the following team information, provide a brief 2-3 sentence summary " +
		"describing the team composition, main contributors, and overall project direction:\n\n"
)

// * TextGenerator is the single-shot text generation capability
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type TeamSummarizer struct {
	generator TextGenerator
}

func NewTeamSummarizer(generator TextGenerator) *TeamSummarizer {
	return &TeamSummarizer{generator: generator}
}

// * Summarize expects profiles ordered by commit count. Small teams get a
// * template; larger ones one generation call, falling back to a template
// * when the generator fails. Any other error is returned.
func (s *TeamSummarizer) Summarize(ctx context.Context, profiles []models.ContributorProfile, samples []string) (string, error) {
	if len(profiles) == 0 {
		return "", nil
	}

	if len(profiles) <= smallTeamSize {
		return smallTeamSummary(profiles), nil
	}

	summary, err := s.generator.Generate(ctx, teamPrompt(profiles, samples))
	if err != nil {
		var genErr *llm.Error
		if errors.As(err, &genErr) {
			logger.Warn("team summary generation failed, using fallback: %v", err)
			return fallbackTeamSummary(profiles), nil
		}
		return "", err
	}

	return strings.TrimSpace(summary), nil
}

func smallTeamSummary(profiles []models.ContributorProfile) string {
	top := profiles[0]

	set := make(map[string]struct{})
	for _, p := range profiles {
		for _, lang := range p.PrimaryLanguages {
			set[lang] = struct{}{}
		}
	}
	languages := make([]string, 0, len(set))
	for lang := range set {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	summary := fmt.Sprintf("Small team of %d contributors. %s led development with %d commits. ",
		len(profiles), top.Name, top.CommitCount)
	if len(languages) > 0 {
		summary += fmt.Sprintf("Team primarily worked with %s.", strings.Join(languages[:min(3, len(languages))], ", "))
	}
	return strings.TrimSpace(summary)
}

func fallbackTeamSummary(profiles []models.ContributorProfile) string {
	top := profiles[0]
	return fmt.Sprintf("Team of %d contributors with %s as the main contributor (%d commits).",
		len(profiles), top.Name, top.CommitCount)
}

func teamPrompt(profiles []models.ContributorProfile, samples []string) string {
	var b strings.Builder

	b.WriteString(teamPromptHeader)
	fmt.Fprintf(&b, "Team of %d contributors:\n", len(profiles))
	for _, p := range profiles[:min(promptTopMembers, len(profiles))] {
		areas := p.KeyAreas[:min(promptAreas, len(p.KeyAreas))]
		fmt.Fprintf(&b, "- %s: %d commits, %s\n", p.Name, p.CommitCount, strings.Join(areas, ", "))
	}

	if len(samples) > 0 {
		b.WriteString("\nSample recent work:\n")
		for _, line := range samples[:min(promptSampleLines, len(samples))] {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	return b.String()
}
