package models

import "time"

type RunKind string

const (
	RunCollaboratorAnalysis RunKind = "collaborator_analysis"
	RunEvolutionSummary     RunKind = "evolution_summary"
	RunUsageGuide           RunKind = "usage_guide"
	RunEvolutionQuestion    RunKind = "evolution_question"
	RunPublish              RunKind = "publish"
)

type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// * Run is the metadata of one generation request. Results are not stored.
type Run struct {
	ID               int       `json:"id"`
	Kind             RunKind   `json:"kind"`
	RepositoryURL    string    `json:"repository_url"`
	Branch           string    `json:"branch"`
	Status           RunStatus `json:"status"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	ContributorCount int       `json:"contributor_count"`
	CommitCount      int       `json:"commit_count"`
	DurationSeconds  float64   `json:"duration_seconds"`
	StartedAt        time.Time `json:"started_at"`
}

type PublicationRecord struct {
	ID          int         `json:"id"`
	RunID       int         `json:"run_id"`
	Publication Publication `json:"publication"`
	// * Source is the document type, or "markdown" for ad-hoc content
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}
