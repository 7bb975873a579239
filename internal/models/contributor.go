package models

import "time"

type ContributorProfile struct {
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	CommitCount            int       `json:"commit_count"`
	LinesAdded             int       `json:"lines_added"`
	LinesRemoved           int       `json:"lines_removed"`
	FilesModified          []string  `json:"files_modified"`
	FileCount              int       `json:"file_count"`
	PrimaryLanguages       []string  `json:"primary_languages"`
	FunctionalitySummary   string    `json:"functionality_summary"`
	FirstCommitDate        time.Time `json:"first_commit_date"`
	LastCommitDate         time.Time `json:"last_commit_date"`
	CommitFrequencyPerWeek float64   `json:"commit_frequency_per_week"`
	KeyAreas               []string  `json:"key_areas"`
}

type CollaboratorAnalysisResult struct {
	RepositoryURL         string               `json:"repository_url"`
	Branch                string               `json:"branch"`
	TotalCollaborators    int                  `json:"total_collaborators"`
	AnalysisDate          time.Time            `json:"analysis_date"`
	Collaborators         []ContributorProfile `json:"collaborators"`
	TeamSummary           string               `json:"team_summary"`
	ProcessingTimeSeconds float64              `json:"processing_time_seconds"`
}
