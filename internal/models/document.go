package models

import "time"

type DocumentType string

const (
	DocumentUsageGuide       DocumentType = "usage_guide"
	DocumentEvolutionHistory DocumentType = "evolution_history"
)

func (d DocumentType) Valid() bool {
	return d == DocumentUsageGuide || d == DocumentEvolutionHistory
}

// * Title prefix used when a document is published to the wiki
func (d DocumentType) Title() string {
	if d == DocumentUsageGuide {
		return "Usage Guide"
	}
	return "Evolution History"
}

type Document struct {
	RepositoryURL         string       `json:"repository_url"`
	Branch                string       `json:"branch"`
	DocumentType          DocumentType `json:"document_type"`
	GeneratedAt           time.Time    `json:"generated_at"`
	MarkdownContent       string       `json:"markdown_content"`
	ProcessingTimeSeconds float64      `json:"processing_time_seconds"`
}

type EvolutionAnswer struct {
	Answer          string `json:"answer"`
	CommitCountUsed int    `json:"commit_count_used"`
}

// * Publication is the outcome of creating a wiki page
type Publication struct {
	PageID   string `json:"page_id"`
	PageURL  string `json:"page_url"`
	Title    string `json:"title"`
	SpaceKey string `json:"space_key"`
}

// * Space is a wiki space as returned by the connection test
type Space struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// * PublishJob asks a worker to generate a document and publish it
type PublishJob struct {
	RepositoryURL string       `json:"repository_url"`
	Branch        string       `json:"branch"`
	DocumentType  DocumentType `json:"document_type"`
	SpaceKey      string       `json:"space_key,omitempty"`
	RequestedAt   time.Time    `json:"requested_at"`
}
