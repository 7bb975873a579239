package handler

import "github.com/KOFI-GYIMAH/handoff-assistant/internal/models"

type APIResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type BranchesResponse struct {
	RepositoryURL string          `json:"repository_url"`
	Branches      []models.Branch `json:"branches"`
	TotalBranches int             `json:"total_branches"`
}

// * AskQuestionRequest may be sent as a JSON body or as query parameters
type AskQuestionRequest struct {
	RepoURL  string `json:"repo_url"`
	Branch   string `json:"branch"`
	Question string `json:"question"`
}

// * SaveToConfluenceRequest may be sent as a JSON body or as query parameters
type SaveToConfluenceRequest struct {
	RepoURL      string              `json:"repo_url"`
	Branch       string              `json:"branch"`
	DocumentType models.DocumentType `json:"document_type"`
	SpaceKey     string              `json:"space_key,omitempty"`
	// * Async queues the job instead of publishing inline
	Async bool `json:"async,omitempty"`
}

type SaveToConfluenceResponse struct {
	Success           bool                `json:"success"`
	Message           string              `json:"message"`
	DocumentationType models.DocumentType `json:"documentation_type"`
	Confluence        *models.Publication `json:"confluence,omitempty"`
}

type MarkdownRequest struct {
	Title           string `json:"title"`
	MarkdownContent string `json:"markdown_content"`
}

type SaveMarkdownResponse struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Confluence *models.Publication `json:"confluence"`
}

type ConnectionResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SpaceName string `json:"space_name"`
	SpaceKey  string `json:"space_key"`
	BaseURL   string `json:"base_url"`
}
