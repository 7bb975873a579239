package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	apperrors "github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

type CollaboratorAnalyzer interface {
	Analyze(ctx context.Context, repoURL, branch string) (*models.CollaboratorAnalysisResult, error)
}

type DocumentGenerator interface {
	Branches(ctx context.Context, repoURL string) ([]models.Branch, error)
	EvolutionSummary(ctx context.Context, repoURL, branch string) (*models.Document, error)
	UsageGuide(ctx context.Context, repoURL, branch string) (*models.Document, error)
	AskQuestion(ctx context.Context, repoURL, branch, question string) (*models.EvolutionAnswer, error)
}

type Publisher interface {
	TestConnection(ctx context.Context) (*models.Space, error)
	PublishDocument(ctx context.Context, repoURL, branch string, docType models.DocumentType, spaceKey string) (*models.Publication, error)
	PublishMarkdown(ctx context.Context, title, markdown string) (*models.Publication, error)
	Enqueue(ctx context.Context, job models.PublishJob) error
}

type RunHistory interface {
	Runs(ctx context.Context, repoURL string, limit int) ([]models.Run, error)
	Publications(ctx context.Context, limit int) ([]models.PublicationRecord, error)
}

type Handler struct {
	collaborators     CollaboratorAnalyzer
	documents         DocumentGenerator
	publisher         Publisher
	history           RunHistory
	confluenceBaseURL string
}

func NewHandler(collaborators CollaboratorAnalyzer, documents DocumentGenerator, publisher Publisher, history RunHistory, confluenceBaseURL string) *Handler {
	return &Handler{
		collaborators:     collaborators,
		documents:         documents,
		publisher:         publisher,
		history:           history,
		confluenceBaseURL: confluenceBaseURL,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/branches", h.getBranches).Methods("GET")
	api.HandleFunc("/evolution-summary", h.getEvolutionSummary).Methods("GET")
	api.HandleFunc("/usage-guide", h.getUsageGuide).Methods("GET")
	api.HandleFunc("/ask-evolution-question", h.askEvolutionQuestion).Methods("POST")
	api.HandleFunc("/collaborator-analysis", h.getCollaboratorAnalysis).Methods("GET")
	api.HandleFunc("/test-confluence", h.testConfluence).Methods("GET")
	api.HandleFunc("/save-to-confluence", h.saveToConfluence).Methods("POST")
	api.HandleFunc("/save-markdown-to-confluence", h.saveMarkdownToConfluence).Methods("POST")
	api.HandleFunc("/runs", h.getRuns).Methods("GET")
	api.HandleFunc("/publications", h.getPublications).Methods("GET")
}

func writeSuccess(w http.ResponseWriter, data interface{}, message ...string) {
	writeJSON(w, http.StatusOK, data, message...)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, message ...string) {
	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func missingParam(name string) error {
	return apperrors.New(
		apperrors.RefInvalidRequest,
		"Missing required parameter",
		name+" is required",
		nil,
		apperrors.LevelError,
	)
}

// * requireQuery returns the named query parameters, failing on the first missing one
func requireQuery(r *http.Request, names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = strings.TrimSpace(r.URL.Query().Get(name))
		if values[i] == "" {
			return nil, missingParam(name)
		}
	}
	return values, nil
}

// * decodeBody fills dst from a JSON body. An empty body is not an error.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperrors.New(apperrors.RefInvalidRequest, "Invalid request body", err.Error(), err, apperrors.LevelError)
}

// * fromQuery fills *dst with the query parameter when the body left it empty
func fromQuery(r *http.Request, dst *string, name string) {
	if *dst == "" {
		*dst = strings.TrimSpace(r.URL.Query().Get(name))
	}
}

func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

// health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router / [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, HealthResponse{
		Message: "Project Handoff Assistant API is running",
		Status:  "healthy",
	})
}

// getBranches godoc
// @Summary List branches
// @Description List every branch of a repository with its head commit date and default flag
// @Tags Repository
// @Produce json
// @Param repo_url query string true "GitHub repository URL"
// @Success 200 {object} BranchesResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 404 {object} errors.HTTPErrorResponse
// @Router /api/branches [get]
func (h *Handler) getBranches(w http.ResponseWriter, r *http.Request) {
	params, err := requireQuery(r, "repo_url")
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}
	repoURL := params[0]

	branches, err := h.documents.Branches(r.Context(), repoURL)
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}
	if branches == nil {
		branches = []models.Branch{}
	}

	writeSuccess(w, BranchesResponse{
		RepositoryURL: repoURL,
		Branches:      branches,
		TotalBranches: len(branches),
	}, "Successfully fetched branches")
}

// getEvolutionSummary godoc
// @Summary Evolution summary
// @Description Generate the "How We Got Here" change log of a branch from its full commit history
// @Tags Documentation
// @Produce json
// @Param repo_url query string true "GitHub repository URL"
// @Param branch query string true "Branch name"
// @Success 200 {object} models.Document
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/evolution-summary [get]
func (h *Handler) getEvolutionSummary(w http.ResponseWriter, r *http.Request) {
	params, err := requireQuery(r, "repo_url", "branch")
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	doc, err := h.documents.EvolutionSummary(r.Context(), params[0], params[1])
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	logger.Info("Generated evolution summary for %s@%s in %.2fs", params[0], params[1], doc.ProcessingTimeSeconds)
	writeSuccess(w, doc, "Successfully generated evolution summary")
}

// getUsageGuide godoc
// @Summary Usage guide
// @Description Generate a README style usage guide from the repository tree at the branch head
// @Tags Documentation
// @Produce json
// @Param repo_url query string true "GitHub repository URL"
// @Param branch query string true "Branch name"
// @Success 200 {object} models.Document
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/usage-guide [get]
func (h *Handler) getUsageGuide(w http.ResponseWriter, r *http.Request) {
	params, err := requireQuery(r, "repo_url", "branch")
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	doc, err := h.documents.UsageGuide(r.Context(), params[0], params[1])
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	logger.Info("Generated usage guide for %s@%s in %.2fs", params[0], params[1], doc.ProcessingTimeSeconds)
	writeSuccess(w, doc, "Successfully generated usage guide")
}

// askEvolutionQuestion godoc
// @Summary Ask about the history
// @Description Answer a free-form question from the commit and diff history of a branch
// @Tags Documentation
// @Accept json
// @Produce json
// @Param request body AskQuestionRequest false "Question (query parameters are accepted too)"
// @Param repo_url query string false "GitHub repository URL"
// @Param branch query string false "Branch name"
// @Param question query string false "Question"
// @Success 200 {object} models.EvolutionAnswer
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/ask-evolution-question [post]
func (h *Handler) askEvolutionQuestion(w http.ResponseWriter, r *http.Request) {
	var req AskQuestionRequest
	if err := decodeBody(r, &req); err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}
	fromQuery(r, &req.RepoURL, "repo_url")
	fromQuery(r, &req.Branch, "branch")
	fromQuery(r, &req.Question, "question")

	if req.RepoURL == "" {
		apperrors.WriteHTTPError(w, missingParam("repo_url"))
		return
	}

	answer, err := h.documents.AskQuestion(r.Context(), req.RepoURL, req.Branch, req.Question)
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, answer)
}

// getCollaboratorAnalysis godoc
// @Summary Collaborator analysis
// @Description Per-contributor statistics, heuristic summaries and a team overview for a branch
// @Tags Analytics
// @Produce json
// @Param repo_url query string true "GitHub repository URL"
// @Param branch query string true "Branch name"
// @Success 200 {object} models.CollaboratorAnalysisResult
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 429 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/collaborator-analysis [get]
func (h *Handler) getCollaboratorAnalysis(w http.ResponseWriter, r *http.Request) {
	params, err := requireQuery(r, "repo_url", "branch")
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	result, err := h.collaborators.Analyze(r.Context(), params[0], params[1])
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, result, "Successfully analyzed collaborators")
}

// testConfluence godoc
// @Summary Test Confluence connection
// @Description Look up the configured space with the configured credentials
// @Tags Confluence
// @Produce json
// @Success 200 {object} ConnectionResponse
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /api/test-confluence [get]
func (h *Handler) testConfluence(w http.ResponseWriter, r *http.Request) {
	space, err := h.publisher.TestConnection(r.Context())
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, ConnectionResponse{
		Success:   true,
		Message:   "Confluence API connection successful",
		SpaceName: space.Name,
		SpaceKey:  space.Key,
		BaseURL:   h.confluenceBaseURL,
	})
}

// saveToConfluence godoc
// @Summary Generate and publish a document
// @Description Generate a usage guide or evolution history and create a Confluence page from it. With async the job is queued and 202 is returned.
// @Tags Confluence
// @Accept json
// @Produce json
// @Param request body SaveToConfluenceRequest false "Publish request (query parameters are accepted too)"
// @Param repo_url query string false "GitHub repository URL"
// @Param branch query string false "Branch name"
// @Param document_type query string false "usage_guide or evolution_history"
// @Param space_key query string false "Target space, defaults to the configured one"
// @Param async query bool false "Queue the job instead of publishing inline"
// @Success 200 {object} SaveToConfluenceResponse
// @Success 202 {object} SaveToConfluenceResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /api/save-to-confluence [post]
func (h *Handler) saveToConfluence(w http.ResponseWriter, r *http.Request) {
	var req SaveToConfluenceRequest
	if err := decodeBody(r, &req); err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}
	fromQuery(r, &req.RepoURL, "repo_url")
	fromQuery(r, &req.Branch, "branch")
	fromQuery(r, &req.SpaceKey, "space_key")
	if req.DocumentType == "" {
		req.DocumentType = models.DocumentType(r.URL.Query().Get("document_type"))
	}
	if async, err := strconv.ParseBool(r.URL.Query().Get("async")); err == nil {
		req.Async = req.Async || async
	}

	if req.RepoURL == "" {
		apperrors.WriteHTTPError(w, missingParam("repo_url"))
		return
	}
	if req.Branch == "" {
		apperrors.WriteHTTPError(w, missingParam("branch"))
		return
	}

	if req.Async {
		job := models.PublishJob{
			RepositoryURL: req.RepoURL,
			Branch:        req.Branch,
			DocumentType:  req.DocumentType,
			SpaceKey:      req.SpaceKey,
			RequestedAt:   time.Now().UTC(),
		}
		if err := h.publisher.Enqueue(r.Context(), job); err != nil {
			apperrors.WriteHTTPError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, SaveToConfluenceResponse{
			Success:           true,
			Message:           "Documentation queued for publishing",
			DocumentationType: req.DocumentType,
		})
		return
	}

	pub, err := h.publisher.PublishDocument(r.Context(), req.RepoURL, req.Branch, req.DocumentType, req.SpaceKey)
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	logger.Info("Published %s for %s@%s as page %s", req.DocumentType, req.RepoURL, req.Branch, pub.PageID)
	writeSuccess(w, SaveToConfluenceResponse{
		Success:           true,
		Message:           "Documentation saved to Confluence successfully",
		DocumentationType: req.DocumentType,
		Confluence:        pub,
	})
}

// saveMarkdownToConfluence godoc
// @Summary Publish markdown
// @Description Create a page in the configured space from caller supplied markdown
// @Tags Confluence
// @Accept json
// @Produce json
// @Param request body MarkdownRequest true "Page title and markdown"
// @Success 200 {object} SaveMarkdownResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /api/save-markdown-to-confluence [post]
func (h *Handler) saveMarkdownToConfluence(w http.ResponseWriter, r *http.Request) {
	var req MarkdownRequest
	if err := decodeBody(r, &req); err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	pub, err := h.publisher.PublishMarkdown(r.Context(), req.Title, req.MarkdownContent)
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, SaveMarkdownResponse{
		Success:    true,
		Message:    "Markdown saved to Confluence successfully",
		Confluence: pub,
	})
}

// getRuns godoc
// @Summary Recent runs
// @Description List recent analysis and documentation runs, newest first
// @Tags History
// @Produce json
// @Param repo_url query string false "Only runs of this repository"
// @Param limit query int false "Max runs to return" default(20)
// @Success 200 {array} models.Run
// @Failure 500 {object} errors.HTTPErrorResponse
// @Router /api/runs [get]
func (h *Handler) getRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.history.Runs(r.Context(), r.URL.Query().Get("repo_url"), queryLimit(r))
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, runs, "Successfully fetched runs")
}

// getPublications godoc
// @Summary Recent publications
// @Description List pages created on Confluence, newest first
// @Tags History
// @Produce json
// @Param limit query int false "Max publications to return" default(20)
// @Success 200 {array} models.PublicationRecord
// @Failure 500 {object} errors.HTTPErrorResponse
// @Router /api/publications [get]
func (h *Handler) getPublications(w http.ResponseWriter, r *http.Request) {
	pubs, err := h.history.Publications(r.Context(), queryLimit(r))
	if err != nil {
		apperrors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, pubs, "Successfully fetched publications")
}
