package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/config"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	apperrors "github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const (
	DefaultTimeout = 30 * time.Second
	maxErrorBody   = 500
)

type Client struct {
	baseURL    string
	username   string
	apiToken   string
	spaceKey   string
	httpClient *http.Client
}

type pagePayload struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Space struct {
		Key string `json:"key"`
	} `json:"space"`
	Body struct {
		Storage struct {
			Value          string `json:"value"`
			Representation string `json:"representation"`
		} `json:"storage"`
	} `json:"body"`
}

type pageResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Links struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

func NewClient(cfg config.ConfluenceConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		apiToken:   cfg.APIToken,
		spaceKey:   cfg.SpaceKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *Client) configured() error {
	if c.baseURL == "" || c.username == "" || c.apiToken == "" {
		return apperrors.New(
			apperrors.RefConfigMissing,
			"Confluence credentials not configured",
			"Set CONFLUENCE_BASE_URL, CONFLUENCE_USERNAME and CONFLUENCE_API_TOKEN",
			nil,
			apperrors.LevelError,
		)
	}
	return nil
}

func (c *Client) makeRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// * GetSpace looks up a space, used as the connection test. An empty key uses the configured space.
func (c *Client) GetSpace(ctx context.Context, key string) (*models.Space, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	if key == "" {
		key = c.spaceKey
	}

	resp, err := c.makeRequest(ctx, http.MethodGet, "/wiki/rest/api/space/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, apperrors.New(apperrors.RefUpstream, "Failed to reach Confluence", key, err, apperrors.LevelError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, fmt.Sprintf("Cannot access space '%s'", key))
	}

	var space models.Space
	if err := json.NewDecoder(resp.Body).Decode(&space); err != nil {
		return nil, fmt.Errorf("failed to decode space: %w", err)
	}
	return &space, nil
}

// * CreatePage converts markdown and creates a page. An empty spaceKey uses the configured space.
func (c *Client) CreatePage(ctx context.Context, title, markdown, spaceKey string) (*models.Publication, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	if spaceKey == "" {
		spaceKey = c.spaceKey
	}
	if spaceKey == "" {
		return nil, apperrors.New(
			apperrors.RefConfigMissing,
			"Confluence space key not provided",
			"Pass space_key or set CONFLUENCE_SPACE_KEY",
			nil,
			apperrors.LevelError,
		)
	}

	storage, err := ToStorageFormat(markdown)
	if err != nil {
		return nil, apperrors.New(apperrors.RefPublishFailed, "Failed to convert markdown", title, err, apperrors.LevelError)
	}

	var payload pagePayload
	payload.Type = "page"
	payload.Title = title
	payload.Space.Key = spaceKey
	payload.Body.Storage.Value = storage
	payload.Body.Storage.Representation = "storage"

	resp, err := c.makeRequest(ctx, http.MethodPost, "/wiki/rest/api/content", payload)
	if err != nil {
		return nil, apperrors.New(apperrors.RefUpstream, "Failed to reach Confluence", title, err, apperrors.LevelError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "Failed to create Confluence page")
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode created page: %w", err)
	}

	logger.Info("Created Confluence page %s (%s) in space %s", page.ID, title, spaceKey)

	return &models.Publication{
		PageID:   page.ID,
		PageURL:  c.baseURL + "/wiki" + page.Links.WebUI,
		Title:    title,
		SpaceKey: spaceKey,
	}, nil
}

func statusError(resp *http.Response, title string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	ref := apperrors.RefPublishFailed
	level := apperrors.LevelError
	if resp.StatusCode == http.StatusNotFound {
		ref = apperrors.RefNotFound
		level = apperrors.LevelInfo
	}

	return apperrors.New(
		ref,
		title,
		fmt.Sprintf("Confluence returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		nil,
		level,
	)
}
