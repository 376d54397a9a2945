package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// StatusError is returned for any non-2xx answer from the API
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// API performs uncached requests against the portfolio HTTP API.
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI builds a fetcher for baseURL, e.g. "https://example.com". A nil
// httpClient gets a client with a 10 second timeout.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (a *API) Skills(ctx context.Context) ([]models.Skill, error) {
	skills := []models.Skill{}
	if err := a.getJSON(ctx, "/api/skills", &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (a *API) Experiences(ctx context.Context) ([]models.Experience, error) {
	experiences := []models.Experience{}
	if err := a.getJSON(ctx, "/api/experiences", &experiences); err != nil {
		return nil, err
	}
	return experiences, nil
}

func (a *API) Projects(ctx context.Context) ([]models.ProjectWithImages, error) {
	projects := []models.ProjectWithImages{}
	if err := a.getJSON(ctx, "/api/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Profile maps a 404 to errs.ErrNotFound
func (a *API) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := a.getJSON(ctx, "/api/profile", &profile)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("profile: %w", errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *API) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("api: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(raw, &body)
		return &StatusError{StatusCode: resp.StatusCode, Message: body.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s: %w", path, err)
	}
	return nil
}
