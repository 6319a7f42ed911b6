package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LanguageToolClient checks text against a LanguageTool HTTP API, either the
// public service or a self-hosted server.
type LanguageToolClient struct {
	httpClient *http.Client
	baseURL    string
	language   string
	username   string
	apiKey     string
}

// LanguageToolOption customises a LanguageToolClient.
type LanguageToolOption func(*LanguageToolClient)

// WithCredentials sets the username and API key used by premium endpoints.
func WithCredentials(username, apiKey string) LanguageToolOption {
	return func(c *LanguageToolClient) {
		c.username = username
		c.apiKey = apiKey
	}
}

// NewLanguageToolClient creates a client for baseURL (for example
// https://api.languagetool.org/v2).
func NewLanguageToolClient(baseURL, language string, timeout time.Duration, opts ...LanguageToolOption) *LanguageToolClient {
	c := &LanguageToolClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type ltResponse struct {
	Matches []ltMatch `json:"matches"`
}

type ltMatch struct {
	Message      string `json:"message"`
	Offset       int    `json:"offset"`
	Length       int    `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
	Context struct {
		Text string `json:"text"`
	} `json:"context"`
	Rule struct {
		ID string `json:"id"`
	} `json:"rule"`
}

// Check submits text to the /check endpoint.
func (c *LanguageToolClient) Check(ctx context.Context, text string) ([]GrammarMatch, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)
	if c.username != "" && c.apiKey != "" {
		form.Set("username", c.username)
		form.Set("apiKey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed ltResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse LanguageTool response: %w", err)
	}

	matches := make([]GrammarMatch, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		replacements := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			replacements = append(replacements, r.Value)
		}
		matches = append(matches, GrammarMatch{
			Message:      m.Message,
			Context:      m.Context.Text,
			Replacements: truncateReplacements(replacements),
			Offset:       m.Offset,
			Length:       m.Length,
			RuleID:       m.Rule.ID,
		})
	}
	return matches, nil
}

// Health checks that the API answers on /languages.
func (c *LanguageToolClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/languages", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("LanguageTool health check failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LanguageTool health check failed: status code %d", resp.StatusCode)
	}
	return nil
}

// Close cleans up client resources
func (c *LanguageToolClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
