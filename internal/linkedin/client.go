// Package linkedin implements the LinkedIn REST API integration: identity
// lookup, image asset upload, and UGC post creation.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultBaseURL is the LinkedIn API host.
const DefaultBaseURL = "https://api.linkedin.com"

// restliVersion is the fixed protocol-version header LinkedIn requires.
const restliVersion = "2.0.0"

// Step-class sentinel errors for the publish pipeline. Each step of Publish
// fails with an error wrapping exactly one of these, so callers can classify
// failures with errors.Is.
var (
	// ErrAuth indicates the platform rejected the access token during the
	// identity lookup.
	ErrAuth = errors.New("failed to get LinkedIn profile")
	// ErrUploadRegistration indicates the asset-registration call failed.
	ErrUploadRegistration = errors.New("failed to register image upload")
	// ErrImageFetch indicates the image bytes could not be downloaded.
	ErrImageFetch = errors.New("failed to download image")
	// ErrUpload indicates the byte upload to the registered URL failed.
	ErrUpload = errors.New("failed to upload image to LinkedIn")
	// ErrPostCreation indicates the post-creation call failed.
	ErrPostCreation = errors.New("LinkedIn API error")
)

// Client calls the LinkedIn REST API on behalf of an authenticated member.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a LinkedIn API client. An empty baseURL selects the
// production host; a nil httpClient uses http.DefaultClient. No timeout is
// imposed here: once issued, a call runs to completion or failure.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// profileResponse is the subset of the identity record Publish needs.
type profileResponse struct {
	ID string `json:"id"`
}

// request issues an API call with the bearer token and protocol-version
// header set, returning the response. The caller owns the response body.
func (c *Client) request(ctx context.Context, method, url, accessToken string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", restliVersion)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.httpClient.Do(req)
}

// getPersonID fetches the authenticated member's opaque profile identifier.
func (c *Client) getPersonID(ctx context.Context, accessToken string) (string, error) {
	resp, err := c.request(ctx, http.MethodGet, c.baseURL+"/v2/people/~", accessToken, nil, "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	}

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if profile.ID == "" {
		return "", fmt.Errorf("%w: response missing member id", ErrAuth)
	}
	return profile.ID, nil
}

// Profile returns the raw identity record for the authenticated member.
func (c *Client) Profile(ctx context.Context, accessToken string) (map[string]any, error) {
	resp, err := c.request(ctx, http.MethodGet, c.baseURL+"/v2/people/~", accessToken, nil, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	}

	var record map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return record, nil
}

// postJSON issues a JSON POST with the bearer token set.
func (c *Client) postJSON(ctx context.Context, url, accessToken string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.request(ctx, http.MethodPost, url, accessToken, bytes.NewReader(data), "application/json")
}
