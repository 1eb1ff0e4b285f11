package medal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Content API constants
const (
	DefaultBaseURL     = "https://medal.tv"
	ContentPathPrefix  = "/api/content/"
	DefaultHTTPTimeout = 30 * time.Second
)

// ErrResolutionFailed is returned when the content API cannot give a media address
var ErrResolutionFailed = errors.New("content resolution failed")

// Content is the subset of the content API response the app uses
type Content struct {
	ContentID       string `json:"contentId"`
	ContentTitle    string `json:"contentTitle"`
	ContentURL1080p string `json:"contentUrl1080p"`
}

// Resolver translates clip links into direct media addresses
type Resolver struct {
	client  *http.Client
	baseURL string
}

// NewResolver creates a resolver against baseURL; an empty baseURL means the
// public Medal API. A nil client gets a default one.
func NewResolver(client *http.Client, baseURL string) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Resolve returns the 1080p media address for a validated clip link.
func (r *Resolver) Resolve(ctx context.Context, clipURL string) (string, error) {
	content, err := r.Lookup(ctx, clipURL)
	if err != nil {
		return "", err
	}
	return content.ContentURL1080p, nil
}

// Lookup issues a single GET to the content endpoint and decodes the
// response. Any non-2xx status, transport error, malformed body or missing
// 1080p address is reported as ErrResolutionFailed. There is no retry.
func (r *Resolver) Lookup(ctx context.Context, clipURL string) (*Content, error) {
	contentID, err := ExtractContentID(clipURL)
	if err != nil {
		return nil, err
	}

	endpoint := r.baseURL + ContentPathPrefix + url.PathEscape(contentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrResolutionFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolutionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrResolutionFailed, resp.StatusCode)
	}

	var content Content
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrResolutionFailed, err)
	}
	if content.ContentURL1080p == "" {
		return nil, fmt.Errorf("%w: response has no contentUrl1080p", ErrResolutionFailed)
	}
	if content.ContentID == "" {
		content.ContentID = contentID
	}

	log.Printf("Resolved content %s to %s", contentID, content.ContentURL1080p)
	return &content, nil
}
