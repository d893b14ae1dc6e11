// Copyright 2025 dsaini64
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package fetch retrieves regulation page content for classification.
//
// Content fetching is strictly best-effort: any failure (bad URL, network
// error, unreadable page) degrades to empty content so that classification
// can proceed on the description alone.
package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/dsaini64/regulations/core"
)

const (
	defaultTimeout = 15 * time.Second

	// Enough text for meaningful analysis without dragging whole parts of
	// the CFR through the classifier.
	maxContentLen = 8000
)

// Client fetches regulation pages and extracts their readable text.
type Client struct {
	httpClient *http.Client
	maxLen     int
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithMaxContentLength caps the extracted text length.
func WithMaxContentLength(n int) Option {
	return func(c *Client) {
		c.maxLen = n
	}
}

// NewClient creates a content fetcher with a 15 second timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxLen:     maxContentLen,
		logger:     slog.Default().With("component", "fetcher"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchContent retrieves the readable text of a regulation page.
// Only http and https URLs are fetched. Returns "" on any failure.
func (c *Client) FetchContent(ctx context.Context, rawURL string) string {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		c.logger.Debug("skipping non-http url", "url", rawURL)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		c.logger.Debug("failed to build request", "url", rawURL, "err", err)
		return ""
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("could not fetch content", "url", rawURL, "err", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("could not fetch content", "url", rawURL, "status", resp.StatusCode)
		return ""
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		c.logger.Debug("could not extract readable content", "url", rawURL, "err", err)
		return ""
	}

	// Collapse runs of whitespace left behind by markup stripping.
	text := strings.Join(strings.Fields(article.TextContent), " ")
	return core.Truncate(text, c.maxLen)
}
