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


package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dsaini64/regulations/ai"
	"github.com/dsaini64/regulations/core"
)

// Fetcher retrieves regulation page content for deeper analysis.
// Implementations degrade silently: missing or unreachable content returns "".
type Fetcher interface {
	FetchContent(ctx context.Context, url string) string
}

// Classifier determines a regulation's status. An optional LLM classifier is
// consulted first; when it is unavailable or undecided, a fixed rule table
// over the description and page content decides. Classification never fails:
// every input maps to some status.
type Classifier struct {
	fetcher Fetcher
	llm     ai.StatusClassifier
	logger  *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithFetcher sets the content fetcher used when no content is supplied.
func WithFetcher(f Fetcher) Option {
	return func(c *Classifier) {
		c.fetcher = f
	}
}

// WithLLM sets the LLM classifier consulted before the rules.
func WithLLM(llm ai.StatusClassifier) Option {
	return func(c *Classifier) {
		c.llm = llm
	}
}

// New creates a Classifier. With no options it runs on the deterministic
// rules alone.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		logger: slog.Default().With("component", "classifier"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify determines the status of a regulation and the reason for it.
// If content is empty and a fetcher is configured, the page content is
// fetched from the URL first.
func (c *Classifier) Classify(ctx context.Context, description, url, content string) (core.RegulationStatus, string) {
	if content == "" && c.fetcher != nil && strings.HasPrefix(url, "http") {
		content = c.fetcher.FetchContent(ctx, url)
	}

	if c.llm != nil && c.llm.Enabled() {
		status, reason, err := c.llm.ClassifyStatus(ctx, description, url, content)
		if err != nil {
			c.logger.Warn("LLM classification failed, using rules", "err", err)
		} else if status != core.StatusUnknown {
			return status, reason
		}
	}

	return classifyByRules(description, content)
}
