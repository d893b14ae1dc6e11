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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dsaini64/regulations/ai"
	"github.com/dsaini64/regulations/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Maximum regulation content passed to the model. Keeps prompts inside
// small local-model context windows.
const maxPromptContentLen = 3000

// StatusClassifier implements ai.StatusClassifier using OpenAI-compatible
// chat APIs.
type StatusClassifier struct {
	client llms.Model
	logger *slog.Logger
}

// newStatusClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance. Returns a disabled classifier when
// the config carries no classifier host/model.
func newStatusClassifier(config *ai.Config) (*StatusClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if !config.ClassifierEnabled() {
		return &StatusClassifier{
			logger: slog.Default().With("component", "openai-classifier"),
		}, nil
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &StatusClassifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewStatusClassifier creates a new status classifier using the provided
// configuration.
//
// Returns ai.StatusClassifier interface to enforce abstraction.
func NewStatusClassifier(config *ai.Config) (ai.StatusClassifier, error) {
	return newStatusClassifier(config)
}

// Enabled reports whether a model is configured.
func (c *StatusClassifier) Enabled() bool {
	return c.client != nil
}

// ClassifyStatus analyzes a regulation with the configured model and returns
// its status with a one-sentence reason. A disabled classifier returns
// StatusUnknown without error so callers fall back to deterministic rules.
func (c *StatusClassifier) ClassifyStatus(ctx context.Context, description, url, content string) (core.RegulationStatus, string, error) {
	if !c.Enabled() {
		return core.StatusUnknown, "LLM not configured", nil
	}

	prompt := buildStatusPrompt(description, url, content)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart("You are an expert in FDA Title 21 CFR regulations. Analyze regulations carefully to determine their true nature - whether they prohibit activities, require compliance, or are administrative."),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, messages, llms.WithTemperature(0.2))
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return core.StatusUnknown, "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return core.StatusUnknown, "model returned no choices", nil
	}

	status, reason := parseStatusResponse(response.Choices[0].Content)
	c.logger.Debug("classified regulation", "status", status.String(), "reason", reason)
	return status, reason, nil
}

// buildStatusPrompt assembles the analysis prompt for a regulation.
func buildStatusPrompt(description, url, content string) string {
	contentText := "No content available"
	if content != "" {
		contentText = core.Truncate(content, maxPromptContentLen)
	}

	return fmt.Sprintf(`You are an expert in FDA Title 21 CFR regulations. Analyze this regulation carefully.

Regulation Title/Description: %s
URL: %s
Regulation Content: %s

Analyze this regulation and determine its status:

1. **Prohibited**: If the regulation explicitly PROHIBITS, FORBIDS, or BANS certain activities (look for phrases like "shall not", "prohibited", "forbidden", "not permitted", "unlawful")

2. **Requires Compliance**: If the regulation establishes REQUIREMENTS, STANDARDS, or PROCEDURES that must be followed (most regulations fall here - they tell you what you MUST do, not what you CANNOT do)

3. **Reserved**: If the section is explicitly marked as reserved for future use

4. **Administrative**: If it's purely organizational (definitions, structure, general provisions)

5. **Unknown**: If you cannot determine from the available information

IMPORTANT: Most Title 21 regulations are REQUIREMENTS (what you must do), not PROHIBITIONS (what you cannot do).
Only mark as "Prohibited" if there are explicit prohibitions in the text.

Respond in this exact format:
STATUS: [Requires Compliance/Prohibited/Reserved/Administrative/Unknown]
REASON: [brief explanation - one sentence]`, description, url, contentText)
}

// parseStatusResponse extracts the STATUS and REASON lines from a model
// response. Missing or unparseable lines degrade to StatusUnknown.
func parseStatusResponse(text string) (core.RegulationStatus, string) {
	status := core.StatusUnknown
	reason := "Analysis completed"

	for _, line := range strings.Split(text, "\n") {
		if idx := strings.Index(line, "STATUS:"); idx >= 0 && status == core.StatusUnknown {
			status = core.ParseStatus(strings.TrimSpace(line[idx+len("STATUS:"):]))
		}
		if idx := strings.Index(line, "REASON:"); idx >= 0 {
			if r := strings.TrimSpace(line[idx+len("REASON:"):]); r != "" {
				reason = r
			}
		}
	}

	return status, reason
}
