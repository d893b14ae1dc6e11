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


package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/search"
	"github.com/dsaini64/regulations/storage"
	"github.com/dsaini64/regulations/vecindex"
)

const (
	defaultSearchLimit  = 20
	defaultChangesDays  = 30
	defaultChangesLimit = 10
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store     storage.RegulationStore
	changeLog storage.ChangeLog
	metaStore storage.MetaStore
	searcher  *search.Searcher
	index     *vecindex.Index
}

// NewHandlers creates a new Handlers instance. metaStore and index may
// be nil; stats then omit the corresponding sections.
func NewHandlers(
	store storage.RegulationStore,
	changeLog storage.ChangeLog,
	metaStore storage.MetaStore,
	searcher *search.Searcher,
	index *vecindex.Index,
) *Handlers {
	return &Handlers{
		store:     store,
		changeLog: changeLog,
		metaStore: metaStore,
		searcher:  searcher,
		index:     index,
	}
}

// SearchRequest represents the arguments for search_regulations.
type SearchRequest struct {
	Query       string `json:"query"`
	UseSemantic *bool  `json:"use_semantic,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

// GetByIDRequest represents the arguments for get_regulation_by_id.
type GetByIDRequest struct {
	RegulationID uint64 `json:"regulation_id"`
}

// RecentChangesRequest represents the arguments for get_recent_changes.
type RecentChangesRequest struct {
	Days  int `json:"days,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// HandleSearch handles the search_regulations tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if input.Query == "" {
		return errorResult("Query is required"), nil
	}

	useSemantic := true
	if input.UseSemantic != nil {
		useSemantic = *input.UseSemantic
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	result, err := h.searcher.Search(ctx, input.Query, useSemantic, limit)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	return successResult(map[string]any{
		"query":         result.Query,
		"count":         len(result.Results),
		"search_method": result.Method,
		"results":       result.Results,
	})
}

// HandleGetByID handles the get_regulation_by_id tool call.
func (h *Handlers) HandleGetByID(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetByIDRequest](req)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if input.RegulationID == 0 {
		return errorResult("regulation_id is required"), nil
	}

	rec, err := h.store.GetByID(ctx, core.ID(input.RegulationID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorResult("Regulation not found"), nil
		}
		return errorResult(err.Error()), nil
	}

	return successResult(regulationPayload(rec))
}

// HandleRecentChanges handles the get_recent_changes tool call.
func (h *Handlers) HandleRecentChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RecentChangesRequest](req)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	days := input.Days
	if days <= 0 {
		days = defaultChangesDays
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultChangesLimit
	}

	since := time.Now().AddDate(0, 0, -days)
	detected, err := h.changeLog.GetChanges(ctx, since, limit)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	changes := make([]map[string]any, len(detected))
	for i, c := range detected {
		changes[i] = map[string]any{
			"id":            c.Id,
			"regulation_id": c.RegulationId,
			"change_type":   c.ChangeType.String(),
			"field_name":    c.FieldName,
			"old_value":     c.OldValue,
			"new_value":     c.NewValue,
			"detected_at":   c.DetectedAt.UTC().Format(time.RFC3339),
			"notified":      c.Notified,
		}
	}

	return successResult(map[string]any{
		"changes": changes,
		"count":   len(changes),
		"days":    days,
	})
}

// HandleStats handles the get_regulation_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts, err := h.store.CountByStatus(ctx)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	total := 0
	byStatus := make(map[string]int, len(counts))
	for status, n := range counts {
		total += n
		byStatus[status.String()] = n
	}

	stats := map[string]any{
		"total_regulations": total,
		"by_status":         byStatus,
	}

	if h.index != nil {
		stats["index"] = map[string]any{
			"indexed_count": h.index.Count(),
			"ready":         h.index.Count() > 0,
		}
	}

	if h.metaStore != nil {
		if info, err := h.metaStore.GetLastRefresh(ctx); err == nil && info != nil {
			stats["last_refresh"] = map[string]any{
				"job_id":       info.JobID,
				"completed_at": info.CompletedAt.UTC().Format(time.RFC3339),
				"total":        info.Total,
				"changes":      info.Changes,
			}
		}
	}

	return successResult(stats)
}

func regulationPayload(r *core.Regulation) map[string]any {
	return map[string]any{
		"id":            r.Id,
		"title":         r.Title,
		"chapter":       r.Chapter,
		"subchapter":    r.Subchapter,
		"part":          r.Part,
		"section_range": r.SectionRange,
		"description":   r.Description,
		"url":           r.URL,
		"status":        r.Status.String(),
		"status_reason": r.StatusReason,
		"last_updated":  r.LastUpdated.UTC().Format(time.RFC3339),
	}
}

// Result helpers

// errorResult creates an MCP error result with a JSON payload.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(message string) *mcp.CallToolResult {
	content, _ := json.Marshal(map[string]any{"error": message})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
