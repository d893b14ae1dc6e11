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


package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsaini64/regulations/core"
	"github.com/dsaini64/regulations/refresh"
	"github.com/dsaini64/regulations/storage"
)

const (
	defaultSearchLimit  = 20
	defaultChangesDays  = 30
	defaultChangesLimit = 50
)

type searchRequest struct {
	Query       string `json:"query"`
	UseSemantic *bool  `json:"use_semantic"`
	Limit       int    `json:"limit"`
}

type regulationResponse struct {
	Id           core.ID `json:"id"`
	Title        string  `json:"title"`
	Chapter      string  `json:"chapter"`
	Subchapter   string  `json:"subchapter"`
	Part         string  `json:"part"`
	SectionRange string  `json:"section_range"`
	Description  string  `json:"description"`
	URL          string  `json:"url"`
	Status       string  `json:"status"`
	StatusReason string  `json:"status_reason"`
	LastUpdated  string  `json:"last_updated"`
}

type changeResponse struct {
	Id           core.ID `json:"id"`
	RegulationId core.ID `json:"regulation_id"`
	ChangeType   string  `json:"change_type"`
	FieldName    string  `json:"field_name"`
	OldValue     string  `json:"old_value"`
	NewValue     string  `json:"new_value"`
	DetectedAt   string  `json:"detected_at"`
	Notified     bool    `json:"notified"`
}

func toRegulationResponse(r *core.Regulation) regulationResponse {
	return regulationResponse{
		Id:           r.Id,
		Title:        r.Title,
		Chapter:      r.Chapter,
		Subchapter:   r.Subchapter,
		Part:         r.Part,
		SectionRange: r.SectionRange,
		Description:  r.Description,
		URL:          r.URL,
		Status:       r.Status.String(),
		StatusReason: r.StatusReason,
		LastUpdated:  r.LastUpdated.UTC().Format(time.RFC3339),
	}
}

func toChangeResponse(c *core.ChangeRecord) changeResponse {
	return changeResponse{
		Id:           c.Id,
		RegulationId: c.RegulationId,
		ChangeType:   c.ChangeType.String(),
		FieldName:    c.FieldName,
		OldValue:     c.OldValue,
		NewValue:     c.NewValue,
		DetectedAt:   c.DetectedAt.UTC().Format(time.RFC3339),
		Notified:     c.Notified,
	}
}

// handleSearch serves POST /api/search.
func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	useSemantic := true
	if req.UseSemantic != nil {
		useSemantic = *req.UseSemantic
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	result, err := s.searcher.Search(c.Request.Context(), req.Query, useSemantic, limit)
	if err != nil {
		s.logger.Error("search failed", "query", req.Query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":         result.Query,
		"results":       result.Results,
		"count":         len(result.Results),
		"search_method": result.Method,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRegulations serves GET /api/regulations. Administrative and
// Reserved entries are filtered out by default for a cleaner listing.
func (s *Server) handleRegulations(c *gin.Context) {
	includeAdministrative := c.Query("include_administrative") == "true"
	includeReserved := c.Query("include_reserved") == "true"
	statusFilter := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	records, err := s.store.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load regulations"})
		return
	}

	filtered := records[:0:0]
	for _, rec := range records {
		if statusFilter != "" {
			if rec.Status != core.ParseStatus(statusFilter) {
				continue
			}
		} else {
			if !includeAdministrative && rec.Status == core.StatusAdministrative {
				continue
			}
			if !includeReserved && rec.Status == core.StatusReserved {
				continue
			}
		}
		filtered = append(filtered, rec)
	}

	sort.SliceStable(filtered, func(a, b int) bool {
		if filtered[a].Chapter != filtered[b].Chapter {
			return filtered[a].Chapter < filtered[b].Chapter
		}
		if filtered[a].Subchapter != filtered[b].Subchapter {
			return filtered[a].Subchapter < filtered[b].Subchapter
		}
		return filtered[a].Part < filtered[b].Part
	})

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	out := make([]regulationResponse, len(filtered))
	for i, rec := range filtered {
		out[i] = toRegulationResponse(rec)
	}
	c.JSON(http.StatusOK, out)
}

// handleRegulationByID serves GET /api/regulations/:id.
func (s *Server) handleRegulationByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid regulation id"})
		return
	}

	rec, err := s.store.GetByID(c.Request.Context(), core.ID(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Regulation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load regulation"})
		return
	}

	c.JSON(http.StatusOK, toRegulationResponse(rec))
}

// handleChanges serves GET /api/changes.
func (s *Server) handleChanges(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultChangesDays)))
	if err != nil || days <= 0 {
		days = defaultChangesDays
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultChangesLimit)))
	if err != nil || limit <= 0 {
		limit = defaultChangesLimit
	}

	since := time.Now().AddDate(0, 0, -days)
	detected, err := s.changeLog.GetChanges(c.Request.Context(), since, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load changes"})
		return
	}

	out := make([]changeResponse, len(detected))
	for i, ch := range detected {
		out[i] = toChangeResponse(ch)
	}
	c.JSON(http.StatusOK, gin.H{
		"changes": out,
		"count":   len(out),
		"days":    days,
	})
}

// handleRefresh serves POST /api/refresh. The refresh runs in the
// background; the response only confirms that it started.
func (s *Server) handleRefresh(c *gin.Context) {
	if s.refresher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh not configured"})
		return
	}

	// The job outlives the request, so it gets a fresh context.
	jobID, err := s.refresher.Start(context.Background())
	if err != nil {
		if errors.Is(err, refresh.ErrRefreshInProgress) {
			c.JSON(http.StatusConflict, gin.H{"status": "refresh_in_progress"})
			return
		}
		s.logger.Error("refresh start failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start refresh"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "refresh_started",
		"job_id": jobID,
	})
}

// handleStats serves GET /api/stats.
func (s *Server) handleStats(c *gin.Context) {
	counts, err := s.store.CountByStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	total := 0
	byStatus := make(map[string]int, len(counts))
	for status, n := range counts {
		total += n
		byStatus[status.String()] = n
	}

	totalChanges := 0
	if detected, err := s.changeLog.GetChanges(c.Request.Context(), time.Time{}, 0); err == nil {
		totalChanges = len(detected)
	}

	stats := gin.H{
		"total_regulations": total,
		"by_status":         byStatus,
		"total_changes":     totalChanges,
	}

	if s.index != nil {
		stats["index"] = gin.H{
			"indexed_count": s.index.Count(),
			"ready":         s.index.Count() > 0,
		}
	}

	if s.metaStore != nil {
		if info, err := s.metaStore.GetLastRefresh(c.Request.Context()); err == nil && info != nil {
			stats["last_refresh"] = gin.H{
				"job_id":       info.JobID,
				"completed_at": info.CompletedAt.UTC().Format(time.RFC3339),
				"total":        info.Total,
				"changes":      info.Changes,
			}
		}
	}

	c.JSON(http.StatusOK, stats)
}

// handleHealth serves GET /api/health.
func (s *Server) handleHealth(c *gin.Context) {
	counts, err := s.store.CountByStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	indexReady := false
	if s.index != nil {
		indexReady = s.index.Count() > 0
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"regulations": total,
		"index_ready": indexReady,
	})
}
