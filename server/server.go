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
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/dsaini64/regulations/refresh"
	"github.com/dsaini64/regulations/search"
	"github.com/dsaini64/regulations/storage"
	"github.com/dsaini64/regulations/vecindex"
)

// Server exposes the regulation engine over an HTTP JSON API.
type Server struct {
	store     storage.RegulationStore
	changeLog storage.ChangeLog
	metaStore storage.MetaStore
	searcher  *search.Searcher
	refresher *refresh.Refresher
	index     *vecindex.Index
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRefresher enables the /api/refresh endpoint. Without it the
// endpoint reports that refresh is not configured.
func WithRefresher(refresher *refresh.Refresher) Option {
	return func(s *Server) error {
		s.refresher = refresher
		return nil
	}
}

// WithIndex lets /api/stats and /api/health report vector index state.
func WithIndex(index *vecindex.Index) Option {
	return func(s *Server) error {
		s.index = index
		return nil
	}
}

// NewServer creates an API server over the given collaborators.
func NewServer(
	store storage.RegulationStore,
	changeLog storage.ChangeLog,
	metaStore storage.MetaStore,
	searcher *search.Searcher,
	opts ...Option,
) (*Server, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if changeLog == nil {
		return nil, ErrChangeLogRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Server{
		store:     store,
		changeLog: changeLog,
		metaStore: metaStore,
		searcher:  searcher,
		logger:    slog.Default().With("component", "server"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Router builds the gin engine with all API routes registered.
func (s *Server) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	api := engine.Group("/api")
	api.POST("/search", s.handleSearch)
	api.GET("/regulations", s.handleRegulations)
	api.GET("/regulations/:id", s.handleRegulationByID)
	api.GET("/changes", s.handleChanges)
	api.POST("/refresh", s.handleRefresh)
	api.GET("/stats", s.handleStats)
	api.GET("/health", s.handleHealth)

	return engine
}

// Run starts the HTTP server on the given address and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server starting", "addr", addr)
	return s.Router().Run(addr)
}
