// Package server exposes the regulation engine over an HTTP JSON API.
//
// Endpoints:
//
//	POST /api/search           hybrid/keyword regulation search
//	GET  /api/regulations      listing with status filters
//	GET  /api/regulations/:id  single regulation
//	GET  /api/changes          recent change feed
//	POST /api/refresh          start a background refresh
//	GET  /api/stats            store, change and index statistics
//	GET  /api/health           liveness probe
package server
