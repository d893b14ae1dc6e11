// Package mcp exposes the regulation engine to MCP clients over stdio.
//
// Four tools are registered: search_regulations (hybrid search),
// get_regulation_by_id, get_recent_changes and get_regulation_stats.
// Tool failures are reported as MCP error results, never as transport
// errors, so clients always get a JSON payload back.
package mcp
