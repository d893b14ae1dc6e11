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

import "github.com/mark3labs/mcp-go/mcp"

var searchToolDef = mcp.NewTool("search_regulations",
	mcp.WithDescription("Search Title 21 FDA regulations using hybrid semantic and keyword search. Returns regulations matching the query by meaning, not just keywords."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query (e.g., 'medical device approval', 'drug import requirements')"),
	),
	mcp.WithBoolean("use_semantic",
		mcp.Description("Use semantic search in addition to keyword matching (default: true)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default: 20)"),
	),
)

var getByIDToolDef = mcp.NewTool("get_regulation_by_id",
	mcp.WithDescription("Get a specific regulation by its database ID"),
	mcp.WithNumber("regulation_id",
		mcp.Required(),
		mcp.Description("The ID of the regulation to retrieve"),
	),
)

var recentChangesToolDef = mcp.NewTool("get_recent_changes",
	mcp.WithDescription("Get recently detected regulation changes"),
	mcp.WithNumber("days",
		mcp.Description("How many days back to look (default: 30)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of changes to return (default: 10)"),
	),
)

var statsToolDef = mcp.NewTool("get_regulation_stats",
	mcp.WithDescription("Get statistics about regulations in the database"),
)
