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


// Package search provides hybrid semantic and keyword search over the
// regulation set.
//
// The Searcher type combines two retrieval strategies:
//   - Semantic search over the vector index, scored by embedding similarity
//   - Keyword search over the regulation store: part numbers, section
//     numbers, and substring matches
//
// Hybrid results are fused by MergeRanked: semantic hits carry their
// similarity weighted by the semantic weight, keyword hits carry an inverse
// rank score weighted by the remainder, and regulations found by both sum
// the two. When the vector index is unavailable the searcher degrades to
// keyword search rather than failing the request.
package search
