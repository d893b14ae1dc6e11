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


// Package ai provides abstractions for AI services used by the regulation
// database.
//
// This package defines interfaces for AI operations including text embeddings
// and LLM-assisted status classification. It follows the dependency inversion
// principle, allowing the core domain and business logic to depend on
// abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - StatusClassifier: Determines regulatory status from regulation text
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockStatusClassifier)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public fields and methods.
//
// # Optional Classifier
//
// The status classifier is optional: when the configuration carries no
// classifier host or model, the provider returns a disabled classifier whose
// ClassifyStatus always reports StatusUnknown. Callers treat StatusUnknown
// as a signal to fall back to the deterministic classification rules, so a
// deployment without any LLM still produces fully classified regulations.
package ai
