package ai

import (
	"context"

	"github.com/dsaini64/regulations/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// StatusClassifier determines the regulatory status of a regulation from its
// text. Implementations must be thread-safe for concurrent use.
type StatusClassifier interface {
	// ClassifyStatus analyzes a regulation and returns its status with a
	// human-readable reason. Returning StatusUnknown signals that the
	// classifier could not decide and the caller should fall back to the
	// deterministic rules.
	ClassifyStatus(ctx context.Context, description, url, content string) (core.RegulationStatus, string, error)

	// Enabled reports whether the classifier is configured and usable.
	// A disabled classifier returns StatusUnknown from ClassifyStatus.
	Enabled() bool
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// StatusClassifier instances, ensuring they share configuration and
// resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// StatusClassifier returns the status classification service.
	// The returned StatusClassifier is safe for concurrent use.
	StatusClassifier() StatusClassifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
