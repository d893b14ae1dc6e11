package mock

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
)

// mockDim keeps test vectors small; nothing in the index depends on the
// real model dimension.
const mockDim = 64

// MockEmbedder is a test double for ai.Embedder. Behavior can be overridden
// per test via the function fields; the default produces a deterministic
// vector per input text, so identical regulation text always embeds
// identically across runs.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText if set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts if set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with deterministic defaults.
// Returns the concrete type so tests can assert on call counts.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText embeds a single text deterministically.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return deterministicVector(text), nil
}

// EmbedTexts embeds a batch of texts deterministically.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text)
	}
	return vectors, nil
}

// CallCount returns how many times either embed method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// deterministicVector derives a unit vector from the FNV hash of text, so
// the same text always maps to the same point and distinct texts almost
// always differ.
func deterministicVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vector := make([]float32, mockDim)
	var sumSquares float64
	for i := range vector {
		v := rng.Float64()*2 - 1
		vector[i] = float32(v)
		sumSquares += v * v
	}

	if sumSquares > 0 {
		norm := float32(1 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
