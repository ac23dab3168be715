package rag

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
)

// Embedder turns texts into vectors. Implemented by the chat service
// on top of the provider SDK.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Document is one indexed chunk of the source material.
type Document struct {
	ID   string
	Text string
}

// ScoredDocument pairs a document with its similarity to a query.
type ScoredDocument struct {
	Document
	Score float64
}

type indexEntry struct {
	doc    Document
	vector []float32 // normalized at insert
}

// Index is an in-memory vector index over document chunks. It is built
// once at startup and read-only afterwards, so it carries no locking.
type Index struct {
	entries []indexEntry
}

func NewIndex() *Index {
	return &Index{}
}

// Add inserts a chunk with its embedding. The vector is normalized so
// search reduces to a dot product.
func (ix *Index) Add(text string, vector []float32) {
	ix.entries = append(ix.entries, indexEntry{
		doc:    Document{ID: uuid.NewString(), Text: text},
		vector: normalize(vector),
	})
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search returns the k chunks most similar to the query vector, best
// first.
func (ix *Index) Search(vector []float32, k int) []ScoredDocument {
	query := normalize(vector)

	scored := make([]ScoredDocument, 0, len(ix.entries))
	for _, e := range ix.entries {
		scored = append(scored, ScoredDocument{
			Document: e.doc,
			Score:    dot(query, e.vector),
		})
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
