package rag

import (
	"context"
	"fmt"
	"strings"
)

// Retriever answers "which chunks of the guidelines are relevant to
// this question" by embedding the query and searching the index.
type Retriever struct {
	embedder Embedder
	index    *Index
	topK     int
}

func NewRetriever(embedder Embedder, index *Index, topK int) *Retriever {
	return &Retriever{embedder: embedder, index: index, topK: topK}
}

// Retrieve returns the text of the topK most relevant chunks.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	scored := r.index.Search(vectors[0], r.topK)
	texts := make([]string, 0, len(scored))
	for _, s := range scored {
		texts = append(texts, s.Text)
	}
	return texts, nil
}

// FormatDocs joins retrieved chunks into the context block fed to the
// prompt template.
func FormatDocs(docs []string) string {
	return strings.Join(docs, "\n\n")
}
