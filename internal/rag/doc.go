// Package rag provides the building blocks of the catalog's
// retrieval-augmented answer pipeline:
//
//   - text extraction from the operational guidelines PDF
//   - recursive character splitting into overlapping chunks
//   - an in-memory cosine-similarity index over chunk embeddings
//   - top-k retrieval and prompt assembly for the language model
//
// Embedding generation is delegated to the provider SDK behind the
// [Embedder] interface, defined here by the consumer.
package rag
