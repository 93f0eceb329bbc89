// Package domain contains the core business entities for docquery:
// chunks, embeddings, the corpus, fingerprints, and search results.
// It has no dependencies on adapters or infrastructure.
package domain
