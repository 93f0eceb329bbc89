package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/docquery/docquery/internal/core/domain"
	"github.com/docquery/docquery/internal/core/ports/driven"
	"github.com/docquery/docquery/internal/logger"
)

// DefaultExtension selects the files the crawler writes.
const DefaultExtension = ".md"

// LoaderConfig configures corpus loading.
type LoaderConfig struct {
	// StorageDir is the directory holding the crawled markdown corpus.
	// Enumeration is non-recursive.
	StorageDir string

	// Extension filters eligible files (default ".md").
	Extension string
}

// LoadStats describes what one load cycle did. It is the observable
// sentinel for cache behaviour: a cache hit performs no parsing and no
// embedding, so FilesParsed stays zero.
type LoadStats struct {
	// Generation identifies this load cycle in logs.
	Generation string

	// CacheHit is true when the persisted corpus was adopted unchanged.
	CacheHit bool

	// FilesParsed counts documents run through the chunk parser.
	FilesParsed int

	// Chunks is the corpus size.
	Chunks int

	// ChunksEmbedded counts chunks carrying a present embedding.
	ChunksEmbedded int

	// Degraded is true when some chunks lack embeddings and are therefore
	// invisible to search until the next regeneration.
	Degraded bool

	// Indeterminate is true when file metadata could not be fully read;
	// such a load never persists a cache.
	Indeterminate bool
}

// CorpusLoader owns the reuse-vs-regenerate decision and produces the
// in-memory corpus exactly once, at process start. Every failure mode is
// non-fatal: the worst outcome is an empty or partially-embedded corpus.
type CorpusLoader struct {
	cfg      LoaderConfig
	cache    driven.CacheStore
	embedder driven.EmbeddingService
	stats    LoadStats
}

// NewCorpusLoader creates a loader. Both cache and embedder may be nil:
// without a cache every start regenerates, without an embedder the corpus
// loads with all embeddings absent.
func NewCorpusLoader(cfg LoaderConfig, cache driven.CacheStore, embedder driven.EmbeddingService) *CorpusLoader {
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	return &CorpusLoader{cfg: cfg, cache: cache, embedder: embedder}
}

// Load produces the corpus: adopt the cached chunk list when the stored
// fingerprint matches the current one exactly, otherwise regenerate from
// source and persist the result. Load never fails; callers inspect Stats
// for what happened.
func (l *CorpusLoader) Load(ctx context.Context) *domain.Corpus {
	logger.Section("Corpus Load")
	l.stats = LoadStats{Generation: uuid.New().String()}
	logger.Debug("Load generation %s, dir=%s ext=%s", l.stats.Generation, l.cfg.StorageDir, l.cfg.Extension)

	files, fp := l.enumerate()
	l.stats.Indeterminate = fp == nil
	logger.Debug("Eligible files: %d, fingerprint determinate: %t", len(files), fp != nil)

	if chunks, ok := l.tryCache(ctx, fp); ok {
		l.stats.CacheHit = true
		l.finish(chunks)
		return domain.NewCorpus(chunks)
	}

	chunks := l.regenerate(ctx, files)

	// Persist only when there is something to validate against next time.
	switch {
	case l.cache == nil:
	case fp == nil:
		logger.Warn("Fingerprint indeterminate, cache not saved")
	case len(chunks) == 0:
		logger.Info("No chunks produced, cache not saved")
	default:
		if err := l.cache.Save(ctx, fp, chunks); err != nil {
			logger.Warn("Failed to save cache: %v", err)
		} else {
			logger.Info("Saved %d chunks to cache", len(chunks))
		}
	}

	l.finish(chunks)
	return domain.NewCorpus(chunks)
}

// Stats reports what the last Load did.
func (l *CorpusLoader) Stats() LoadStats {
	return l.stats
}

// enumerate lists eligible files in enumeration (lexical) order and
// computes the current fingerprint. A nil fingerprint marks it
// indeterminate: the directory or some file's metadata was unreadable.
func (l *CorpusLoader) enumerate() ([]string, domain.Fingerprint) {
	entries, err := os.ReadDir(l.cfg.StorageDir)
	if err != nil {
		logger.Warn("Cannot read storage dir %s: %v", l.cfg.StorageDir, err)
		return nil, nil
	}

	var files []string
	fp := domain.Fingerprint{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != l.cfg.Extension {
			continue
		}
		files = append(files, entry.Name())
		if fp == nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warn("Cannot stat %s: %v", entry.Name(), err)
			fp = nil
			continue
		}
		fp[entry.Name()] = info.ModTime().UnixNano()
	}
	return files, fp
}

// tryCache attempts the fast path. It returns (chunks, true) only when a
// structurally valid blob exists and its fingerprint equals the current
// one exactly. Every other outcome deletes the blob so regeneration starts
// clean.
func (l *CorpusLoader) tryCache(ctx context.Context, current domain.Fingerprint) ([]domain.Chunk, bool) {
	if l.cache == nil {
		return nil, false
	}

	stored, chunks, err := l.cache.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("No cache blob present")
		return nil, false
	case err != nil:
		logger.Warn("Cache invalid (%v), regenerating", err)
	case current != nil && stored.Equal(current):
		logger.Info("Cache fingerprint matches, adopting %d cached chunks", len(chunks))
		return chunks, true
	case current == nil:
		logger.Warn("Fingerprint indeterminate, ignoring cache")
	default:
		logger.Info("Cache fingerprint mismatch, source files changed")
	}

	if err := l.cache.Delete(); err != nil {
		logger.Warn("Could not delete cache blob: %v", err)
	}
	return nil, false
}

// regenerate parses every eligible file and embeds all chunk contents in
// one order-preserving batch. A failed batch leaves every embedding absent
// rather than discarding the chunks.
func (l *CorpusLoader) regenerate(ctx context.Context, files []string) []domain.Chunk {
	var chunks []domain.Chunk
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(l.cfg.StorageDir, name))
		if err != nil {
			logger.Warn("Error reading %s: %v", name, err)
			continue
		}
		fileChunks := ParseChunks(name, string(content))
		logger.Debug("Parsed %s: %d chunks", name, len(fileChunks))
		chunks = append(chunks, fileChunks...)
		l.stats.FilesParsed++
	}

	if len(chunks) == 0 {
		return chunks
	}

	if l.embedder == nil {
		logger.Warn("No embedding service configured, corpus loads without embeddings")
		return chunks
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	logger.Info("Generating embeddings for %d chunks with %s", len(texts), l.embedder.ModelName())
	vectors, err := l.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Warn("Batch embedding failed: %v (chunks retained without embeddings)", err)
		return chunks
	}
	if len(vectors) != len(chunks) {
		logger.Warn("Embedding batch returned %d vectors for %d chunks, discarding", len(vectors), len(chunks))
		return chunks
	}
	for i := range chunks {
		chunks[i].Embedding = domain.NewEmbedding(vectors[i])
	}
	return chunks
}

// finish fills the derived stats fields.
func (l *CorpusLoader) finish(chunks []domain.Chunk) {
	l.stats.Chunks = len(chunks)
	for i := range chunks {
		if chunks[i].Embedding.Present() {
			l.stats.ChunksEmbedded++
		}
	}
	l.stats.Degraded = l.stats.ChunksEmbedded < l.stats.Chunks
	logger.Info("Corpus loaded: %d chunks (%d embedded, cache hit: %t)",
		l.stats.Chunks, l.stats.ChunksEmbedded, l.stats.CacheHit)
}
