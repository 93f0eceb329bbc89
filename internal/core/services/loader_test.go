package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docquery/docquery/internal/core/domain"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing.
type mockEmbedder struct {
	dims       int
	vectors    map[string][]float32
	embedErr   error
	batchErr   error
	embedCalls int
	batchCalls int
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	// Cheap deterministic fallback so any text embeds.
	dims := m.dims
	if dims == 0 {
		dims = 4
	}
	vec := make([]float32, dims)
	for i, r := range text {
		vec[i%dims] += float32(r) / 1000
	}
	return vec
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vectorFor(text)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims == 0 {
		return 4
	}
	return m.dims
}

func (m *mockEmbedder) ModelName() string { return "mock-embedder" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

// mockCacheStore implements driven.CacheStore in memory.
type mockCacheStore struct {
	fp          domain.Fingerprint
	chunks      []domain.Chunk
	hasBlob     bool
	loadErr     error
	saveErr     error
	saveCalls   int
	deleteCalls int
}

func (m *mockCacheStore) Load(_ context.Context) (domain.Fingerprint, []domain.Chunk, error) {
	if m.loadErr != nil {
		return nil, nil, m.loadErr
	}
	if !m.hasBlob {
		return nil, nil, domain.ErrNotFound
	}
	return m.fp, m.chunks, nil
}

func (m *mockCacheStore) Save(_ context.Context, fp domain.Fingerprint, chunks []domain.Chunk) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.fp = fp
	m.chunks = chunks
	m.hasBlob = true
	return nil
}

func (m *mockCacheStore) Delete() error {
	m.deleteCalls++
	m.hasBlob = false
	m.fp = nil
	m.chunks = nil
	return nil
}

// --- Fixtures ---

func writeCorpusDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "file1.md", "## Setup\nSource: http://x/setup\nDo X.\n## Usage\nDo Y.\n")
	writeFile(t, dir, "file2.md", "## Intro\nDo Z.\n")
	writeFile(t, dir, "notes.txt", "not eligible\n")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

// --- Tests ---

func TestCorpusLoader_Regenerate(t *testing.T) {
	ctx := context.Background()
	dir := writeCorpusDir(t)
	cache := &mockCacheStore{}
	embedder := &mockEmbedder{}

	loader := NewCorpusLoader(LoaderConfig{StorageDir: dir}, cache, embedder)
	corpus := loader.Load(ctx)

	stats := loader.Stats()
	assert.False(t, stats.CacheHit)
	assert.Equal(t, 2, stats.FilesParsed)
	assert.Equal(t, 3, stats.Chunks)
	assert.Equal(t, 3, stats.ChunksEmbedded)
	assert.False(t, stats.Degraded)
	assert.False(t, stats.Indeterminate)
	assert.NotEmpty(t, stats.Generation)

	// Corpus order: enumeration (lexical) order, then source order.
	chunks := corpus.Chunks()
	require.Len(t, chunks, 3)
	assert.Equal(t, "Setup", chunks[0].Heading)
	assert.Equal(t, "http://x/setup", chunks[0].SourceURL)
	assert.Equal(t, "Usage", chunks[1].Heading)
	assert.Equal(t, "Intro", chunks[2].Heading)
	assert.Equal(t, "file2.md", chunks[2].Filename)

	// One order-preserving batch request, persisted cache.
	assert.Equal(t, 1, embedder.batchCalls)
	assert.Equal(t, 1, cache.saveCalls)
	assert.Len(t, cache.fp, 2)
}

func TestCorpusLoader_CacheFastPath(t *testing.T) {
	ctx := context.Background()
	dir := writeCorpusDir(t)
	cache := &mockCacheStore{}
	embedder := &mockEmbedder{}

	first := NewCorpusLoader(LoaderConfig{StorageDir: dir}, cache, embedder).Load(ctx)

	second := NewCorpusLoader(LoaderConfig{StorageDir: dir}, cache, embedder)
	corpus := second.Load(ctx)

	stats := second.Stats()
	assert.True(t, stats.CacheHit)
	assert.Zero(t, stats.FilesParsed)
	assert.Equal(t, 1, embedder.batchCalls, "no re-embedding on cache hit")
	assert.Equal(t, 1, cache.saveCalls, "no re-save on cache hit")
	assert.Equal(t, first.Chunks(), corpus.Chunks(), "corpus identical to prior load")
}

func TestCorpusLoader_MtimeChangeRegeneratesWholeCorpus(t *testing.T) {
	ctx := context.Background()
	dir := writeCorpusDir(t)
	cache := &mockCacheStore{}
	embedder := &mockEmbedder{}

	NewCorpusLoader(LoaderConfig{StorageDir: dir}, cache, embedder).Load(ctx)

	// Touch one file: full-corpus regeneration, not a partial update.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "file2.md"), future, future))

	second := NewCorpusLoader(LoaderConfig{StorageDir: dir}, cache, embedder)
	second.Load(ctx)

	stats := second.Stats()
	assert.False(t, stats.CacheHit)
	assert.Equal(t, 2, stats.FilesParsed, "every file re-parsed, not just the touched one")
	assert.Equal(t, 2, embedder.batchCalls)
	assert.Equal(t, 1, cache.deleteCalls, "stale blob deleted before regeneration")
	assert.Equal(t, 2, cache.saveCalls)
}

func TestCorpusLoader_InvalidCacheIsDeletedAndRegenerated(t *testing.T) {
	ctx := context.Background()
	dir := writeCorpusDir(t)
	cache := &mockCacheStore{loadErr: domain.ErrCacheInvalid}
	embedder := &mockEmbedder{}

	loader := NewCorpusLoader(LoaderConfig{StorageDir: dir}, cache, embedder)
	corpus := loader.Load(ctx)

	assert.Equal(t, 1, cache.deleteCalls)
	assert.Equal(t, 3, corpus.Len())
	assert.False(t, loader.Stats().CacheHit)
}

func TestCorpusLoader_BatchFailureRetainsChunksWithoutEmbeddings(t *testing.T) {
	ctx := context.Background()
	dir := writeCorpusDir(t)
	cache := &mockCacheStore{}
	embedder := &mockEmbedder{batchErr: errors.New("provider down")}

	loader := NewCorpusLoader(LoaderConfig{StorageDir: dir}, cache, embedder)
	corpus := loader.Load(ctx)

	require.Equal(t, 3, corpus.Len())
	for _, c := range corpus.Chunks() {
		assert.False(t, c.Embedding.Present())
	}

	stats := loader.Stats()
	assert.True(t, stats.Degraded)
	assert.Zero(t, stats.ChunksEmbedded)
	// The degraded corpus still persists; only the next fingerprint
	// mismatch triggers another embedding attempt.
	assert.Equal(t, 1, cache.saveCalls)
}

func TestCorpusLoader_NilEmbedder(t *testing.T) {
	ctx := context.Background()
	dir := writeCorpusDir(t)

	loader := NewCorpusLoader(LoaderConfig{StorageDir: dir}, nil, nil)
	corpus := loader.Load(ctx)

	assert.Equal(t, 3, corpus.Len())
	assert.True(t, loader.Stats().Degraded)
}

func TestCorpusLoader_MissingDirIsIndeterminateAndEmpty(t *testing.T) {
	ctx := context.Background()
	cache := &mockCacheStore{}

	loader := NewCorpusLoader(LoaderConfig{StorageDir: "/nonexistent/docquery"}, cache, &mockEmbedder{})
	corpus := loader.Load(ctx)

	assert.Zero(t, corpus.Len())
	stats := loader.Stats()
	assert.True(t, stats.Indeterminate)
	assert.Zero(t, cache.saveCalls, "indeterminate fingerprint never persists")
}

func TestCorpusLoader_IndeterminateIgnoresCache(t *testing.T) {
	ctx := context.Background()
	cache := &mockCacheStore{
		hasBlob: true,
		fp:      domain.Fingerprint{},
		chunks:  []domain.Chunk{{Filename: "x.md", Heading: "A", Level: 2, Content: "stale"}},
	}

	loader := NewCorpusLoader(LoaderConfig{StorageDir: "/nonexistent/docquery"}, cache, &mockEmbedder{})
	corpus := loader.Load(ctx)

	assert.Zero(t, corpus.Len(), "stale blob not adopted without a fingerprint")
	assert.Equal(t, 1, cache.deleteCalls)
}

func TestCorpusLoader_EmptyDirSkipsPersistence(t *testing.T) {
	ctx := context.Background()
	cache := &mockCacheStore{}

	loader := NewCorpusLoader(LoaderConfig{StorageDir: t.TempDir()}, cache, &mockEmbedder{})
	corpus := loader.Load(ctx)

	assert.Zero(t, corpus.Len())
	assert.False(t, loader.Stats().Indeterminate)
	assert.Zero(t, cache.saveCalls, "empty corpus never persists")
}
