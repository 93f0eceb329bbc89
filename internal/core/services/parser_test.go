package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docquery/docquery/internal/core/domain"
)

func TestParseChunks(t *testing.T) {
	t.Run("headingless document yields one implicit chunk", func(t *testing.T) {
		chunks := ParseChunks("plain.md", "Just some text.\nSecond line.\n")
		require.Len(t, chunks, 1)
		assert.Equal(t, domain.ImplicitHeading, chunks[0].Heading)
		assert.Equal(t, 1, chunks[0].Level)
		assert.Equal(t, "Just some text.\nSecond line.", chunks[0].Content)
		assert.Empty(t, chunks[0].SourceURL)
	})

	t.Run("blank document yields no chunks", func(t *testing.T) {
		assert.Empty(t, ParseChunks("blank.md", "   \n\n\t\n"))
		assert.Empty(t, ParseChunks("empty.md", ""))
	})

	t.Run("source line after heading attaches and is excluded from content", func(t *testing.T) {
		doc := "## Setup\nSource: http://x/setup\nDo X.\n"
		chunks := ParseChunks("file1.md", doc)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Setup", chunks[0].Heading)
		assert.Equal(t, 2, chunks[0].Level)
		assert.Equal(t, "http://x/setup", chunks[0].SourceURL)
		assert.Equal(t, "Do X.", chunks[0].Content)
		assert.NotContains(t, chunks[0].Content, "Source:")
	})

	t.Run("source line before any heading attaches to implicit section", func(t *testing.T) {
		doc := "Source: http://x/page\nIntro text.\n## Later\nBody.\n"
		chunks := ParseChunks("f.md", doc)
		require.Len(t, chunks, 2)
		assert.Equal(t, domain.ImplicitHeading, chunks[0].Heading)
		assert.Equal(t, "http://x/page", chunks[0].SourceURL)
		assert.Equal(t, "Intro text.", chunks[0].Content)
		assert.Empty(t, chunks[1].SourceURL)
	})

	t.Run("source line far from heading is dropped, not content", func(t *testing.T) {
		doc := "## A\nline one\nSource: http://x/stray\nline two\n"
		chunks := ParseChunks("f.md", doc)
		require.Len(t, chunks, 1)
		assert.Equal(t, "line one\nline two", chunks[0].Content)
		assert.Empty(t, chunks[0].SourceURL)
	})

	t.Run("consecutive headings emit no chunk for the empty one", func(t *testing.T) {
		doc := "## Empty\n\n\n## Full\ncontent here\n"
		chunks := ParseChunks("f.md", doc)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Full", chunks[0].Heading)
	})

	t.Run("heading depth maps to level, depth one is content", func(t *testing.T) {
		doc := "# Title\npreamble\n## Two\na\n### Three\nb\n#### Four\nc\n##### Five\nd\n"
		chunks := ParseChunks("f.md", doc)
		require.Len(t, chunks, 4)

		assert.Equal(t, domain.ImplicitHeading, chunks[0].Heading)
		assert.Equal(t, "# Title\npreamble", chunks[0].Content)

		assert.Equal(t, []int{1, 2, 3, 4}, []int{
			chunks[0].Level, chunks[1].Level, chunks[2].Level, chunks[3].Level,
		})
		// ##### is deeper than the marker set; it stays content of "Four".
		assert.Equal(t, "c\n##### Five\nd", chunks[3].Content)
	})

	t.Run("chunks keep first-appearance order", func(t *testing.T) {
		doc := "intro\n## B\nb\n## A\na\n## C\nc\n"
		chunks := ParseChunks("f.md", doc)
		require.Len(t, chunks, 4)
		got := make([]string, len(chunks))
		for i, c := range chunks {
			got[i] = c.Heading
		}
		assert.Equal(t, []string{domain.ImplicitHeading, "B", "A", "C"}, got)
	})

	t.Run("content is trimmed but inner blank lines kept", func(t *testing.T) {
		doc := "## A\n\nfirst\n\nsecond\n\n"
		chunks := ParseChunks("f.md", doc)
		require.Len(t, chunks, 1)
		assert.Equal(t, "first\n\nsecond", chunks[0].Content)
	})

	t.Run("deterministic", func(t *testing.T) {
		doc := "## A\nSource: http://x/a\nalpha\n## B\nbeta\n"
		assert.Equal(t, ParseChunks("f.md", doc), ParseChunks("f.md", doc))
	})

	t.Run("filename is stamped on every chunk", func(t *testing.T) {
		doc := "intro\n## A\na\n"
		for _, c := range ParseChunks("stamped.md", doc) {
			assert.Equal(t, "stamped.md", c.Filename)
		}
	})
}
