package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCorpus() *Corpus {
	return NewCorpus([]Chunk{
		{Filename: "b.md", Heading: "Setup", Level: 2, Content: "one"},
		{Filename: "b.md", Heading: "Usage", Level: 2, Content: "two"},
		{Filename: "a.md", Heading: "Intro", Level: 2, Content: "three"},
		{Filename: "b.md", Heading: "Setup", Level: 2, Content: "four"},
		{Filename: "b.md", Heading: "Setup", Level: 3, Content: "five"},
	})
}

func TestCorpus_Documents(t *testing.T) {
	t.Run("sorted unique filenames", func(t *testing.T) {
		assert.Equal(t, []string{"a.md", "b.md"}, testCorpus().Documents())
	})

	t.Run("empty corpus", func(t *testing.T) {
		assert.Empty(t, NewCorpus(nil).Documents())
	})
}

func TestCorpus_Headings(t *testing.T) {
	t.Run("first occurrence order, unique by title and level", func(t *testing.T) {
		headings := testCorpus().Headings("b.md")
		assert.Equal(t, []Heading{
			{Level: 2, Title: "Setup"},
			{Level: 2, Title: "Usage"},
			{Level: 3, Title: "Setup"},
		}, headings)
	})

	t.Run("unknown filename yields empty list", func(t *testing.T) {
		headings := testCorpus().Headings("missing.md")
		assert.Empty(t, headings)
		assert.NotNil(t, headings)
	})
}

func TestEmbedding(t *testing.T) {
	t.Run("nil is absent", func(t *testing.T) {
		assert.False(t, NewEmbedding(nil).Present())
		assert.False(t, AbsentEmbedding().Present())
		assert.Zero(t, AbsentEmbedding().Dimensions())
	})

	t.Run("vector is present", func(t *testing.T) {
		e := NewEmbedding([]float32{0.1, 0.2})
		assert.True(t, e.Present())
		assert.Equal(t, 2, e.Dimensions())
		assert.Equal(t, []float32{0.1, 0.2}, e.Values())
	})

	t.Run("zero vector is still present", func(t *testing.T) {
		assert.True(t, NewEmbedding([]float32{0, 0, 0}).Present())
	})
}
