package domain

// ImplicitHeading is the title given to content that appears before the
// first heading of a document. Such sections carry Level 1, which is
// reserved for them; real headings occupy levels 2-4.
const ImplicitHeading = "Introduction"

// Chunk is a heading-scoped passage of a single document.
type Chunk struct {
	// Filename identifies the owning document. Stable and unique per
	// document within a corpus.
	Filename string

	// Heading is the text of the nearest preceding heading, or
	// ImplicitHeading for pre-heading content.
	Heading string

	// Level is the heading depth in [1,4]. 1 only for the implicit section.
	Level int

	// Content is the trimmed passage text. Never empty: blank sections are
	// not materialized as chunks.
	Content string

	// SourceURL is the provenance URL attached to this heading section,
	// or "" when the section has none.
	SourceURL string

	// Embedding is the vector representation of Content. It may be absent
	// when embedding generation failed; such chunks stay visible to listing
	// operations but are skipped by search.
	Embedding Embedding
}

// Embedding is a fixed-length vector that is explicitly present or absent.
// Absence is a distinct state, never conflated with a zero vector.
type Embedding struct {
	values []float32
}

// NewEmbedding wraps a vector. A nil or empty slice yields an absent
// embedding.
func NewEmbedding(values []float32) Embedding {
	if len(values) == 0 {
		return Embedding{}
	}
	return Embedding{values: values}
}

// AbsentEmbedding returns the absent state.
func AbsentEmbedding() Embedding {
	return Embedding{}
}

// Present reports whether a vector is attached.
func (e Embedding) Present() bool {
	return len(e.values) > 0
}

// Values returns the underlying vector, or nil when absent. Callers must
// not mutate the returned slice.
func (e Embedding) Values() []float32 {
	return e.values
}

// Dimensions returns the vector length, 0 when absent.
func (e Embedding) Dimensions() int {
	return len(e.values)
}
