package domain

import "sort"

// Heading is one entry of a document's heading structure.
type Heading struct {
	Level int
	Title string
}

// Corpus is the full ordered collection of chunks from all indexed
// documents. It is constructed once by the loader and read-only
// afterwards, so any number of concurrent readers may share it without
// locking. Chunks keep source order: documents in enumeration order,
// chunks in first-appearance order within each document.
type Corpus struct {
	chunks []Chunk
}

// NewCorpus builds a corpus over the given chunks. The slice is adopted,
// not copied; the caller must not mutate it afterwards.
func NewCorpus(chunks []Chunk) *Corpus {
	return &Corpus{chunks: chunks}
}

// Chunks returns the chunk list in corpus order.
func (c *Corpus) Chunks() []Chunk {
	return c.chunks
}

// Len returns the number of chunks.
func (c *Corpus) Len() int {
	return len(c.chunks)
}

// Documents returns the sorted unique filenames that contributed at least
// one chunk.
func (c *Corpus) Documents() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for i := range c.chunks {
		name := c.chunks[i].Filename
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Headings returns the heading structure for one document in
// first-occurrence order, unique by (title, level). An unknown filename
// yields an empty list.
func (c *Corpus) Headings(filename string) []Heading {
	type key struct {
		title string
		level int
	}
	seen := make(map[key]struct{})
	headings := make([]Heading, 0)
	for i := range c.chunks {
		if c.chunks[i].Filename != filename {
			continue
		}
		k := key{title: c.chunks[i].Heading, level: c.chunks[i].Level}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		headings = append(headings, Heading{Level: c.chunks[i].Level, Title: c.chunks[i].Heading})
	}
	return headings
}
