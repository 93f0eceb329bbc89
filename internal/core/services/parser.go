package services

import (
	"regexp"
	"strings"

	"github.com/docquery/docquery/internal/core/domain"
)

// Heading markers of depth 2-4. Depth-1 lines ("# title") are document
// titles in the crawled corpus and treated as plain content.
var headingRe = regexp.MustCompile(`^(#{2,4})\s+(.*)`)

// Provenance marker emitted by the crawler directly beneath each heading.
var sourceRe = regexp.MustCompile(`^Source:\s*(https?://\S+)`)

// ParseChunks segments one markdown document into heading-scoped chunks.
// It is deterministic and side-effect free: the same input always yields
// the same ordered chunk list.
//
// Content before the first heading forms an implicit level-1
// "Introduction" section. A Source: line immediately after a heading
// becomes that section's provenance URL; Source: lines are never part of
// chunk content wherever they appear. Sections whose content trims to
// nothing produce no chunk at all.
func ParseChunks(filename, content string) []domain.Chunk {
	lines := strings.Split(content, "\n")

	var chunks []domain.Chunk
	heading := domain.ImplicitHeading
	level := 1
	sourceURL := ""
	sawHeading := false
	var buf []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text == "" {
			return
		}
		chunks = append(chunks, domain.Chunk{
			Filename:  filename,
			Heading:   heading,
			Level:     level,
			Content:   text,
			SourceURL: sourceURL,
		})
	}

	for i, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			level = len(m[1])
			heading = strings.TrimSpace(m[2])
			sourceURL = ""
			sawHeading = true
			buf = buf[:0]
			// The line right below a heading may carry its provenance.
			// It is consumed here as metadata, and skipped as content by
			// the sourceRe branch when the loop reaches it.
			if i+1 < len(lines) {
				if sm := sourceRe.FindStringSubmatch(lines[i+1]); sm != nil {
					sourceURL = sm[1]
				}
			}
			continue
		}
		if sm := sourceRe.FindStringSubmatch(line); sm != nil {
			if !sawHeading {
				sourceURL = sm[1]
			}
			continue
		}
		buf = append(buf, line)
	}

	flush()
	return chunks
}
