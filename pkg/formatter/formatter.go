// Package formatter turns freeform product descriptions into typed blocks.
//
// The admin writes descriptions as plain text with light line-based markup:
// lines starting with "- " become bullets, lines starting with "1. " become
// numbered items, blank lines separate paragraphs. The catalog frontend
// renders the resulting segments.
package formatter

import (
	"regexp"
	"strconv"
	"strings"
)

// SegmentKind identifies what a segment represents.
type SegmentKind string

const (
	KindParagraph SegmentKind = "paragraph"
	KindBullet    SegmentKind = "bullet"
	KindNumbered  SegmentKind = "numbered"
	KindSpacing   SegmentKind = "spacing"
)

// Segment is one rendered block of a description.
type Segment struct {
	Kind   SegmentKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Number int         `json:"number,omitempty"` // set for KindNumbered
}

var numberedLine = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)

// Format classifies the text line by line, top to bottom. Bullet and number
// detection win over paragraph accumulation; consecutive plain lines join
// into a single paragraph with single spaces; a blank line emits a spacing
// marker and resets the paragraph.
func Format(text string) []Segment {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}

	var segments []Segment
	i := 0

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			segments = append(segments, Segment{Kind: KindSpacing})
			i++
			continue
		}

		if strings.HasPrefix(line, "- ") {
			segments = append(segments, Segment{
				Kind: KindBullet,
				Text: strings.TrimSpace(line[2:]),
			})
			i++
			continue
		}

		if m := numberedLine.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			segments = append(segments, Segment{
				Kind:   KindNumbered,
				Text:   m[2],
				Number: n,
			})
			i++
			continue
		}

		// Plain line: collect the run of consecutive non-special lines.
		var paragraph []string
		for i < len(lines) {
			l := strings.TrimSpace(lines[i])
			if l == "" || strings.HasPrefix(l, "- ") || numberedLine.MatchString(l) {
				break
			}
			paragraph = append(paragraph, l)
			i++
		}
		segments = append(segments, Segment{
			Kind: KindParagraph,
			Text: strings.Join(paragraph, " "),
		})
	}

	return segments
}
