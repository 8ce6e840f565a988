package domain

import "sort"

// Segment is one run of page text, either plain or highlighted by a single
// annotation. Concatenating the Text of all segments returned by RenderPage
// reproduces the page content exactly.
type Segment struct {
	Text         string `json:"text"`
	Highlighted  bool   `json:"highlighted"`
	AnnotationID string `json:"annotation_id,omitempty"`
	Color        string `json:"color,omitempty"`
}

// RenderPage splits page content into an ordered sequence of plain and
// highlighted segments.
//
// Annotations whose offsets are no longer valid against content are skipped
// rather than failing the whole page: stored offsets can drift when the
// underlying text changes, and rendering must degrade to plain text.
//
// Overlaps are not merged or nested. Annotations are processed in
// (StartIndex, EndIndex) order and a later annotation that starts inside an
// already-emitted highlight has its start clamped to the emission cursor, so
// the earlier-starting (or, on equal starts, shorter) annotation wins the
// contested region.
func RenderPage(content string, annotations []*Annotation) []Segment {
	if content == "" {
		// Zero segments, but never nil: callers range and serialize the
		// result the same way for empty and non-empty pages.
		return []Segment{}
	}

	valid := make([]*Annotation, 0, len(annotations))
	for _, ann := range annotations {
		if ann != nil && ann.Position.Span().ValidIn(len(content)) {
			valid = append(valid, ann)
		}
	}

	if len(valid) == 0 {
		return []Segment{{Text: content}}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Position.StartIndex != valid[j].Position.StartIndex {
			return valid[i].Position.StartIndex < valid[j].Position.StartIndex
		}
		return valid[i].Position.EndIndex < valid[j].Position.EndIndex
	})

	var segments []Segment
	cursor := 0

	for _, ann := range valid {
		start, end := ann.Position.StartIndex, ann.Position.EndIndex

		if end <= cursor {
			// Entirely inside an already-emitted highlight
			continue
		}
		if start < cursor {
			start = cursor
		}
		if start > cursor {
			segments = append(segments, Segment{Text: content[cursor:start]})
		}

		segments = append(segments, Segment{
			Text:         content[start:end],
			Highlighted:  true,
			AnnotationID: ann.ID,
			Color:        ann.Color,
		})
		cursor = end
	}

	if cursor < len(content) {
		segments = append(segments, Segment{Text: content[cursor:]})
	}

	return segments
}
