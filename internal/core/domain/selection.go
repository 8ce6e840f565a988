package domain

import "strings"

// ResolveSelection maps a user's text selection onto a Span within the
// page content.
//
// startHint is the cumulative character offset of the selection start, as
// computed by the presentation layer from the rendered nodes preceding the
// selection. The hint is needed because the selected substring may occur
// more than once; a plain index lookup would silently anchor the wrong
// occurrence. When the hint does not line up exactly (whitespace drift
// between rendered and stored text), the occurrence closest to the hint
// is chosen.
//
// Returns ErrSelectionNotFound when the selection is empty or does not
// occur in the content at all.
func ResolveSelection(content, selected string, startHint int) (Span, error) {
	if selected == "" {
		return Span{}, ErrSelectionNotFound
	}

	// Exact hit at the hinted offset is the common case
	if startHint >= 0 && startHint+len(selected) <= len(content) &&
		content[startHint:startHint+len(selected)] == selected {
		return Span{StartIndex: startHint, EndIndex: startHint + len(selected)}, nil
	}

	best := -1
	bestDist := 0
	for from := 0; ; {
		idx := strings.Index(content[from:], selected)
		if idx < 0 {
			break
		}
		at := from + idx
		dist := at - startHint
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best = at
			bestDist = dist
		}
		from = at + 1
	}

	if best < 0 {
		return Span{}, ErrSelectionNotFound
	}
	return Span{StartIndex: best, EndIndex: best + len(selected)}, nil
}
