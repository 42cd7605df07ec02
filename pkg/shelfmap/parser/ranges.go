package parser

import (
	"regexp"
	"strings"
)

// rangeSeparator splits range cells on dashes, arrows, "hasta" or a bare "a".
// RE2's \b is ASCII-only, so word edges are spelled out to keep accented
// words such as "Biología" or "año" whole. The bare "a" also matches in
// non-range text; that is a known heuristic.
var rangeSeparator = regexp.MustCompile(
	`(?i)\s*(?:->|→|-|–|—|(?:^|[^\p{L}\p{N}_])(?:hasta|a)(?:[^\p{L}\p{N}_]|$))\s*`)

// RangeCell is the result of parsing a range cell. Start and End are nil
// when no number could be extracted.
type RangeCell struct {
	Start *float64
	End   *float64
	Raw   string
}

// Complete reports whether both bounds were extracted.
func (c RangeCell) Complete() bool {
	return c.Start != nil && c.End != nil
}

// ParseRangeCell parses a cell such as "001.2 - 005.3" into an ordered range.
// A single number yields a degenerate range; reversed bounds are swapped.
func ParseRangeCell(value string) RangeCell {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return RangeCell{}
	}

	parts := rangeSeparator.Split(raw, -1)
	cell := RangeCell{Raw: raw}
	if start, ok := FirstFloat(parts[0]); ok {
		cell.Start = &start
	}
	if len(parts) > 1 {
		if end, ok := FirstFloat(parts[len(parts)-1]); ok {
			cell.End = &end
		}
	} else if cell.Start != nil {
		end := *cell.Start
		cell.End = &end
	}

	if cell.Complete() && *cell.Start > *cell.End {
		cell.Start, cell.End = cell.End, cell.Start
	}
	return cell
}
