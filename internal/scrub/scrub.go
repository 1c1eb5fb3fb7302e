// Package scrub removes emoji sequences from text. The scan walks scalar
// values left to right, asks the classifier for a decision at each position,
// and copies everything that is not part of a matched sequence. Retained
// scalars are never re-encoded, substituted, or reordered.
package scrub

import (
	"errors"
	"unicode/utf8"

	"github.com/nomoji/nomoji/internal/emoji"
)

// Sequence describes one matched emoji sequence in the input.
type Sequence struct {
	Offset int        `json:"offset"` // rune offset into the input
	Len    int        `json:"len"`    // scalar values consumed
	Kind   emoji.Kind `json:"-"`
	Text   string     `json:"text"`
}

// Scrub returns input with all emoji sequences removed and the number of
// sequences that were removed. A multi-scalar sequence (flag pair, skin tone,
// ZWJ composite) counts once. Input must already be valid UTF-8; the engine
// validates before calling.
func Scrub(input string) (string, int) {
	rs := []rune(input)
	removed := 0
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); {
		isEmoji, n := emoji.Classify(rs, i)
		if isEmoji {
			removed++
			i += n
			continue
		}
		out = append(out, rs[i])
		i++
	}
	if removed == 0 {
		// nothing matched; hand back the original string untouched
		return input, 0
	}
	return string(out), removed
}

// ScrubBytes validates raw input as UTF-8 before scrubbing it. This is the
// entry point for untrusted byte streams such as stdin.
func ScrubBytes(b []byte) (string, int, error) {
	if !utf8.Valid(b) {
		return "", 0, errors.New("input is not valid UTF-8")
	}
	out, removed := Scrub(string(b))
	return out, removed, nil
}

// Count reports how many emoji sequences Scrub would remove without building
// the output. This is the dry-run path: same scan, output discarded.
func Count(input string) int {
	rs := []rune(input)
	removed := 0
	for i := 0; i < len(rs); {
		isEmoji, n := emoji.Classify(rs, i)
		if isEmoji {
			removed++
			i += n
			continue
		}
		i++
	}
	return removed
}

// Sequences returns every emoji sequence in the input with its position,
// scalar length, kind, and raw text. Used for previews and detailed reports.
func Sequences(input string) []Sequence {
	rs := []rune(input)
	var out []Sequence
	for i := 0; i < len(rs); {
		kind, n := emoji.Match(rs, i)
		if kind == emoji.KindNone {
			i++
			continue
		}
		out = append(out, Sequence{
			Offset: i,
			Len:    n,
			Kind:   kind,
			Text:   string(rs[i : i+n]),
		})
		i += n
	}
	return out
}
