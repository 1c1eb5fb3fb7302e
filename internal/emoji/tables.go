package emoji

import "unicode"

// emojiTable covers code points that render as emoji on their own. Combining
// scalars (regional indicators aside, which live in the Enclosed Alphanumeric
// Supplement block) are deliberately absent: skin tones, variation selectors,
// the combining keycap, and ZWJ only count as part of a matched sequence.
var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00A9, Hi: 0x00A9, Stride: 1}, // copyright
		{Lo: 0x00AE, Hi: 0x00AE, Stride: 1}, // registered
		{Lo: 0x2122, Hi: 0x2122, Stride: 1}, // trade mark
		{Lo: 0x231A, Hi: 0x231B, Stride: 1}, // watch, hourglass
		{Lo: 0x23E9, Hi: 0x23EC, Stride: 1}, // fast forward .. fast down
		{Lo: 0x23F0, Hi: 0x23F0, Stride: 1}, // alarm clock
		{Lo: 0x23F3, Hi: 0x23F3, Stride: 1}, // hourglass flowing
		{Lo: 0x25FD, Hi: 0x25FE, Stride: 1}, // medium small squares
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // Miscellaneous Symbols
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1}, // Dingbats
		{Lo: 0x2B50, Hi: 0x2B50, Stride: 1}, // white medium star
		{Lo: 0x2B55, Hi: 0x2B55, Stride: 1}, // heavy large circle
		{Lo: 0x3030, Hi: 0x3030, Stride: 1}, // wavy dash
		{Lo: 0x303D, Hi: 0x303D, Stride: 1}, // part alternation mark
	},
	R32: []unicode.Range32{
		{Lo: 0x1F100, Hi: 0x1F2FF, Stride: 1}, // Enclosed Alphanumeric/Ideographic Supplement
		{Lo: 0x1F300, Hi: 0x1F3FA, Stride: 1}, // Misc Symbols and Pictographs (before skin tones)
		{Lo: 0x1F400, Hi: 0x1F5FF, Stride: 1}, // Misc Symbols and Pictographs (after skin tones)
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // Emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // Transport and Map Symbols
		{Lo: 0x1F780, Hi: 0x1F7FF, Stride: 1}, // Geometric Shapes Extended
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // Supplemental Symbols and Pictographs
		{Lo: 0x1FA00, Hi: 0x1FAFF, Stride: 1}, // Symbols and Pictographs Extended-A/B
	},
	LatinOffset: 2,
}

const (
	zwj             = 0x200D // zero width joiner
	combiningKeycap = 0x20E3
)

// IsEmoji reports whether r renders as an emoji glyph on its own.
func IsEmoji(r rune) bool {
	return unicode.Is(emojiTable, r)
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// isSkinTone reports whether r is a Fitzpatrick modifier (U+1F3FB..U+1F3FF).
func isSkinTone(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

func isVariationSelector(r rune) bool {
	return r >= 0xFE00 && r <= 0xFE0F
}

// isKeycapBase reports whether r can start a keycap sequence: digits, '#', '*'.
func isKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}
