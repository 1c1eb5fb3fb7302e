package emoji

// Kind labels the shape of a matched emoji sequence.
type Kind int

const (
	KindNone Kind = iota
	KindSimple
	KindVariation
	KindSkinTone
	KindFlag
	KindZWJ
	KindKeycap
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "emoji"
	case KindVariation:
		return "variation"
	case KindSkinTone:
		return "skin-tone"
	case KindFlag:
		return "flag"
	case KindZWJ:
		return "zwj-composite"
	case KindKeycap:
		return "keycap"
	default:
		return "none"
	}
}

// MaxSequenceLen bounds how many scalar values a single ZWJ composite may
// consume. Eight covers every composite in common use (family sequences are
// seven scalars); a chain that keeps joining past the bound is split and the
// trailing joiner falls through as ordinary text.
const MaxSequenceLen = 8

// Classify decides whether the sequence starting at rs[pos] is an emoji and
// how many scalar values it consumes. Non-emoji positions consume exactly one.
// The reported length never exceeds len(rs)-pos.
func Classify(rs []rune, pos int) (isEmoji bool, consumed int) {
	kind, n := Match(rs, pos)
	return kind != KindNone, n
}

// Match is Classify with the sequence kind attached. It always reports the
// maximal matching sequence at pos, never a partial prefix. A bare modifier,
// variation selector, joiner, or combining keycap encountered at pos is
// ordinary text: those scalars are only consumed as part of a sequence whose
// base was already matched.
func Match(rs []rune, pos int) (Kind, int) {
	r := rs[pos]
	rest := len(rs) - pos

	// Regional indicators compose pairwise into flags. A lone indicator is
	// still an emoji-style glyph and matches the range table below.
	if isRegionalIndicator(r) && rest >= 2 && isRegionalIndicator(rs[pos+1]) {
		return KindFlag, 2
	}

	// Keycap sequences: '0'-'9', '#' or '*', optional VS16, then U+20E3.
	// The base is plain text on its own, so the whole cluster matches or
	// nothing does.
	if isKeycapBase(r) && rest >= 2 {
		if rs[pos+1] == combiningKeycap {
			return KindKeycap, 2
		}
		if rest >= 3 && isVariationSelector(rs[pos+1]) && rs[pos+2] == combiningKeycap {
			return KindKeycap, 3
		}
	}

	if !IsEmoji(r) {
		return KindNone, 1
	}

	kind := KindSimple
	n := 1

	// At most one trailing modifier or selector attaches to the base.
	if rest > n && isSkinTone(rs[pos+n]) {
		kind = KindSkinTone
		n++
	} else if rest > n && isVariationSelector(rs[pos+n]) {
		kind = KindVariation
		n++
	}

	// Greedy ZWJ chain: joiner plus another emoji-eligible scalar, each link
	// optionally carrying its own selector or modifier.
	for rest > n+1 && rs[pos+n] == zwj && IsEmoji(rs[pos+n+1]) {
		ext := 2
		if rest > n+ext && (isSkinTone(rs[pos+n+ext]) || isVariationSelector(rs[pos+n+ext])) {
			ext++
		}
		if n+ext > MaxSequenceLen {
			break
		}
		n += ext
		kind = KindZWJ
	}

	return kind, n
}
