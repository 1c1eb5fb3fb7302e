// Package emoji classifies Unicode scalar values and sequences as emoji.
// It recognizes single-scalar emoji by code-point range plus the multi-scalar
// forms (flag pairs, skin tones, variation selectors, keycaps, ZWJ composites)
// via bounded lookahead. This package is internal; external consumers should
// use the stable facade in pkg/core.
package emoji
