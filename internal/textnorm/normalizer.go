// Package textnorm provides Unicode and Persian-aware string canonicalization
// for fuzzy answer comparison. Submitted answers arrive typed on a mix of
// Persian, Arabic and Latin keyboard layouts; this package folds the
// equivalent spellings onto one canonical form so that "كتاب" (Arabic kaf)
// and "کتاب" (Persian kaf) compare equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ignorable holds the zero-width, bidi and layout control characters that are
// stripped before comparison, plus the Arabic tatweel used for justification.
var ignorable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0640, Hi: 0x0640, Stride: 1}, // tatweel
		{Lo: 0x200B, Hi: 0x200F, Stride: 1}, // ZWSP, ZWNJ, ZWJ, LRM, RLM
		{Lo: 0x202A, Hi: 0x202E, Stride: 1}, // bidi embedding controls
		{Lo: 0x2060, Hi: 0x2064, Stride: 1}, // word joiner, invisible operators
		{Lo: 0x2066, Hi: 0x2069, Stride: 1}, // bidi isolate controls
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1}, // BOM
	},
}

// foldRune maps Arabic-variant letters onto their Persian equivalents and
// Arabic-Indic digits onto ASCII digits. Applied after NFD decomposition and
// combining-mark removal, so hamza-carrying alef forms have already collapsed
// to bare alef.
func foldRune(r rune) rune {
	switch r {
	case 'ك': // U+0643 Arabic kaf
		return 'ک' // U+06A9
	case 'ي', 'ى': // U+064A Arabic yeh, U+0649 alef maksura
		return 'ی' // U+06CC
	case 'ة': // U+0629 teh marbuta
		return 'ه' // U+0647
	}
	// Arabic-Indic digits U+0660..U+0669
	if r >= 0x0660 && r <= 0x0669 {
		return '0' + (r - 0x0660)
	}
	// Extended Arabic-Indic digits U+06F0..U+06F9
	if r >= 0x06F0 && r <= 0x06F9 {
		return '0' + (r - 0x06F0)
	}
	return r
}

var canonicalizer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(ignorable)),
	runes.Remove(runes.In(unicode.Mn)), // combining marks (diacritics, hamza)
	runes.Map(foldRune),
	norm.NFC,
)

// Normalize canonicalizes a string for comparison: NFD decomposition,
// zero-width/bidi/tatweel removal, combining-mark stripping, Arabic→Persian
// letter and digit folding, whitespace folding to single spaces, NFC
// recomposition. Normalize is a fixed point: applying it twice yields the
// same result as applying it once.
func Normalize(s string) string {
	out, _, err := transform.String(canonicalizer, s)
	if err != nil {
		// Invalid UTF-8 input; fall back to the raw string rather than fail
		// the comparison outright.
		out = s
	}
	return CollapseSpaces(out)
}

// CollapseSpaces folds every whitespace run to a single ASCII space and trims
// the ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripSpaces removes all whitespace. Used for the half-space comparison rule:
// Persian compound words are legitimately written with ZWNJ, a space, or
// nothing at all between their parts.
func StripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// HasJoinControl reports whether the raw string contains a Persian half-space
// (ZWNJ) or ZWJ.
func HasJoinControl(s string) bool {
	return strings.ContainsRune(s, 0x200C) || strings.ContainsRune(s, 0x200D)
}

// ContainsPersianArabic reports whether any rune falls in the Arabic script
// blocks (base, supplement, extended, presentation forms).
func ContainsPersianArabic(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x0600 && r <= 0x06FF,
			r >= 0x0750 && r <= 0x077F,
			r >= 0x08A0 && r <= 0x08FF,
			r >= 0xFB50 && r <= 0xFDFF,
			r >= 0xFE70 && r <= 0xFEFF:
			return true
		}
	}
	return false
}

// EqualFolded compares two already-normalized strings, optionally ignoring
// case.
func EqualFolded(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
