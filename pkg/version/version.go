// Package version implements the ordering scheme used by WildFly and JBoss
// EAP release strings.
//
// A version string is split into integer and qualifier parts on '.' and '-'
// separators and on every digit/non-digit transition, so "1.0.0.Beta1"
// parses as [1, 0, 0, beta, 1]. Integer parts compare numerically and always
// rank above qualifier parts at the same position. Qualifier parts compare
// on a fixed pre-release scale:
//
//	snapshot < alpha < beta < milestone < rc < final
//
// with a qualifier outside the scale ranking directly above final.
// A missing trailing part counts as 0 against an integer and as final
// against a qualifier, which makes "1.0.0", "1.0.0.Final" and "1.0.0.GA"
// compare equal.
//
// Parsing is total: no input is rejected, so Compare can be handed raw,
// user-supplied strings.
package version

import (
	"strings"
	"unicode"
)

// rank orders release qualifiers from earliest pre-release to final.
// Qualifiers not present in qualifierRanks rank as unranked, directly above
// final, and order lexicographically among themselves.
type rank int

const (
	rankSnapshot rank = iota + 1
	rankAlpha
	rankBeta
	rankMilestone
	rankReleaseCandidate
	rankFinal
	rankUnranked
)

// qualifierRanks maps every recognized qualifier spelling, lowercased, to
// its rank. The empty string covers separator runs like "1..0".
var qualifierRanks = map[string]rank{
	"snapshot":  rankSnapshot,
	"alpha":     rankAlpha,
	"a":         rankAlpha,
	"beta":      rankBeta,
	"b":         rankBeta,
	"milestone": rankMilestone,
	"m":         rankMilestone,
	"rc":        rankReleaseCandidate,
	"cr":        rankReleaseCandidate,
	"final":     rankFinal,
	"ga":        rankFinal,
	"":          rankFinal,
}

func rankOf(qualifier string) rank {
	if r, ok := qualifierRanks[qualifier]; ok {
		return r
	}
	return rankUnranked
}

// part is one parsed segment of a version string: either a run of digits or
// a lowercased qualifier.
type part struct {
	digits    string
	qualifier string
	isInt     bool
}

func integerPart(digits string) part {
	return part{digits: digits, isInt: true}
}

func qualifierPart(text string) part {
	return part{qualifier: strings.ToLower(text)}
}

// Version is a parsed version string. The zero value is the parse of the
// empty string. Versions retain their original text: Equal compares that
// text, not the ordering semantics, so Parse("1.0") and Parse("1.0.0") are
// not Equal even though they Compare as equivalent.
type Version struct {
	raw   string
	parts []part
}

// Parse splits s into its ordered parts. It never fails; any string yields
// a usable Version.
func Parse(s string) Version {
	v := Version{raw: s}
	var buf strings.Builder
	isDigit := false
	for _, c := range s {
		if c == '.' || c == '-' {
			if isDigit {
				v.parts = append(v.parts, integerPart(buf.String()))
			} else {
				v.parts = append(v.parts, qualifierPart(buf.String()))
			}
			buf.Reset()
			isDigit = false
			continue
		}
		if unicode.IsDigit(c) {
			if !isDigit && buf.Len() > 0 {
				v.parts = append(v.parts, qualifierPart(buf.String()))
				buf.Reset()
			}
			isDigit = true
		} else {
			if isDigit && buf.Len() > 0 {
				v.parts = append(v.parts, integerPart(buf.String()))
				buf.Reset()
			}
			isDigit = false
		}
		buf.WriteRune(c)
	}
	if buf.Len() > 0 {
		if isDigit {
			v.parts = append(v.parts, integerPart(buf.String()))
		} else {
			v.parts = append(v.parts, qualifierPart(buf.String()))
		}
	}
	return v
}

// Compare parses both strings and orders them. It returns a negative value
// when a orders before b, zero when they are equivalent and a positive value
// when a orders after b.
func Compare(a, b string) int {
	return Parse(a).Compare(Parse(b))
}

// Compare orders v against o position by position; the shorter part
// sequence is padded with absent parts.
func (v Version) Compare(o Version) int {
	n := len(v.parts)
	if len(o.parts) > n {
		n = len(o.parts)
	}
	for i := 0; i < n; i++ {
		var left, right *part
		if i < len(v.parts) {
			left = &v.parts[i]
		}
		if i < len(o.parts) {
			right = &o.parts[i]
		}
		if c := compareParts(left, right); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports whether v and o were parsed from the same text.
func (v Version) Equal(o Version) bool {
	return v.raw == o.raw
}

// String returns the original input text.
func (v Version) String() string {
	return v.raw
}

func compareParts(left, right *part) int {
	if left == nil && right == nil {
		return 0
	}
	if left == nil {
		return -compareParts(right, nil)
	}
	if right == nil {
		if left.isInt {
			// An absent part counts as 0 against an integer.
			return compareDigits(left.digits, "")
		}
		// ...and as final against a qualifier.
		return compareRanks(rankOf(left.qualifier), rankFinal)
	}
	switch {
	case left.isInt && right.isInt:
		return compareDigits(left.digits, right.digits)
	case left.isInt:
		// An integer part always ranks above a qualifier part.
		return 1
	case right.isInt:
		return -1
	}
	lr, rr := rankOf(left.qualifier), rankOf(right.qualifier)
	if c := compareRanks(lr, rr); c != 0 {
		return c
	}
	if lr == rankUnranked {
		return strings.Compare(left.qualifier, right.qualifier)
	}
	return 0
}

func compareRanks(a, b rank) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareDigits orders two digit runs numerically without converting them,
// so arbitrarily long runs cannot overflow. Leading zeros are insignificant.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
