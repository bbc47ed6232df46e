package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Display text limits, in runes
const (
	MaxTitleLen = 200
	MaxNotesLen = 1000
)

// pool of fresh transformer chains
// case is preserved; titles are displayed back to the user
var textChains = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.Predicate(isControl)), // NUL, C0 except whitespace, DEL, C1
			runes.Remove(runes.In(unicode.Cf)),       // ZWJ ZWNJ FEFF and friends
			width.Fold,
		)
	},
}

// CleanText tidies a free form title or note
// invalid UTF-8 is dropped, control and format characters removed, whitespace runs collapsed
// (newlines kept), and the result truncated to max runes when max > 0
func CleanText(s string, max int) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := textChains.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	textChains.Put(tr)
	if err != nil {
		out = s
	}

	out = collapseSpaces(out)
	if max > 0 && utf8.RuneCountInString(out) > max {
		r := []rune(out)
		out = strings.TrimRight(string(r[:max]), " \n")
	}
	return out
}

func isControl(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

// collapseSpaces turns whitespace runs into one space, or one newline when the run had a line break
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS, sawNL := false, false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		if inWS && b.Len() > 0 {
			if sawNL {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		inWS, sawNL = false, false
		b.WriteRune(r)
	}
	return b.String()
}
