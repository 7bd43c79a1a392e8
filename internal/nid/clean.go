package nid

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	bengaliFirst = 'ঀ'
	bengaliLast  = '৿'
	danda        = '।'
	doubleDanda  = '॥'
)

// CleanText normalises one OCR token: NFC composition, control characters
// removed, punctuation outside "-/.,:" dropped, whitespace collapsed.
// Letters and digits of any script survive, as does the whole Bengali
// block (vowel signs included) and the danda separator.
func CleanText(text string) string {
	return collapseSpaces(strings.Map(keepRune, norm.NFC.String(text)))
}

func keepRune(r rune) rune {
	switch {
	case unicode.IsSpace(r):
		return ' '
	case unicode.IsControl(r):
		return -1
	case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
		return r
	case isBengaliRune(r), r == danda, r == doubleDanda:
		return r
	case strings.ContainsRune("-/.,:", r):
		return r
	}
	return -1
}

// normalizeRaw keeps every character but composes and collapses whitespace.
func normalizeRaw(text string) string {
	return collapseSpaces(norm.NFC.String(text))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanTokens returns the cleaned, non-blank texts in stream order.
func cleanTokens(tokens []Token) []string {
	texts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		if cleaned := CleanText(tok.Text); cleaned != "" {
			texts = append(texts, cleaned)
		}
	}
	return texts
}

func isBengaliRune(r rune) bool {
	return r >= bengaliFirst && r <= bengaliLast
}

func containsBengali(s string) bool {
	return strings.IndexFunc(s, isBengaliRune) >= 0
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// isUpperText reports whether s has at least one cased letter and no
// lower- or title-case letters.
func isUpperText(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
