// Package nid extracts identity fields from the recognized text of a
// national ID card.
//
// Every function here is a pure function of its input: no I/O, no shared
// mutable state, safe to call from any number of goroutines. Extraction
// never fails; a field that cannot be found is left empty.
package nid

import (
	"strings"
	"time"
)

// ParseFront extracts name, date of birth and ID number. An unsuccessful
// or empty stream yields empty fields and an empty RawText.
func ParseFront(stream TokenStream) FrontFields {
	return parseFront(stream, time.Now().Year())
}

func parseFront(stream TokenStream, maxYear int) FrontFields {
	if !stream.Success || len(stream.Tokens) == 0 {
		return FrontFields{RawText: []string{}}
	}

	texts := cleanTokens(stream.Tokens)
	return FrontFields{
		Name:        ExtractName(texts),
		DateOfBirth: extractDateOfBirth(texts, maxYear),
		IDNumber:    ExtractIDNumber(texts),
		RawText:     texts,
	}
}

// ParseBack extracts the address and blood group. An unsuccessful or
// empty stream yields empty fields and an empty RawText.
func ParseBack(stream TokenStream) BackFields {
	if !stream.Success || len(stream.Tokens) == 0 {
		return BackFields{RawText: []string{}}
	}

	texts := cleanTokens(stream.Tokens)
	return BackFields{
		Address:    ExtractAddress(texts),
		BloodGroup: ExtractBloodGroup(RawTexts(stream)),
		RawText:    texts,
	}
}

// RawTexts returns the unprocessed token texts, or nil for an
// unsuccessful stream.
func RawTexts(stream TokenStream) []string {
	if !stream.Success {
		return nil
	}
	texts := make([]string, len(stream.Tokens))
	for i, tok := range stream.Tokens {
		texts[i] = tok.Text
	}
	return texts
}

// FormattedText joins the raw token texts with sep.
func FormattedText(stream TokenStream, sep string) string {
	return strings.Join(RawTexts(stream), sep)
}

// CountBengali reports how many cleaned texts hold Bengali script.
func CountBengali(texts []string) int {
	n := 0
	for _, t := range texts {
		if containsBengali(t) {
			n++
		}
	}
	return n
}
