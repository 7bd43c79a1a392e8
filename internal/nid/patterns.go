package nid

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// Keyword tables are matched as lower-case substrings of a cleaned token.
// Extend them here; the extractors only iterate over them. Entries are
// NFC composed to match CleanText output.
var (
	nameKeywords = []string{"name", "namae"}

	dobKeywords = []string{"date of birth", "dob", "birth"}

	idKeywords = []string{"nid", "id no", "nid no"}

	addressKeywords = nfc([]string{
		// Bengali
		"ঠিকানা", // address
		"গ্রাম",  // village
		"পোস্ট",  // post
		"থানা",   // thana
		"জেলা",   // district
		"বিভাগ",  // division
		"উপজেলা", // upazila
		// English
		"address",
		"village",
		"post",
		"thana",
		"district",
		"division",
		"upazila",
		"holding",
		"road",
		"ward",
	})

	stopKeywords = nfc([]string{
		// Bengali
		"জন্ম",     // birth
		"তারিখ",    // date
		"রক্ত",     // blood
		"স্বাক্ষর", // signature
		// English
		"date of birth",
		"dob",
		"birth",
		"blood",
		"signature",
		"issue",
		"expire",
	})

	bloodKeywords = nfc([]string{"blood", "রক্ত"})
)

func nfc(words []string) []string {
	for i, w := range words {
		words[i] = norm.NFC.String(w)
	}
	return words
}

// Recognized date surface forms, tried in order against each candidate.
// Digits may be ASCII or Bengali. A date must not touch a letter or digit
// on either side; the date itself is capture group 1.
var datePatterns = []*regexp.Regexp{
	// DD/MM/YYYY, DD-MM-YYYY, DD.MM.YYYY
	datePattern(dateDigit + `{2}[/\-.]` + dateDigit + `{2}[/\-.]` + dateDigit + `{4}`),
	// DD Mon YYYY
	datePattern(dateDigit + `{2}\s+` + monthName + `\s+` + dateDigit + `{4}`),
	// Mon DD, YYYY
	datePattern(monthName + `\s+` + dateDigit + `{2},?\s+` + dateDigit + `{4}`),
}

const (
	dateDigit = `[0-9০-৯]`
	monthName = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*`
)

func datePattern(body string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(` + body + `)(?:[^\p{L}\p{N}_]|$)`)
}

var (
	yearPattern = regexp.MustCompile(dateDigit + `{4}`)

	idNumberPattern = regexp.MustCompile(`\b[0-9]{10,17}\b`)
	nonDigitSpace   = regexp.MustCompile(`[^0-9\s]`)
	spacedDigits    = regexp.MustCompile(`[0-9]+(?:\s+[0-9]+)+`)
	whitespace      = regexp.MustCompile(`\s+`)

	longDigitRun = regexp.MustCompile(`\d{10,}`)

	repeatedCommas = regexp.MustCompile(`,\s*,+`)
	trailingComma  = regexp.MustCompile(`,\s*$`)

	// The group must not touch a word character on either side; "ve" as in
	// "B+ve" is allowed after the sign.
	bloodGroupPattern = regexp.MustCompile(`(?i)(?:^|[^0-9A-Za-z_])(AB|A|B|O)([+-])(?:ve)?(?:[^0-9A-Za-z_]|$)`)
)

// Accepted ID lengths when no keyword anchors the search.
var unanchoredIDLengths = map[int]bool{10: true, 13: true, 17: true}

const (
	minAnchoredIDLength = 10

	nameLookahead   = 3
	nameScanTokens  = 10
	dobCombineLimit = 5
	dobWindowOffset = 8
	dobMaxWindow    = 5
	idLookahead     = 3
	maxAddressParts = 10

	minBirthYear = 1900
)
