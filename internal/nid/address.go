package nid

import "strings"

// addressState is the position of the single forward scan.
type addressState int

const (
	outsideSection addressState = iota
	inSection
)

// ExtractAddress collects the back-side address in one forward pass.
//
// A section keyword (English or Bengali) opens the section; text after a
// colon or danda on that token seeds the first part. Lines holding
// Bengali script, or a digit next to ',', '-' or '/', open it too. Once
// open, a stop keyword ends the scan, 10+ digit runs and one-character
// noise are skipped, and collection stops at maxAddressParts parts.
func ExtractAddress(texts []string) string {
	var parts []string
	state := outsideSection

	for _, text := range texts {
		text = CleanText(text)
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)

		if state == inSection && containsAny(lower, stopKeywords) {
			break
		}

		if containsAny(lower, addressKeywords) {
			state = inSection
			if rest, ok := afterSeparator(text); ok && rest != "" {
				parts = append(parts, rest)
			}
		} else if state == inSection || isLikelyAddressLine(text) {
			state = inSection
			if longDigitRun.MatchString(text) || runeLen(text) < 2 {
				continue
			}
			parts = append(parts, text)
		}

		if len(parts) >= maxAddressParts {
			break
		}
	}

	return joinAddress(parts)
}

// isLikelyAddressLine is the heuristic for unlabelled address lines.
func isLikelyAddressLine(text string) bool {
	if containsBengali(text) {
		return true
	}
	return hasDigit(text) && strings.ContainsAny(text, ",-/")
}

// afterSeparator returns the trimmed text after the first colon, or after
// the first danda when there is no colon.
func afterSeparator(text string) (string, bool) {
	if _, after, ok := strings.Cut(text, ":"); ok {
		return strings.TrimSpace(after), true
	}
	if _, after, ok := strings.Cut(text, string(danda)); ok {
		return strings.TrimSpace(after), true
	}
	return "", false
}

func joinAddress(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	address := strings.Join(parts, ", ")
	address = repeatedCommas.ReplaceAllString(address, ",")
	address = collapseSpaces(address)
	address = trailingComma.ReplaceAllString(address, "")
	return strings.TrimSpace(address)
}

// ExtractBloodGroup scans raw (whitespace normalised, unstripped) token
// texts that mention blood and returns the last group found, upper-cased.
// It must see raw text because cleaning removes the '+' sign.
func ExtractBloodGroup(rawTexts []string) string {
	group := ""
	for _, text := range rawTexts {
		text = normalizeRaw(text)
		if !containsAny(strings.ToLower(text), bloodKeywords) {
			continue
		}
		if m := bloodGroupPattern.FindStringSubmatch(text); m != nil {
			group = strings.ToUpper(m[1]) + m[2]
		}
	}
	return group
}
