package nid

import "strings"

// ExtractIDNumber finds the national ID number. Each pass runs only when
// the previous one found nothing:
//
//  1. near an ID keyword (the keyword token and the three after it), any
//     digit run of 10-17 digits, contiguous or space separated;
//  2. anywhere, space separated groups totalling 10, 13 or 17 digits;
//  3. anywhere, a contiguous run of exactly 10, 13 or 17 digits.
//
// Among the distinct candidates of the winning pass the longest is kept.
func ExtractIDNumber(texts []string) string {
	candidates := anchoredIDCandidates(texts)

	if len(candidates) == 0 {
		for i, text := range texts {
			for _, digits := range spacedDigitGroups(text) {
				if unanchoredIDLengths[len(digits)] {
					candidates = append(candidates, candidate{digits, i})
				}
			}
		}
	}

	if len(candidates) == 0 {
		for i, text := range texts {
			for _, m := range idNumberPattern.FindAllString(text, -1) {
				if unanchoredIDLengths[len(m)] {
					candidates = append(candidates, candidate{m, i})
				}
			}
		}
	}

	return longest(dedupe(candidates))
}

func anchoredIDCandidates(texts []string) []candidate {
	var candidates []candidate
	for i, text := range texts {
		if !containsAny(strings.ToLower(text), idKeywords) {
			continue
		}
		for j := i; j <= i+idLookahead && j < len(texts); j++ {
			for _, m := range idNumberPattern.FindAllString(texts[j], -1) {
				if len(m) >= minAnchoredIDLength {
					candidates = append(candidates, candidate{m, j})
				}
			}
			for _, digits := range spacedDigitGroups(texts[j]) {
				if len(digits) >= minAnchoredIDLength {
					candidates = append(candidates, candidate{digits, j})
				}
			}
		}
	}
	return candidates
}

// spacedDigitGroups strips everything but digits and whitespace, then
// returns each run of two or more space separated digit groups with the
// spaces removed ("ID: 600 124 4158" gives "6001244158").
func spacedDigitGroups(text string) []string {
	digitsOnly := nonDigitSpace.ReplaceAllString(text, "")
	matches := spacedDigits.FindAllString(digitsOnly, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, whitespace.ReplaceAllString(m, ""))
	}
	return out
}

// dedupe drops repeated texts, keeping the first occurrence.
func dedupe(candidates []candidate) []candidate {
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0:0]
	for _, c := range candidates {
		if seen[c.text] {
			continue
		}
		seen[c.text] = true
		out = append(out, c)
	}
	return out
}
