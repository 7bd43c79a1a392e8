package nid

import "strings"

// ExtractName picks the holder's name from cleaned texts.
//
// Candidates come from four independent sources: the text after a
// "Name:" label (or the lines that follow an empty label), the token
// after a label without a colon, all-caps multi-word lines near the top
// of the card, and pairs of adjacent all-caps lines. The longest
// candidate wins since OCR more often truncates a name than pads it.
func ExtractName(texts []string) string {
	var candidates []candidate

	for i, text := range texts {
		if !containsAny(strings.ToLower(text), nameKeywords) {
			continue
		}

		if _, after, ok := strings.Cut(text, ":"); ok {
			if name := strings.TrimSpace(after); runeLen(name) > 2 {
				candidates = append(candidates, candidate{name, i})
				continue
			}
			if collected := collectNameLines(texts[i+1:]); runeLen(collected) > 2 {
				candidates = append(candidates, candidate{collected, i + 1})
			}
			continue
		}

		if i+1 < len(texts) {
			next := strings.TrimSpace(texts[i+1])
			if runeLen(next) > 2 && !hasDigit(next) {
				candidates = append(candidates, candidate{next, i + 1})
			}
		}
	}

	for i, text := range texts[:min(nameScanTokens, len(texts))] {
		if isUpperText(text) && len(strings.Fields(text)) >= 2 && runeLen(text) > 5 && !hasDigit(text) {
			candidates = append(candidates, candidate{text, i})
		}
	}

	for i := 0; i+1 < len(texts); i++ {
		current := strings.TrimSpace(texts[i])
		next := strings.TrimSpace(texts[i+1])
		if current == "" || next == "" {
			continue
		}
		if !isUpperText(current) || !isUpperText(next) || hasDigit(current+next) {
			continue
		}
		if combined := current + " " + next; runeLen(combined) > 5 {
			candidates = append(candidates, candidate{combined, i})
		}
	}

	return longest(candidates)
}

// collectNameLines joins up to nameLookahead lines following an empty
// name label, stopping at a blank line, a date or ID label, or any digit.
func collectNameLines(following []string) string {
	var parts []string
	for _, text := range following {
		text = strings.TrimSpace(text)
		if text == "" {
			break
		}
		lower := strings.ToLower(text)
		if containsAny(lower, dobKeywords) || containsAny(lower, idKeywords) || hasDigit(text) {
			break
		}
		parts = append(parts, text)
		if len(parts) >= nameLookahead {
			break
		}
	}
	return strings.Join(parts, " ")
}
