package nid

import (
	"strconv"
	"strings"
	"time"
)

// ExtractDateOfBirth finds the birth date in cleaned texts, accepting
// only years between 1900 and the current year.
func ExtractDateOfBirth(texts []string) string {
	return extractDateOfBirth(texts, time.Now().Year())
}

// extractDateOfBirth runs four passes, each wider than the last, and
// returns the first validated hit. The recognizer regularly splits one
// printed date (or its label) across several tokens, so later passes
// rebuild it by joining neighbours.
func extractDateOfBirth(texts []string, maxYear int) string {
	n := len(texts)

	// 1. Keyword token, its successor, and the keyword token joined with
	//    up to five following tokens.
	for i, text := range texts {
		if !containsAny(strings.ToLower(text), dobKeywords) {
			continue
		}
		candidates := []string{text}
		if i+1 < n {
			candidates = append(candidates, texts[i+1])
		}
		combined := text
		for offset := 1; offset <= dobCombineLimit && i+offset < n; offset++ {
			combined += " " + texts[i+offset]
			candidates = append(candidates, combined)
		}
		if date := findDate(candidates, maxYear); date != "" {
			return date
		}
	}

	// 2. Keyword split across a 3 or 4 token window.
	for i := 0; i+2 < n; i++ {
		window3 := strings.ToLower(joinRange(texts, i, i+3))
		window4 := ""
		if i+3 < n {
			window4 = strings.ToLower(joinRange(texts, i, i+4))
		}
		if !containsAny(window3, dobKeywords) && !containsAny(window4, dobKeywords) {
			continue
		}

		var candidates []string
		for offset := 0; offset < dobWindowOffset && i+offset < n; offset++ {
			for size := 1; size <= dobMaxWindow && i+offset+size <= n; size++ {
				candidates = append(candidates, joinRange(texts, i+offset, i+offset+size))
			}
		}
		if date := findDate(candidates, maxYear); date != "" {
			return date
		}
	}

	// 3. Any single token.
	if date := findDate(texts, maxYear); date != "" {
		return date
	}

	// 4. Any run of 2 to 5 consecutive tokens.
	for size := 2; size <= dobMaxWindow; size++ {
		var candidates []string
		for start := 0; start+size <= n; start++ {
			candidates = append(candidates, joinRange(texts, start, start+size))
		}
		if date := findDate(candidates, maxYear); date != "" {
			return date
		}
	}

	return ""
}

// findDate returns the first date form match, in candidate order then
// pattern order, whose year is plausible for a living card holder.
func findDate(candidates []string, maxYear int) string {
	for _, c := range candidates {
		for _, p := range datePatterns {
			if m := p.FindStringSubmatch(c); m != nil && validBirthYear(m[1], maxYear) {
				return m[1]
			}
		}
	}
	return ""
}

func validBirthYear(date string, maxYear int) bool {
	y := yearPattern.FindString(date)
	if y == "" {
		return false
	}
	year, err := strconv.Atoi(foldDigits(y))
	if err != nil {
		return false
	}
	return year >= minBirthYear && year <= maxYear
}

// foldDigits maps Bengali digits to their ASCII values.
func foldDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '০' && r <= '৯' {
			return '0' + (r - '০')
		}
		return r
	}, s)
}

func joinRange(texts []string, from, to int) string {
	return strings.Join(texts[from:to], " ")
}
