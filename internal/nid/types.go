package nid

// Point is one (x, y) corner of a token's bounding box.
type Point [2]float64

// Token is one unit of recognized text. Its position in a TokenStream is
// the recognizer's reading order and every extractor relies on it.
type Token struct {
	Text        string  `json:"text" yaml:"text"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
	BoundingBox []Point `json:"bounding_box,omitempty" yaml:"bounding_box,omitempty"`
}

// TokenStream is the recognizer output for one image. It is shared with
// the result cache, so holders must treat Tokens as read-only.
type TokenStream struct {
	Success          bool    `json:"success" yaml:"success"`
	Tokens           []Token `json:"tokens" yaml:"tokens"`
	ProcessingTimeMs float64 `json:"processing_time_ms" yaml:"processing_time_ms"`
	Error            string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// FrontFields is the front side of the card. Empty strings mean not found.
type FrontFields struct {
	Name        string   `json:"name" yaml:"name"`
	DateOfBirth string   `json:"date_of_birth" yaml:"date_of_birth"`
	IDNumber    string   `json:"nid_number" yaml:"nid_number"`
	RawText     []string `json:"raw_text" yaml:"raw_text"`
}

// BackFields is the back side of the card. Empty strings mean not found.
type BackFields struct {
	Address    string   `json:"address" yaml:"address"`
	BloodGroup string   `json:"blood_group" yaml:"blood_group"`
	RawText    []string `json:"raw_text" yaml:"raw_text"`
}

// candidate is a tentative value and the index of the token it came from.
type candidate struct {
	text  string
	index int
}

// longest returns the longest candidate text, preferring the earliest on ties.
func longest(candidates []candidate) string {
	best := -1
	bestLen := -1
	for i, c := range candidates {
		if n := runeLen(c.text); n > bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return ""
	}
	return candidates[best].text
}
