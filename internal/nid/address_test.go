package nid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAddress(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{
			name:  "keyword seeded parts end at birth line",
			texts: []string{"Village: ABC", "Post: XYZ", "Date of Birth: 1 Jan 1990"},
			want:  "ABC, XYZ",
		},
		{
			name:  "standalone keyword starts on next line",
			texts: []string{"Address", "House 7", "Mirpur", "Dhaka", "Signature"},
			want:  "House 7, Mirpur, Dhaka",
		},
		{
			name:  "id number and noise skipped",
			texts: []string{"Address:", "1234567890123", "x", "Mirpur", "Dhaka"},
			want:  "Mirpur, Dhaka",
		},
		{
			name:  "house number heuristic opens section",
			texts: []string{"12/3 Lake Circus", "Dhanmondi", "Blood Group: A+"},
			want:  "12/3 Lake Circus, Dhanmondi",
		},
		{
			name:  "bengali line opens section",
			texts: []string{"Card No 5", "রামপুর, কালনা", "Issue Date 01/01/2020"},
			want:  "রামপুর, কালনা",
		},
		{
			name:  "danda separator",
			texts: []string{"গ্রাম। রামপুর", "জেলা। খুলনা"},
			want:  "রামপুর, খুলনা",
		},
		{
			name:  "duplicate and trailing commas collapsed",
			texts: []string{"Village: Kashipur,", "Post: Kalia,"},
			want:  "Kashipur, Kalia",
		},
		{
			name:  "stop keyword before any section is ignored",
			texts: []string{"Date of Birth", "Village: ABC"},
			want:  "ABC",
		},
		{
			name:  "no address",
			texts: []string{"Signature", "Issue Date"},
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractAddress(tc.texts))
		})
	}
}

func TestExtractAddressStopsAfterTenParts(t *testing.T) {
	texts := []string{"Address:"}
	for i := 0; i < 15; i++ {
		texts = append(texts, fmt.Sprintf("Area %c", 'A'+i))
	}

	got := ExtractAddress(texts)
	assert.Equal(t, "Area A, Area B, Area C, Area D, Area E, Area F, Area G, Area H, Area I, Area J", got)
}

func TestExtractBloodGroup(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{"english label", []string{"Blood Group: AB+"}, "AB+"},
		{"lower case group", []string{"blood group: o-"}, "O-"},
		{"ve suffix", []string{"Blood Group B+ve"}, "B+"},
		{"bengali label", []string{"রক্তের গ্রুপ: A-"}, "A-"},
		{"no keyword", []string{"AB+"}, ""},
		{"group glued to a word", []string{"Blood Group: AB+X"}, ""},
		{"last labelled line wins", []string{"Blood Group: A+", "Blood (verified): O+"}, "O+"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractBloodGroup(tc.texts))
		})
	}
}
