package domain

import "testing"

func TestEstimateReadingMinutes(t *testing.T) {
	tests := []struct {
		wordCount int
		expected  int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{150, 1},
		{200, 1},
		{201, 2},
		{401, 3},
		{4000, 20},
	}

	for _, tt := range tests {
		if got := EstimateReadingMinutes(tt.wordCount); got != tt.expected {
			t.Errorf("EstimateReadingMinutes(%d) = %d, want %d", tt.wordCount, got, tt.expected)
		}
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"one", 1},
		{"two  words", 2},
		{"line\nbreaks\tand  spaces", 4},
	}

	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.expected {
			t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.expected)
		}
	}
}
