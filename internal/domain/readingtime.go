package domain

import "strings"

// ReadingWordsPerMinute is the assumed reading speed.
const ReadingWordsPerMinute = 200

// EstimateReadingMinutes converts a word count to whole minutes,
// rounding up with a floor of one minute. Zero words means no estimate.
func EstimateReadingMinutes(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}
	minutes := (wordCount + ReadingWordsPerMinute - 1) / ReadingWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
