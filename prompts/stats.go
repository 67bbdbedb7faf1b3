package prompts

import "strings"

// Average spoken words per minute used for duration estimates.
const wordsPerMinute = 150

func WordCount(s string) int {
	return len(strings.Fields(s))
}

// EstimatedDurationSec converts a word count into estimated speaking time.
func EstimatedDurationSec(words int) int {
	return words * 60 / wordsPerMinute
}
