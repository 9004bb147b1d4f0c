// cmd/brasilviral/score.go
package main

import (
	"strings"
	"unicode"
)

// CalculateViralScore rates an article from 0 to 100 using trending
// topic matches, title length, digits and emotional keywords.
func CalculateViralScore(title, content string, trendingTopics []string) int {
	score := 0
	titleLower := strings.ToLower(title)
	contentLower := strings.ToLower(content)

	for _, topic := range trendingTopics {
		if topic == "" {
			continue
		}
		topic := strings.ToLower(topic)
		if strings.Contains(titleLower, topic) {
			score += 20
		} else if strings.Contains(contentLower, topic) {
			score += 10
		}
	}

	// Titles of 6 to 12 words click best.
	words := len(strings.Fields(title))
	if words >= 6 && words <= 12 {
		score += 15
	}

	for _, r := range title {
		if unicode.IsDigit(r) {
			score += 10
			break
		}
	}

	for _, word := range emotionalWords {
		if strings.Contains(titleLower, word) {
			score += 5
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}
