// Package fuzzy provides typo-tolerant text matching for search.
package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Field is one searchable piece of text and how much a hit in it counts.
type Field struct {
	Text   string
	Weight float64
}

// Distance returns the Levenshtein edit distance between a and b after normalization.
func Distance(a, b string) int {
	r1 := []rune(Normalize(a))
	r2 := []rune(Normalize(b))
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rolling rows instead of the full matrix.
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// Threshold is the edit distance tolerated for a query of this length.
func Threshold(query string) int {
	n := len([]rune(Normalize(query)))
	switch {
	case n <= 3:
		return 1
	case n >= 8:
		return 3
	default:
		return 2
	}
}

// Match reports whether query appears in text, allowing typos per word.
func Match(query, text string) bool {
	q := Normalize(query)
	t := Normalize(text)
	if q == "" {
		return true
	}
	if strings.Contains(t, q) {
		return true
	}

	limit := Threshold(q)
	for _, word := range strings.Fields(t) {
		if strings.HasPrefix(word, q) || Distance(q, word) <= limit {
			return true
		}
	}
	return false
}

// Score ranks how well query matches the fields. Zero means no match.
func Score(query string, fields ...Field) float64 {
	q := Normalize(query)
	if q == "" {
		return 0
	}

	var score float64
	for _, f := range fields {
		text := Normalize(f.Text)
		if text == "" {
			continue
		}
		if strings.Contains(text, q) {
			score += f.Weight
			if hasWord(text, q) {
				score += f.Weight / 2
			}
			continue
		}
		for _, word := range strings.Fields(text) {
			if strings.HasPrefix(word, q) {
				score += f.Weight * 0.4
				continue
			}
			if d := Distance(q, word); d <= Threshold(q) {
				score += f.Weight * (0.5 - 0.15*float64(d))
			}
		}
	}
	return score
}

// Normalize lowercases s, strips diacritics and collapses whitespace.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r == 'đ' {
			r = 'd'
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func hasWord(text, word string) bool {
	for _, w := range strings.Fields(text) {
		if w == word {
			return true
		}
	}
	return false
}
