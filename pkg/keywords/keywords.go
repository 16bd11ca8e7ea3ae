// Package keywords computes word frequency and keyword density for page text.
package keywords

import (
	"math"
	"sort"
	"strings"
)

// Keyword is one ranked word with its share of the page's countable words.
type Keyword struct {
	Word    string  `json:"word"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

type Report struct {
	TotalWords  int       `json:"total_words"`
	UniqueWords int       `json:"unique_words"`
	Top         []Keyword `json:"top"`
}

// Frequency builds a word frequency map for the text. Words are lowercased,
// stripped of surrounding punctuation, and stopwords are dropped. The second
// return value is the total number of countable words, the denominator for
// density.
func Frequency(text string) (map[string]int, int) {
	words := strings.Fields(strings.ToLower(text))
	frequencies := make(map[string]int)
	total := 0

	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			// Keep only lowercase letters and numbers
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})

		if word == "" {
			continue
		}
		total++

		if IsStopword(word) {
			continue
		}
		frequencies[word]++
	}

	return frequencies, total
}

// Merge aggregates several frequency maps into one.
func Merge(maps []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, counts := range maps {
		for word, count := range counts {
			merged[word] += count
		}
	}
	return merged
}

// Analyze ranks the top N keywords of the text by count, with density as a
// percentage of all countable words.
func Analyze(text string, n int) Report {
	frequencies, total := Frequency(text)

	type kv struct {
		word  string
		count int
	}
	ranked := make([]kv, 0, len(frequencies))
	for word, count := range frequencies {
		if !isValidKeyword(word) {
			continue
		}
		ranked = append(ranked, kv{word, count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	limit := n
	if len(ranked) < limit {
		limit = len(ranked)
	}
	if limit < 0 {
		limit = 0
	}

	top := make([]Keyword, limit)
	for i := 0; i < limit; i++ {
		top[i] = Keyword{
			Word:    ranked[i].word,
			Count:   ranked[i].count,
			Density: density(ranked[i].count, total),
		}
	}

	return Report{
		TotalWords:  total,
		UniqueWords: len(frequencies),
		Top:         top,
	}
}

// density is the word's share of all countable words, in percent, rounded to
// two decimal places.
func density(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

// isValidKeyword filters obviously broken tokens: trailing separators,
// unmatched delimiters, unmatched quotes. Technical terms like x_train pass.
func isValidKeyword(word string) bool {
	if strings.HasSuffix(word, ":") || strings.HasSuffix(word, "=") {
		return false
	}

	if strings.Contains(word, "(") && !strings.Contains(word, ")") {
		return false
	}
	if strings.Contains(word, "[") && !strings.Contains(word, "]") {
		return false
	}
	if strings.Contains(word, "{") && !strings.Contains(word, "}") {
		return false
	}

	if strings.Count(word, "\"")%2 != 0 {
		return false
	}
	if strings.Count(word, "'")%2 != 0 {
		return false
	}

	return true
}
