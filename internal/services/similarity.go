package services

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

// VectorSimilarity scores lexical similarity between two documents in [0,1].
type VectorSimilarity interface {
	Available() bool
	Similarity(a, b string) (float64, error)
}

// tfidfSimilarity vectorizes both documents with term-frequency/inverse-
// document-frequency weights and returns their cosine similarity.
type tfidfSimilarity struct{}

func NewTFIDFSimilarity() VectorSimilarity {
	return &tfidfSimilarity{}
}

func (t *tfidfSimilarity) Available() bool {
	return true
}

var errEmptyDocument = errors.New("document has no scorable terms")

func (t *tfidfSimilarity) Similarity(a, b string) (float64, error) {
	termsA := termCounts(tokenize(a))
	termsB := termCounts(tokenize(b))
	if len(termsA) == 0 || len(termsB) == 0 {
		return 0, errEmptyDocument
	}

	// Smoothed idf over the two-document corpus: ln((1+n)/(1+df)) + 1.
	vocabulary := make(map[string]struct{}, len(termsA)+len(termsB))
	for term := range termsA {
		vocabulary[term] = struct{}{}
	}
	for term := range termsB {
		vocabulary[term] = struct{}{}
	}

	var dot, normA, normB float64
	for term := range vocabulary {
		df := 0
		if termsA[term] > 0 {
			df++
		}
		if termsB[term] > 0 {
			df++
		}
		idf := math.Log(3.0/float64(1+df)) + 1

		wa := float64(termsA[term]) * idf
		wb := float64(termsB[term]) * idf
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0, errEmptyDocument
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

var nonWordPattern = regexp.MustCompile(`[^a-z0-9]+`)

// stopwords is a compact english stopword list applied before weighting.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "he": {},
	"her": {}, "his": {}, "i": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "or": {}, "our": {}, "she": {}, "that": {}, "the": {},
	"their": {}, "they": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"were": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

func tokenize(text string) []string {
	text = strings.ToLower(text)
	text = nonWordPattern.ReplaceAllString(text, " ")

	var tokens []string
	for _, token := range strings.Fields(text) {
		if _, skip := stopwords[token]; skip {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
