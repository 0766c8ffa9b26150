// Package scoring computes the deterministic lexical similarity between a
// resume and a job description. It is a two-document TF-IDF cosine: cheap,
// reproducible, and independent of any model call.
package scoring

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// vocabularyCap bounds the shared vocabulary to the most frequent terms
// across both documents, keeping the vectors small on long resumes.
const vocabularyCap = 500

var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9_]+`)

// LexicalSimilarity returns the TF-IDF cosine similarity between the two
// texts as a percentage rounded to two decimals. Either text being empty (or
// sharing no vocabulary) yields 0. The measure is symmetric in its arguments.
func LexicalSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	vocab := buildVocabulary(tokensA, tokensB)
	if len(vocab) == 0 {
		return 0
	}

	vecA := vectorize(tokensA, tokensB, vocab)
	vecB := vectorize(tokensB, tokensA, vocab)

	similarity := dot(vecA, vecB)
	if similarity <= 0 {
		return 0
	}
	if similarity > 1 {
		similarity = 1
	}

	return math.Round(similarity*100*100) / 100
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// buildVocabulary keeps the vocabularyCap most frequent terms over both
// documents, ties broken alphabetically so the result is deterministic.
func buildVocabulary(a, b []string) map[string]int {
	totals := make(map[string]int)
	for _, tok := range a {
		totals[tok]++
	}
	for _, tok := range b {
		totals[tok]++
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > vocabularyCap {
		terms = terms[:vocabularyCap]
	}

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

// vectorize builds the L2-normalized TF-IDF vector for doc against the
// two-document corpus (doc plus other), using smoothed document frequencies.
func vectorize(doc, other []string, vocab map[string]int) []float64 {
	counts := make(map[string]int)
	for _, tok := range doc {
		counts[tok]++
	}
	otherSet := make(map[string]bool)
	for _, tok := range other {
		otherSet[tok] = true
	}

	const corpusSize = 2.0
	vec := make([]float64, len(vocab))
	for term, idx := range vocab {
		tf := counts[term]
		if tf == 0 {
			continue
		}

		df := 1.0
		if otherSet[term] {
			df = 2.0
		}
		idf := math.Log((1+corpusSize)/(1+df)) + 1

		vec[idx] = float64(tf) * idf
	}

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Blend combines the model's rubric score with the lexical score using a
// 70/30 weighting, rounded to two decimals.
func Blend(matchPercentage, lexical float64) float64 {
	return math.Round((0.7*matchPercentage+0.3*lexical)*100) / 100
}
