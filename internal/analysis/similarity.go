package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/ats-coach/internal/logger"
)

// MaxFeatures caps the TF-IDF vocabulary.
const MaxFeatures = 20000

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Similarity returns the TF-IDF cosine similarity of two texts over unigrams
// and bigrams, fit on exactly these two documents. Degenerate inputs score 0.
func Similarity(a, b string) float64 {
	docs := [2]map[string]float64{termCounts(a), termCounts(b)}

	vocab := vocabulary(docs[0], docs[1], MaxFeatures)
	if len(vocab) == 0 {
		logger.Debug().Str("component", "similarity").Msg("empty vocabulary, similarity is 0")
		return 0
	}

	var vecs [2][]float64
	for i, counts := range docs {
		vecs[i] = make([]float64, len(vocab))
		for j, term := range vocab {
			df := 0
			for _, d := range docs {
				if d[term] > 0 {
					df++
				}
			}
			// smooth idf: ln((1+n)/(1+df)) + 1 with n = 2
			idf := math.Log(3/float64(1+df)) + 1
			vecs[i][j] = counts[term] * idf
		}
	}

	normA, normB := l2(vecs[0]), l2(vecs[1])
	if normA == 0 || normB == 0 {
		logger.Debug().Str("component", "similarity").Msg("zero vector, similarity is 0")
		return 0
	}

	dot := 0.0
	for j := range vocab {
		dot += vecs[0][j] * vecs[1][j]
	}
	return clamp(dot/(normA*normB), 0, 1)
}

// tokenize lowercases, folds and splits text into word tokens, dropping stop words.
func tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))
	raw := tokenPattern.FindAllString(text, -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if !stopWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// termCounts counts unigrams and bigrams of text.
func termCounts(text string) map[string]float64 {
	tokens := tokenize(text)
	counts := make(map[string]float64, 2*len(tokens))
	for i, tok := range tokens {
		counts[tok]++
		if i > 0 {
			counts[tokens[i-1]+" "+tok]++
		}
	}
	return counts
}

// vocabulary returns the union of terms, keeping the limit most frequent
// (ties broken by term) in sorted order.
func vocabulary(a, b map[string]float64, limit int) []string {
	totals := make(map[string]float64, len(a)+len(b))
	for t, c := range a {
		totals[t] += c
	}
	for t, c := range b {
		totals[t] += c
	}

	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}
	if len(terms) > limit {
		sort.Slice(terms, func(i, j int) bool {
			if totals[terms[i]] != totals[terms[j]] {
				return totals[terms[i]] > totals[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms
}

func l2(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
