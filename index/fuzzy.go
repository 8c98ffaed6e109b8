package index

import (
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/poiesic/omnisearch/core"
)

// DefaultThreshold is the largest per-field distance still considered a match.
const DefaultThreshold = 0.4

// FieldWeights sets the relative importance of each searchable field.
type FieldWeights struct {
	Title        float64
	SearchPhrase float64
	Keywords     float64
	Description  float64
	Breadcrumbs  float64
}

// DefaultFieldWeights returns the standard field weights.
func DefaultFieldWeights() FieldWeights {
	return FieldWeights{
		Title:        0.2,
		SearchPhrase: 0.3,
		Keywords:     0.2,
		Description:  0.2,
		Breadcrumbs:  0.1,
	}
}

func (w FieldWeights) sum() float64 {
	return w.Title + w.SearchPhrase + w.Keywords + w.Description + w.Breadcrumbs
}

// Match is a single fuzzy hit.
type Match struct {
	Item  *core.WeightedDocument
	Score float64
}

// FuzzyIndex is a read-only weighted fuzzy index. It is safe for concurrent use.
type FuzzyIndex struct {
	entries         []entry
	weights         FieldWeights
	threshold       float64
	ignoreFieldNorm bool
}

// Option configures a FuzzyIndex.
type Option func(*FuzzyIndex)

// WithThreshold sets the per-field match threshold in [0,1].
func WithThreshold(threshold float64) Option {
	return func(ix *FuzzyIndex) {
		if threshold < 0 {
			threshold = 0
		}
		if threshold > 1 {
			threshold = 1
		}
		ix.threshold = threshold
	}
}

// WithFieldWeights overrides the field weights. Weights are normalized to sum to 1.
func WithFieldWeights(w FieldWeights) Option {
	return func(ix *FuzzyIndex) {
		if w.sum() > 0 {
			ix.weights = w
		}
	}
}

// WithIgnoreFieldNorm disables the field-length norm.
func WithIgnoreFieldNorm() Option {
	return func(ix *FuzzyIndex) {
		ix.ignoreFieldNorm = true
	}
}

type entry struct {
	doc    *core.WeightedDocument
	fields []field
}

type field struct {
	weight float64
	values []value
}

type value struct {
	text   string
	tokens []string
	norm   float64
}

// NewFuzzyIndex indexes docs. The index keeps pointers into docs, which must
// not be modified afterwards.
func NewFuzzyIndex(docs []core.WeightedDocument, opts ...Option) *FuzzyIndex {
	ix := &FuzzyIndex{
		weights:   DefaultFieldWeights(),
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(ix)
	}

	total := ix.weights.sum()
	ix.entries = make([]entry, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		ix.entries = append(ix.entries, entry{
			doc: doc,
			fields: []field{
				newField(ix.weights.Title/total, doc.Title),
				newField(ix.weights.SearchPhrase/total, doc.SearchPhrase),
				newField(ix.weights.Keywords/total, doc.Keywords...),
				newField(ix.weights.Description/total, doc.Description),
				newField(ix.weights.Breadcrumbs/total, doc.Breadcrumbs...),
			},
		})
	}
	return ix
}

func newField(weight float64, texts ...string) field {
	f := field{weight: weight}
	for _, t := range texts {
		text := normalize(t)
		if text == "" {
			continue
		}
		tokens := tokenize(text)
		f.values = append(f.values, value{
			text:   text,
			tokens: tokens,
			norm:   fieldNorm(len(tokens)),
		})
	}
	return f
}

// Len returns the number of indexed documents.
func (ix *FuzzyIndex) Len() int {
	return len(ix.entries)
}

// Search returns all documents matching text, best first. Equal scores keep
// index order.
func (ix *FuzzyIndex) Search(text string) []Match {
	query := normalize(text)
	if query == "" {
		return nil
	}
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var matches []Match
	for i := range ix.entries {
		e := &ix.entries[i]
		score, ok := ix.scoreEntry(e, query, queryTokens)
		if !ok {
			continue
		}
		matches = append(matches, Match{Item: e.doc, Score: score})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		default:
			return 0
		}
	})
	return matches
}

func (ix *FuzzyIndex) scoreEntry(e *entry, query string, queryTokens []string) (float64, bool) {
	total := 1.0
	matched := false
	for _, f := range e.fields {
		if f.weight == 0 {
			continue
		}
		best, norm := 1.0, 1.0
		for _, v := range f.values {
			if s := valueDistance(query, queryTokens, v); s < best {
				best, norm = s, v.norm
			}
		}
		if best > ix.threshold {
			continue
		}
		matched = true
		if best == 0 {
			best = epsilon
		}
		if ix.ignoreFieldNorm {
			norm = 1
		}
		total *= math.Pow(best, f.weight*norm)
	}
	return total, matched
}

// epsilon stands in for a perfect field score so that the field weight still
// influences the product.
const epsilon = 2.220446049250313e-16

// valueDistance is the normalized distance of the query to a field value:
// 0 when the value contains the whole query, otherwise the mean over query
// tokens of the best token distance within the value.
func valueDistance(query string, queryTokens []string, v value) float64 {
	if strings.Contains(v.text, query) {
		return 0
	}
	var sum float64
	for _, qt := range queryTokens {
		best := 1.0
		for _, ft := range v.tokens {
			if d := tokenDistance(qt, ft); d < best {
				best = d
				if best == 0 {
					break
				}
			}
		}
		sum += best
	}
	return sum / float64(len(queryTokens))
}

// tokenDistance compares a query token with a field token and with the field
// token's prefix of the same length, so partially typed words still match.
func tokenDistance(q, t string) float64 {
	if strings.Contains(t, q) {
		return 0
	}
	ql := utf8.RuneCountInString(q)
	tl := utf8.RuneCountInString(t)
	d := float64(levenshtein.ComputeDistance(q, t)) / float64(max(ql, tl))
	if tl > ql {
		prefix := string([]rune(t)[:ql])
		if pd := float64(levenshtein.ComputeDistance(q, prefix)) / float64(ql); pd < d {
			d = pd
		}
	}
	return min(d, 1)
}

// fieldNorm mirrors the usual 1/sqrt(n) field-length norm, rounded to three decimals.
func fieldNorm(tokens int) float64 {
	if tokens == 0 {
		return 1
	}
	return math.Round(1/math.Sqrt(float64(tokens))*1000) / 1000
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
