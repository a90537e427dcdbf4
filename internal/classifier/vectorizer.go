package classifier

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// defaultTokenPattern matches runs of two or more word characters. It is
// the Unicode-aware equivalent of scikit-learn's `(?u)\b\w\w+\b`, which
// RE2 would otherwise read with ASCII-only \w and \b.
const defaultTokenPattern = `[\p{L}\p{N}_]{2,}`

const sklearnTokenPattern = `(?u)\b\w\w+\b`

// vectorizerFile is the JSON form of a fitted TF-IDF vectorizer.
type vectorizerFile struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Lowercase    *bool          `json:"lowercase"`
	TokenPattern string         `json:"token_pattern"`
	StopWords    []string       `json:"stop_words"`
	NGramRange   [2]int         `json:"ngram_range"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Binary       bool           `json:"binary"`
	UseIDF       *bool          `json:"use_idf"`
	Norm         *string        `json:"norm"`
}

// Vectorizer maps text onto a fixed-dimension TF-IDF feature space.
// It is immutable once built and safe for concurrent use.
type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	dim         int
	lowercase   bool
	token       *regexp.Regexp
	stopWords   map[string]struct{}
	minN, maxN  int
	sublinearTF bool
	binary      bool
	useIDF      bool
	norm        string
}

func newVectorizer(f vectorizerFile) (*Vectorizer, error) {
	if len(f.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer has an empty vocabulary")
	}

	v := &Vectorizer{
		vocabulary:  f.Vocabulary,
		idf:         f.IDF,
		lowercase:   true,
		minN:        1,
		maxN:        1,
		sublinearTF: f.SublinearTF,
		binary:      f.Binary,
		useIDF:      len(f.IDF) > 0,
		norm:        "l2",
	}
	if f.Lowercase != nil {
		v.lowercase = *f.Lowercase
	}
	if f.UseIDF != nil {
		v.useIDF = *f.UseIDF
	}
	if f.Norm != nil {
		v.norm = *f.Norm
	}
	switch v.norm {
	case "l1", "l2", "":
	default:
		return nil, fmt.Errorf("unsupported norm %q", v.norm)
	}
	if f.NGramRange != [2]int{} {
		v.minN, v.maxN = f.NGramRange[0], f.NGramRange[1]
	}
	if v.minN < 1 || v.maxN < v.minN {
		return nil, fmt.Errorf("invalid ngram_range %v", f.NGramRange)
	}

	pattern := defaultTokenPattern
	if f.TokenPattern != "" && f.TokenPattern != sklearnTokenPattern {
		pattern = strings.TrimPrefix(f.TokenPattern, "(?u)")
	}
	token, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile token_pattern: %w", err)
	}
	v.token = token

	if len(f.StopWords) > 0 {
		v.stopWords = make(map[string]struct{}, len(f.StopWords))
		for _, w := range f.StopWords {
			v.stopWords[w] = struct{}{}
		}
	}

	for term, idx := range f.Vocabulary {
		if idx < 0 {
			return nil, fmt.Errorf("negative feature index for %q", term)
		}
		if idx >= v.dim {
			v.dim = idx + 1
		}
	}
	if v.useIDF {
		if len(v.idf) < v.dim {
			return nil, fmt.Errorf("idf has %d weights for %d features", len(v.idf), v.dim)
		}
		v.dim = len(v.idf)
	}
	return v, nil
}

// Dim is the width of the feature space.
func (v *Vectorizer) Dim() int { return v.dim }

func (v *Vectorizer) analyze(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	tokens := v.token.FindAllString(text, -1)
	if v.stopWords != nil {
		kept := tokens[:0]
		for _, tok := range tokens {
			if _, stop := v.stopWords[tok]; !stop {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	}
	if v.maxN == 1 {
		return tokens
	}

	var terms []string
	if v.minN == 1 {
		terms = append(terms, tokens...)
	}
	for n := max(v.minN, 2); n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Transform vectorizes a single document.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := SparseVector{Dim: v.dim}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	vec.Values = make([]float64, len(vec.Indices))

	for i, idx := range vec.Indices {
		tf := counts[idx]
		switch {
		case v.binary:
			tf = 1
		case v.sublinearTF:
			tf = 1 + math.Log(tf)
		}
		if v.useIDF {
			tf *= v.idf[idx]
		}
		vec.Values[i] = tf
	}

	var norm float64
	switch v.norm {
	case "l2":
		for _, x := range vec.Values {
			norm += x * x
		}
		norm = math.Sqrt(norm)
	case "l1":
		for _, x := range vec.Values {
			norm += math.Abs(x)
		}
	}
	if norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}

// SparseVector holds the non-zero entries of a feature vector in index order.
type SparseVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

func (s SparseVector) Dense() []float64 {
	out := make([]float64, s.Dim)
	for i, idx := range s.Indices {
		out[idx] = s.Values[i]
	}
	return out
}
