package classifier

import (
	"encoding/json"
	"fmt"
)

// Model predicts an encoded class from a dense feature vector.
type Model interface {
	Predict(x []float64) (int, error)
	Classes() []int
}

type ShapeError struct {
	Got, Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("feature vector has %d features, model expects %d", e.Got, e.Want)
}

const (
	kindLinearOVR     = "linear_ovr"
	kindLinearOVO     = "linear_ovo"
	kindMultinomialNB = "multinomial_nb"
	kindSVC           = "svc"
	kindOneVsRest     = "one_vs_rest"
)

type modelFile struct {
	Kind           string      `json:"kind"`
	Classes        []int       `json:"classes"`
	Coef           [][]float64 `json:"coef"`
	Intercept      []float64   `json:"intercept"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`

	// svc
	Kernel         string      `json:"kernel"`
	Gamma          float64     `json:"gamma"`
	Coef0          float64     `json:"coef0"`
	Degree         float64     `json:"degree"`
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       [][]float64 `json:"dual_coef"`
	NSupport       []int       `json:"n_support"`

	// one_vs_rest
	Estimators []json.RawMessage `json:"estimators"`
}

func decodeModel(data []byte) (Model, error) {
	var f modelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Classes) < 2 {
		return nil, fmt.Errorf("model needs at least two classes, got %d", len(f.Classes))
	}

	switch f.Kind {
	case kindLinearOVR:
		rows := len(f.Classes)
		if rows == 2 {
			rows = 1
		}
		if err := checkLinear(f.Coef, f.Intercept, rows); err != nil {
			return nil, err
		}
		return &linearOVR{classes: f.Classes, coef: f.Coef, intercept: f.Intercept}, nil

	case kindLinearOVO:
		n := len(f.Classes)
		if err := checkLinear(f.Coef, f.Intercept, n*(n-1)/2); err != nil {
			return nil, err
		}
		return &linearOVO{classes: f.Classes, coef: f.Coef, intercept: f.Intercept}, nil

	case kindMultinomialNB:
		if err := checkLinear(f.FeatureLogProb, f.ClassLogPrior, len(f.Classes)); err != nil {
			return nil, err
		}
		return &multinomialNB{classes: f.Classes, featureLogProb: f.FeatureLogProb, classLogPrior: f.ClassLogPrior}, nil

	case kindSVC:
		m, err := newSVC(f)
		if err != nil {
			return nil, err
		}
		return m, nil

	case kindOneVsRest:
		m, err := newOneVsRest(f)
		if err != nil {
			return nil, err
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unknown model kind %q", f.Kind)
	}
}

func checkLinear(weights [][]float64, bias []float64, rows int) error {
	if len(weights) != rows || len(bias) != rows {
		return fmt.Errorf("expected %d weight rows and biases, got %d and %d", rows, len(weights), len(bias))
	}
	for i := range weights {
		if len(weights[i]) != len(weights[0]) {
			return fmt.Errorf("weight row %d has %d features, row 0 has %d", i, len(weights[i]), len(weights[0]))
		}
	}
	return nil
}

func dot(w, x []float64) float64 {
	var s float64
	for i, xi := range x {
		if xi != 0 {
			s += w[i] * xi
		}
	}
	return s
}

func argmax(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

func checkShape(x []float64, weights [][]float64) error {
	if len(x) != len(weights[0]) {
		return &ShapeError{Got: len(x), Want: len(weights[0])}
	}
	return nil
}

// binaryModel is a two-class model exposing its raw decision value;
// positive favours the second class.
type binaryModel interface {
	Model
	decision(x []float64) (float64, error)
}

// linearOVR is a one-vs-rest linear model (LinearSVC, LogisticRegression).
type linearOVR struct {
	classes   []int
	coef      [][]float64
	intercept []float64
}

func (m *linearOVR) Classes() []int { return m.classes }

func (m *linearOVR) Predict(x []float64) (int, error) {
	if err := checkShape(x, m.coef); err != nil {
		return 0, err
	}
	if len(m.coef) == 1 {
		if dot(m.coef[0], x)+m.intercept[0] > 0 {
			return m.classes[1], nil
		}
		return m.classes[0], nil
	}
	scores := make([]float64, len(m.coef))
	for i, w := range m.coef {
		scores[i] = dot(w, x) + m.intercept[i]
	}
	return m.classes[argmax(scores)], nil
}

// linearOVO is a one-vs-one linear-kernel SVC. Rows are ordered by class
// pair (0,1), (0,2), ..., (1,2), ...
type linearOVO struct {
	classes   []int
	coef      [][]float64
	intercept []float64
}

func (m *linearOVO) Classes() []int { return m.classes }

func (m *linearOVO) Predict(x []float64) (int, error) {
	if err := checkShape(x, m.coef); err != nil {
		return 0, err
	}
	votes := make([]float64, len(m.classes))
	k := 0
	for i := 0; i < len(m.classes); i++ {
		for j := i + 1; j < len(m.classes); j++ {
			if dot(m.coef[k], x)+m.intercept[k] > 0 {
				votes[i]++
			} else {
				votes[j]++
			}
			k++
		}
	}
	return m.classes[argmax(votes)], nil
}

func (m *linearOVR) decision(x []float64) (float64, error) {
	if len(m.coef) != 1 {
		return 0, fmt.Errorf("decision value needs a binary model, this one has %d classes", len(m.classes))
	}
	if err := checkShape(x, m.coef); err != nil {
		return 0, err
	}
	return dot(m.coef[0], x) + m.intercept[0], nil
}

type multinomialNB struct {
	classes        []int
	featureLogProb [][]float64
	classLogPrior  []float64
}

func (m *multinomialNB) Classes() []int { return m.classes }

func (m *multinomialNB) Predict(x []float64) (int, error) {
	if err := checkShape(x, m.featureLogProb); err != nil {
		return 0, err
	}
	scores := make([]float64, len(m.classes))
	for c := range m.classes {
		scores[c] = m.classLogPrior[c] + dot(m.featureLogProb[c], x)
	}
	return m.classes[argmax(scores)], nil
}
