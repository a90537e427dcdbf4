package classifier

import (
	"fmt"
	"math"
)

// svc is a kernel support vector classifier with libsvm's one-vs-one
// voting. Support vectors are grouped by class in class order; dual_coef
// has one row per other class, as exported from a fitted SVC.
type svc struct {
	classes   []int
	kernel    func(a, b []float64) float64
	sv        [][]float64
	dualCoef  [][]float64
	intercept []float64
	start     []int
	nSupport  []int
}

func newSVC(f modelFile) (*svc, error) {
	n := len(f.Classes)
	kernel, err := kernelFunc(f.Kernel, f.Gamma, f.Coef0, f.Degree)
	if err != nil {
		return nil, err
	}
	if len(f.NSupport) != n {
		return nil, fmt.Errorf("n_support has %d entries for %d classes", len(f.NSupport), n)
	}
	if len(f.Intercept) != n*(n-1)/2 {
		return nil, fmt.Errorf("expected %d intercepts, got %d", n*(n-1)/2, len(f.Intercept))
	}

	m := &svc{
		classes:   f.Classes,
		kernel:    kernel,
		sv:        f.SupportVectors,
		dualCoef:  f.DualCoef,
		intercept: f.Intercept,
		start:     make([]int, n),
		nSupport:  f.NSupport,
	}
	total := 0
	for c, ns := range f.NSupport {
		if ns < 0 {
			return nil, fmt.Errorf("negative n_support for class %d", c)
		}
		m.start[c] = total
		total += ns
	}
	if total == 0 || len(f.SupportVectors) != total {
		return nil, fmt.Errorf("expected %d support vectors, got %d", total, len(f.SupportVectors))
	}
	for i, v := range f.SupportVectors {
		if len(v) != len(f.SupportVectors[0]) {
			return nil, fmt.Errorf("support vector %d has %d features, vector 0 has %d", i, len(v), len(f.SupportVectors[0]))
		}
	}
	if len(f.DualCoef) != n-1 {
		return nil, fmt.Errorf("expected %d dual_coef rows, got %d", n-1, len(f.DualCoef))
	}
	for i, row := range f.DualCoef {
		if len(row) != total {
			return nil, fmt.Errorf("dual_coef row %d has %d entries for %d support vectors", i, len(row), total)
		}
	}
	return m, nil
}

func kernelFunc(name string, gamma, coef0, degree float64) (func(a, b []float64) float64, error) {
	switch name {
	case "linear":
		return dot, nil
	case "rbf", "":
		return func(a, b []float64) float64 {
			var d float64
			for i := range a {
				diff := a[i] - b[i]
				d += diff * diff
			}
			return math.Exp(-gamma * d)
		}, nil
	case "poly":
		return func(a, b []float64) float64 {
			return math.Pow(gamma*dot(a, b)+coef0, degree)
		}, nil
	case "sigmoid":
		return func(a, b []float64) float64 {
			return math.Tanh(gamma*dot(a, b) + coef0)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported svc kernel %q", name)
	}
}

func (m *svc) Classes() []int { return m.classes }

// decisions returns one value per class pair (0,1), (0,2), ..., (1,2), ...
func (m *svc) decisions(x []float64) ([]float64, error) {
	if len(x) != len(m.sv[0]) {
		return nil, &ShapeError{Got: len(x), Want: len(m.sv[0])}
	}
	k := make([]float64, len(m.sv))
	for i, v := range m.sv {
		k[i] = m.kernel(v, x)
	}

	n := len(m.classes)
	out := make([]float64, 0, n*(n-1)/2)
	p := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum := m.intercept[p]
			for s := 0; s < m.nSupport[i]; s++ {
				sum += m.dualCoef[j-1][m.start[i]+s] * k[m.start[i]+s]
			}
			for s := 0; s < m.nSupport[j]; s++ {
				sum += m.dualCoef[i][m.start[j]+s] * k[m.start[j]+s]
			}
			out = append(out, sum)
			p++
		}
	}
	return out, nil
}

// decision is the two-class decision value; positive favours the second
// class, the sign convention of a fitted binary SVC.
func (m *svc) decision(x []float64) (float64, error) {
	if len(m.classes) != 2 {
		return 0, fmt.Errorf("decision value needs a binary model, this one has %d classes", len(m.classes))
	}
	d, err := m.decisions(x)
	if err != nil {
		return 0, err
	}
	return d[0], nil
}

func (m *svc) Predict(x []float64) (int, error) {
	if len(m.classes) == 2 {
		d, err := m.decision(x)
		if err != nil {
			return 0, err
		}
		if d > 0 {
			return m.classes[1], nil
		}
		return m.classes[0], nil
	}

	d, err := m.decisions(x)
	if err != nil {
		return 0, err
	}
	votes := make([]float64, len(m.classes))
	p := 0
	for i := 0; i < len(m.classes); i++ {
		for j := i + 1; j < len(m.classes); j++ {
			if d[p] > 0 {
				votes[i]++
			} else {
				votes[j]++
			}
			p++
		}
	}
	return m.classes[argmax(votes)], nil
}

// oneVsRest wraps one binary estimator per class and picks the class whose
// estimator gives the largest decision value.
type oneVsRest struct {
	classes    []int
	estimators []binaryModel
}

func newOneVsRest(f modelFile) (*oneVsRest, error) {
	if len(f.Estimators) != len(f.Classes) {
		return nil, fmt.Errorf("expected %d estimators, got %d", len(f.Classes), len(f.Estimators))
	}
	m := &oneVsRest{classes: f.Classes}
	for i, raw := range f.Estimators {
		est, err := decodeModel(raw)
		if err != nil {
			return nil, fmt.Errorf("estimator %d: %w", i, err)
		}
		bin, ok := est.(binaryModel)
		if !ok || len(est.Classes()) != 2 {
			return nil, fmt.Errorf("estimator %d is not a binary model", i)
		}
		m.estimators = append(m.estimators, bin)
	}
	return m, nil
}

func (m *oneVsRest) Classes() []int { return m.classes }

func (m *oneVsRest) Predict(x []float64) (int, error) {
	scores := make([]float64, len(m.estimators))
	for i, est := range m.estimators {
		d, err := est.decision(x)
		if err != nil {
			return 0, err
		}
		scores[i] = d
	}
	return m.classes[argmax(scores)], nil
}
