package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// TestResult is the outcome of one hypothesis test.
type TestResult struct {
	Name        string  `json:"name"`
	Statistic   float64 `json:"statistic"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
}

// MannWhitney runs a two-sided Mann-Whitney U test using the normal
// approximation with tie and continuity corrections. It returns U for x and
// the p-value.
func MannWhitney(x, y []float64) (u, p float64) {
	n1, n2 := float64(len(x)), float64(len(y))
	if n1 == 0 || n2 == 0 {
		return 0, 1
	}

	type obs struct {
		v     float64
		fromX bool
	}
	all := make([]obs, 0, len(x)+len(y))
	for _, v := range x {
		all = append(all, obs{v: v, fromX: true})
	}
	for _, v := range y {
		all = append(all, obs{v: v})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].v < all[j].v })

	var rankSumX, tieTerm float64
	for i := 0; i < len(all); {
		j := i
		for j < len(all) && all[j].v == all[i].v {
			j++
		}
		// positions i..j-1 share the average of ranks i+1..j
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			if all[k].fromX {
				rankSumX += avg
			}
		}
		t := float64(j - i)
		tieTerm += t*t*t - t
		i = j
	}

	n := n1 + n2
	u = rankSumX - n1*(n1+1)/2
	mu := n1 * n2 / 2
	sigma := math.Sqrt(n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1))))
	if sigma == 0 || math.IsNaN(sigma) {
		return u, 1
	}

	z := math.Max(math.Abs(u-mu)-0.5, 0) / sigma
	return u, clampP(2 * (1 - distuv.UnitNormal.CDF(z)))
}

// Welch runs a two-sided Welch's t-test. It needs at least two samples on
// each side.
func Welch(x, y []float64) (t, p float64, err error) {
	if len(x) < 2 || len(y) < 2 {
		return 0, 1, ErrInsufficientData
	}
	m1, err := mstats.Mean(x)
	if err != nil {
		return 0, 1, err
	}
	m2, err := mstats.Mean(y)
	if err != nil {
		return 0, 1, err
	}
	v1, err := mstats.SampleVariance(x)
	if err != nil {
		return 0, 1, err
	}
	v2, err := mstats.SampleVariance(y)
	if err != nil {
		return 0, 1, err
	}

	n1, n2 := float64(len(x)), float64(len(y))
	a, b := v1/n1, v2/n2
	se := math.Sqrt(a + b)
	diff := m1 - m2
	if se == 0 {
		if diff == 0 {
			return 0, 1, nil
		}
		return math.Copysign(math.Inf(1), diff), 0, nil
	}

	t = diff / se
	df := (a + b) * (a + b) / (a*a/(n1-1) + b*b/(n2-1))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return t, clampP(2 * (1 - dist.CDF(math.Abs(t)))), nil
}

// FisherExact returns the two-sided p-value of Fisher's exact test on the
// 2x2 table [[a, b], [c, d]].
func FisherExact(a, b, c, d int) float64 {
	r1, r2, c1 := a+b, c+d, a+c
	n := r1 + r2
	if n == 0 {
		return 1
	}

	logDenom := logChoose(n, c1)
	prob := func(x int) float64 {
		return math.Exp(logChoose(r1, x) + logChoose(r2, c1-x) - logDenom)
	}

	observed := prob(a)
	lo, hi := max(0, c1-r2), min(r1, c1)
	var p float64
	for x := lo; x <= hi; x++ {
		if px := prob(x); px <= observed*(1+1e-7) {
			p += px
		}
	}
	return clampP(p)
}

func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	ln, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))
	return ln - lk - lnk
}

func clampP(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
