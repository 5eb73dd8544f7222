package distfit

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is a fitted continuous distribution. Both methods are
// analytic: Quantile inverts the CDF, Prob evaluates the density.
type Distribution interface {
	Quantile(p float64) float64
	Prob(x float64) float64
}

// Family is one candidate distribution family. Fit estimates the family's
// parameters from the sample (maximum likelihood or moment-based equivalent)
// and returns the fitted distribution together with its parameter vector.
// Fit returns an error when the sample violates the family's support or the
// estimate degenerates; the family is then excluded from candidacy.
type Family struct {
	Name string
	Fit  func(xs []float64) (Distribution, []float64, error)
}

var errSupport = errors.New("sample outside distribution support")
var errDegenerate = errors.New("degenerate parameter estimate")

// Families returns the fixed candidate set: the continuous families
// commonly seen in manufacturing measurement data.
func Families() []Family {
	return []Family{
		{Name: "normal", Fit: fitNormal},
		{Name: "lognormal", Fit: fitLogNormal},
		{Name: "gamma", Fit: fitGamma},
		{Name: "beta", Fit: fitBeta},
		{Name: "weibull", Fit: fitWeibull},
		{Name: "pareto", Fit: fitPareto},
		{Name: "studentt", Fit: fitStudentT},
		{Name: "exponential", Fit: fitExponential},
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// mleStd is the maximum-likelihood standard deviation (divisor n).
func mleStd(xs []float64, mu float64) float64 {
	sumSq := 0.0
	for _, x := range xs {
		d := x - mu
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

func fitNormal(xs []float64) (Distribution, []float64, error) {
	mu := mean(xs)
	sigma := mleStd(xs, mu)
	if sigma <= 0 {
		return nil, nil, errDegenerate
	}
	d := distuv.Normal{Mu: mu, Sigma: sigma}
	return d, []float64{mu, sigma}, nil
}

func fitLogNormal(xs []float64) (Distribution, []float64, error) {
	logs := make([]float64, len(xs))
	for i, x := range xs {
		if x <= 0 {
			return nil, nil, errSupport
		}
		logs[i] = math.Log(x)
	}
	mu := mean(logs)
	sigma := mleStd(logs, mu)
	if sigma <= 0 {
		return nil, nil, errDegenerate
	}
	d := distuv.LogNormal{Mu: mu, Sigma: sigma}
	return d, []float64{mu, sigma}, nil
}

func fitExponential(xs []float64) (Distribution, []float64, error) {
	m := mean(xs)
	if m <= 0 {
		return nil, nil, errDegenerate
	}
	for _, x := range xs {
		if x < 0 {
			return nil, nil, errSupport
		}
	}
	rate := 1 / m
	d := distuv.Exponential{Rate: rate}
	return d, []float64{rate}, nil
}

// fitGamma estimates shape and rate by maximum likelihood: closed-form
// initial shape (Minka's approximation), then Newton refinement of
// log(a) - digamma(a) = s with a numeric derivative.
func fitGamma(xs []float64) (Distribution, []float64, error) {
	logSum := 0.0
	for _, x := range xs {
		if x <= 0 {
			return nil, nil, errSupport
		}
		logSum += math.Log(x)
	}
	m := mean(xs)
	s := math.Log(m) - logSum/float64(len(xs))
	if s <= 0 {
		return nil, nil, errDegenerate
	}

	a := (3 - s + math.Sqrt((s-3)*(s-3)+24*s)) / (12 * s)
	for iter := 0; iter < 25; iter++ {
		f := math.Log(a) - mathext.Digamma(a) - s
		h := 1e-6 * a
		df := (math.Log(a+h) - mathext.Digamma(a+h) - (math.Log(a-h) - mathext.Digamma(a-h))) / (2 * h)
		if df == 0 {
			break
		}
		next := a - f/df
		if next <= 0 || math.IsNaN(next) {
			break
		}
		if math.Abs(next-a) < 1e-10*a {
			a = next
			break
		}
		a = next
	}
	if a <= 0 || math.IsNaN(a) {
		return nil, nil, errDegenerate
	}

	rate := a / m
	d := distuv.Gamma{Alpha: a, Beta: rate}
	return d, []float64{a, rate}, nil
}

// fitWeibull solves the shape MLE equation by Newton iteration, then
// recovers scale in closed form.
func fitWeibull(xs []float64) (Distribution, []float64, error) {
	logSum := 0.0
	for _, x := range xs {
		if x <= 0 {
			return nil, nil, errSupport
		}
		logSum += math.Log(x)
	}
	n := float64(len(xs))
	meanLog := logSum / n

	g := func(k float64) float64 {
		var sumXk, sumXkLog float64
		for _, x := range xs {
			xk := math.Pow(x, k)
			sumXk += xk
			sumXkLog += xk * math.Log(x)
		}
		return sumXkLog/sumXk - 1/k - meanLog
	}

	k := 1.2
	for iter := 0; iter < 50; iter++ {
		f := g(k)
		h := 1e-5 * k
		df := (g(k+h) - g(k-h)) / (2 * h)
		if df == 0 || math.IsNaN(df) {
			break
		}
		next := k - f/df
		if next <= 0 || math.IsNaN(next) {
			break
		}
		if math.Abs(next-k) < 1e-9*k {
			k = next
			break
		}
		k = next
	}
	if k <= 0 || math.IsNaN(k) {
		return nil, nil, errDegenerate
	}

	sumXk := 0.0
	for _, x := range xs {
		sumXk += math.Pow(x, k)
	}
	lambda := math.Pow(sumXk/n, 1/k)
	if lambda <= 0 || math.IsNaN(lambda) {
		return nil, nil, errDegenerate
	}

	d := distuv.Weibull{K: k, Lambda: lambda}
	return d, []float64{k, lambda}, nil
}

// fitPareto has a closed-form MLE: xm is the sample minimum, alpha the
// reciprocal mean excess log.
func fitPareto(xs []float64) (Distribution, []float64, error) {
	xm := math.Inf(1)
	for _, x := range xs {
		if x <= 0 {
			return nil, nil, errSupport
		}
		if x < xm {
			xm = x
		}
	}
	sum := 0.0
	for _, x := range xs {
		sum += math.Log(x / xm)
	}
	if sum <= 0 {
		return nil, nil, errDegenerate
	}
	alpha := float64(len(xs)) / sum
	d := distuv.Pareto{Xm: xm, Alpha: alpha}
	return d, []float64{xm, alpha}, nil
}

// scaledBeta is a standard beta rescaled to the sample's [loc, loc+scale] range.
type scaledBeta struct {
	d     distuv.Beta
	loc   float64
	scale float64
}

func (s scaledBeta) Quantile(p float64) float64 {
	return s.loc + s.scale*s.d.Quantile(p)
}

func (s scaledBeta) Prob(x float64) float64 {
	return s.d.Prob((x-s.loc)/s.scale) / s.scale
}

// fitBeta fits a four-parameter beta: the sample range fixes location and
// scale, shapes come from the method of moments on the rescaled data.
func fitBeta(xs []float64) (Distribution, []float64, error) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	scale := hi - lo
	if scale <= 0 {
		return nil, nil, errDegenerate
	}
	// Widen slightly so observed extremes fall strictly inside (0, 1).
	loc := lo - 0.001*scale
	scale *= 1.002

	n := float64(len(xs))
	var m, v float64
	for _, x := range xs {
		m += (x - loc) / scale
	}
	m /= n
	for _, x := range xs {
		d := (x-loc)/scale - m
		v += d * d
	}
	v /= n

	if v <= 0 || m <= 0 || m >= 1 || v >= m*(1-m) {
		return nil, nil, errDegenerate
	}
	common := m*(1-m)/v - 1
	alpha := m * common
	beta := (1 - m) * common
	if alpha <= 0 || beta <= 0 {
		return nil, nil, errDegenerate
	}

	d := scaledBeta{d: distuv.Beta{Alpha: alpha, Beta: beta}, loc: loc, scale: scale}
	return d, []float64{alpha, beta, loc, scale}, nil
}

// fitStudentT fits a location-scale t by moments: mean location,
// kurtosis-matched degrees of freedom, variance-matched scale.
func fitStudentT(xs []float64) (Distribution, []float64, error) {
	n := float64(len(xs))
	mu := mean(xs)
	var m2, m4 float64
	for _, x := range xs {
		d := x - mu
		m2 += d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m4 /= n
	if m2 <= 0 {
		return nil, nil, errDegenerate
	}

	kurt := m4 / (m2 * m2)
	nu := 100.0
	if kurt > 3 {
		// Excess kurtosis of t is 6/(nu-4).
		nu = 4 + 6/(kurt-3)
	}
	if nu < 2.5 {
		nu = 2.5
	}
	if nu > 100 {
		nu = 100
	}

	sigma := math.Sqrt(m2 * (nu - 2) / nu)
	if sigma <= 0 {
		return nil, nil, errDegenerate
	}

	d := distuv.StudentsT{Mu: mu, Sigma: sigma, Nu: nu}
	return d, []float64{mu, sigma, nu}, nil
}
