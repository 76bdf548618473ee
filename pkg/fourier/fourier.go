// Package fourier fits a truncated Fourier series to a hand-drawn closed
// stroke. Each axis is fitted independently by direct summation of the
// discrete Fourier-series coefficient estimator; the N samples are treated
// as uniformly spaced over one period [0, 2π), with sample n at angle
// t_n = 2πn/N regardless of the actual drawn spacing. That uniform-angle
// assumption is deliberate: drawing speed varies, but the fit does not
// reparameterize by arc length.
package fourier

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// MinSamples is the minimum stroke length accepted for a fit.
	MinSamples = 16
	// MaxOrder caps the number of harmonics per axis.
	MaxOrder = 60

	// termThreshold drops negligible terms from the rendered expression.
	termThreshold = 1e-4
)

// InsufficientSamplesError reports a stroke too short to fit.
type InsufficientSamplesError struct {
	Count    int
	Required int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("stroke has %d samples, need at least %d", e.Count, e.Required)
}

// InvalidCanvasError reports canvas dimensions that cannot anchor a
// stroke normalization.
type InvalidCanvasError struct {
	Width  float64
	Height float64
}

func (e *InvalidCanvasError) Error() string {
	return fmt.Sprintf("canvas %gx%g is invalid, dimensions must be positive and finite", e.Width, e.Height)
}

// Coefficients is one axis of a truncated Fourier series: the constant
// term a0 plus cosine coefficients A and sine coefficients B for
// harmonics 1..K.
type Coefficients struct {
	A0 float64   `json:"a0"`
	A  []float64 `json:"a"`
	B  []float64 `json:"b"`
}

// Order returns the harmonic order K of the fit.
func (c Coefficients) Order() int {
	return len(c.A)
}

// Fit computes the per-axis coefficient sets for a closed sample
// sequence. Both slices must have the same length of at least MinSamples;
// order is clamped to [1, MaxOrder].
func Fit(samplesX, samplesY []float64, order int) (x, y Coefficients, err error) {
	n := len(samplesX)
	if len(samplesY) < n {
		n = len(samplesY)
	}
	if n < MinSamples {
		return Coefficients{}, Coefficients{}, &InsufficientSamplesError{Count: n, Required: MinSamples}
	}
	order = clampOrder(order)
	// truncate both axes to the common length so they share one angle grid
	return fitAxis(samplesX[:n], order), fitAxis(samplesY[:n], order), nil
}

// FitStroke normalizes a raw pixel-space stroke against its canvas and
// fits both axes. width and height are the canvas dimensions in pixels
// and must be positive and finite, or the normalization scale would
// poison every coefficient with NaN.
func FitStroke(points []r2.Vec, width, height float64, order int) (x, y Coefficients, err error) {
	if len(points) < MinSamples {
		return Coefficients{}, Coefficients{}, &InsufficientSamplesError{Count: len(points), Required: MinSamples}
	}
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Coefficients{}, Coefficients{}, &InvalidCanvasError{Width: width, Height: height}
	}
	normalized := NormalizeStroke(points, width, height)
	samplesX := make([]float64, len(normalized))
	samplesY := make([]float64, len(normalized))
	for i, p := range normalized {
		samplesX[i] = p.X
		samplesY[i] = p.Y
	}
	return Fit(samplesX, samplesY, order)
}

// NormalizeStroke maps device-pixel samples into a symmetric coordinate
// system: origin at the canvas center, unit length half the canvas minor
// dimension, vertical axis flipped so up is positive.
func NormalizeStroke(points []r2.Vec, width, height float64) []r2.Vec {
	scale := math.Min(width, height) / 2
	cx := width / 2
	cy := height / 2

	out := make([]r2.Vec, len(points))
	for i, p := range points {
		out[i] = r2.Vec{
			X: (p.X - cx) / scale,
			Y: -(p.Y - cy) / scale,
		}
	}
	return out
}

// fitAxis computes the coefficient estimator for one axis:
//
//	a0  = (2/N) Σ v_n
//	a_k = (2/N) Σ v_n cos(k t_n)
//	b_k = (2/N) Σ v_n sin(k t_n)
func fitAxis(samples []float64, order int) Coefficients {
	n := len(samples)
	c := Coefficients{
		A: make([]float64, order),
		B: make([]float64, order),
	}

	for i, v := range samples {
		t := 2 * math.Pi * float64(i) / float64(n)
		c.A0 += v
		for k := 1; k <= order; k++ {
			c.A[k-1] += v * math.Cos(float64(k)*t)
			c.B[k-1] += v * math.Sin(float64(k)*t)
		}
	}

	norm := 2 / float64(n)
	c.A0 *= norm
	for k := 0; k < order; k++ {
		c.A[k] *= norm
		c.B[k] *= norm
	}
	return c
}

func clampOrder(order int) int {
	if order < 1 {
		return 1
	}
	if order > MaxOrder {
		return MaxOrder
	}
	return order
}

// Eval evaluates the fitted series at parameter t:
// a0/2 + Σ a_k cos(kt) + b_k sin(kt).
func (c Coefficients) Eval(t float64) float64 {
	sum := c.A0 / 2
	for k := range c.A {
		kt := float64(k+1) * t
		sum += c.A[k]*math.Cos(kt) + c.B[k]*math.Sin(kt)
	}
	return sum
}

// Expression renders the series as expression text over the named
// parameter, compilable by the expression compiler. Terms below the
// magnitude threshold are dropped, retained coefficients are formatted to
// four decimals with signs folded into the separators, and a series with
// no surviving terms degenerates to "0".
func (c Coefficients) Expression(param string) string {
	var b strings.Builder

	writeTerm := func(coef float64, factor string) {
		if math.Abs(coef) < termThreshold {
			return
		}
		if b.Len() == 0 {
			if coef < 0 {
				b.WriteString("-")
			}
		} else if coef < 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		b.WriteString(strconv.FormatFloat(math.Abs(coef), 'f', 4, 64))
		if factor != "" {
			b.WriteString(" * ")
			b.WriteString(factor)
		}
	}

	writeTerm(c.A0/2, "")
	for k := range c.A {
		arg := param
		if k > 0 {
			arg = fmt.Sprintf("%d * %s", k+1, param)
		}
		writeTerm(c.A[k], "cos("+arg+")")
		writeTerm(c.B[k], "sin("+arg+")")
	}

	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
