package stats

import (
	"math"
	"time"

	"github.com/salespipe/forecast-engine/internal/models"
)

// RegressionResult holds ordinary-least-squares coefficients.
type RegressionResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2,omitempty"`
}

// LinearRegression fits the closed-form OLS line
// slope = (nΣxy − ΣxΣy) / (nΣx² − (Σx)²), intercept = (Σy − slope·Σx)/n.
// A zero denominator resolves to slope 0 rather than an error. R² is filled
// only when withR2 is set.
func LinearRegression(x, y []float64, withR2 bool) RegressionResult {
	n := len(y)
	if n == 0 || len(x) != n {
		return RegressionResult{}
	}
	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}
	fn := float64(n)
	den := fn*sumXX - sumX*sumX
	var slope float64
	if den != 0 {
		slope = (fn*sumXY - sumX*sumY) / den
	}
	intercept := (sumY - slope*sumX) / fn

	res := RegressionResult{Slope: slope, Intercept: intercept}
	if withR2 {
		res.R2 = rSquared(x, y, slope, intercept)
	}
	return res
}

// rSquared is 1 − SSres/SStot; a zero-variance series resolves to 0.
func rSquared(x, y []float64, slope, intercept float64) float64 {
	var meanY float64
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))

	var ssRes, ssTot float64
	for i := range y {
		pred := slope*x[i] + intercept
		ssRes += (y[i] - pred) * (y[i] - pred)
		ssTot += (y[i] - meanY) * (y[i] - meanY)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// IndexAxis returns the default integer x-axis 0..n-1.
func IndexAxis(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// DateAxis maps each point to elapsed whole months from the first point,
// counting a month as a flat 30 days. The coarse unit is intentional and
// matched by existing callers; do not replace it with calendar arithmetic.
func DateAxis(points []models.DataPoint) []float64 {
	out := make([]float64, len(points))
	if len(points) == 0 {
		return out
	}
	first := points[0].Timestamp
	for i, p := range points {
		if !p.HasTimestamp() || !points[0].HasTimestamp() {
			out[i] = float64(i)
			continue
		}
		days := p.Timestamp.Sub(first) / (24 * time.Hour)
		out[i] = math.Floor(float64(days) / 30)
	}
	return out
}
