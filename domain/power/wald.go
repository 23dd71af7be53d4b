// Package power holds the Wald-test power arithmetic for population
// parameters of a pharmacometric design. Everything here is a pure function
// of its arguments; resolving a FIM or an RSE vector is the caller's job.
package power

import (
	"fmt"
	"math"

	"github.com/giulialestini/PopED/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

// CriticalValue returns the standard-normal critical value |Φ⁻¹(α)| for the
// significance level. A two-sided test at level α uses the one-sided critical
// value at α/2 in each tail, so alpha is halved first when twoSided is set.
func CriticalValue(alpha float64, twoSided bool) (float64, error) {
	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("significance level must lie in (0,1), got %g", alpha)
	}
	if twoSided {
		alpha /= 2
	}
	return math.Abs(distuv.UnitNormal.Quantile(alpha)), nil
}

// PredictedPower returns the two-tailed rejection probability, in percent and
// rounded to one decimal place, of a Wald statistic whose non-centrality is
// the coefficient of variation 100/rse.
func PredictedPower(z, rse float64) float64 {
	cv := 100 / rse
	p := 100 * (1 - distuv.UnitNormal.CDF(z-cv) + distuv.UnitNormal.CDF(-z-cv))
	return math.Round(p*10) / 10
}

// RequiredRSE returns the relative standard error, in percent, at which the
// Wald test reaches targetPower (0-100 scale) at critical value z. When the
// target is unattainable at this critical value the denominator is zero or
// negative; that is surfaced as ErrUnattainablePower rather than a negative
// RSE pretending to be meaningful.
func RequiredRSE(z, targetPower float64) (float64, error) {
	if targetPower <= 0 || targetPower >= 100 {
		return 0, fmt.Errorf("target power must lie in (0,100), got %g", targetPower)
	}
	den := z - distuv.UnitNormal.Quantile(1-targetPower/100)
	if den <= 0 {
		return 0, fmt.Errorf("%w: power %g%% at critical value %.4f", core.ErrUnattainablePower, targetPower, z)
	}
	return 100 / den, nil
}
