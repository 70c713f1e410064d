package metrics

import (
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/raykavin/backtestlab/pkg/portfolio"
)

// ConfidenceInterval is a bootstrap estimate of a sampling distribution:
// resample the input with replacement sampleSize times, apply measure to
// each resample, and read the interval off the resulting distribution.
type ConfidenceInterval struct {
	Lower  float64
	Upper  float64
	Mean   float64
	StdDev float64
}

// Bootstrap computes a confidence interval for measure (e.g. mean PnL%)
// applied to trades' PnLPct values, via case resampling. Trimmed from the
// teacher's general-purpose bootstrap into a trade-returns-specific
// entry point, since trades are the only series this module bootstraps.
func Bootstrap(trades []portfolio.Trade, measure func([]float64) float64, sampleSize int, confidence float64) ConfidenceInterval {
	if len(trades) == 0 {
		return ConfidenceInterval{}
	}

	values := make([]float64, len(trades))
	for i, t := range trades {
		values[i] = t.PnLPct
	}

	samples := make([]float64, sampleSize)
	for i := 0; i < sampleSize; i++ {
		resample := make([]float64, len(values))
		for j := range resample {
			resample[j] = lo.Sample(values)
		}
		samples[i] = measure(resample)
	}
	sort.Float64s(samples)

	tail := 1 - confidence
	mean, stdDev := stat.MeanStdDev(samples, nil)
	return ConfidenceInterval{
		Lower:  stat.Quantile(tail/2, stat.LinInterp, samples, nil),
		Upper:  stat.Quantile(1-tail/2, stat.LinInterp, samples, nil),
		Mean:   mean,
		StdDev: stdDev,
	}
}

// MeanMeasure is the common measure argument for Bootstrap: the sample
// mean of whatever was resampled.
func MeanMeasure(values []float64) float64 {
	return stat.Mean(values, nil)
}
