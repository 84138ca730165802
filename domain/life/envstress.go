package life

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// stdEpsilon keeps the PM10 z-score finite when the series is constant
const stdEpsilon = 1e-9

// EnvironmentStress computes the per-day composite stress scalar for a
// resized environment series. PM10 is standardized against its own series
// mean/std and squashed through a logistic; temperature and humidity
// contribute their normalized deviation from the comfort midpoints. The
// configured environment direction flips the sign: with a positive
// direction a "bad" environment helps sleep instead of hurting it.
func EnvironmentStress(env *EnvironmentSeries, w EnvWeights, direction int) []float64 {
	n := env.Len()
	stress := make([]float64, n)

	mean := stat.Mean(env.PM10, nil)
	std := math.Sqrt(stat.PopVariance(env.PM10, nil))

	for i := 0; i < n; i++ {
		pmStd := (env.PM10[i] - mean) / (std + stdEpsilon)
		tempDev := math.Abs(env.Temp[i]-w.TempComfortC) / 8.0
		humDev := math.Abs(env.Humidity[i]-w.HumidityComfortPct) / 20.0

		s := w.PM*logistic(pmStd) + w.Temp*tempDev + w.Humidity*humDev
		if direction > 0 {
			s = -s
		}
		stress[i] = s
	}
	return stress
}

func logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
