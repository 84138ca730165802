// Package coach turns model attributions into user-facing coaching cards.
package coach

// Factor is one of a fixed, closed set of human-readable "what's dragging
// you down" categories. Many raw features may map onto one factor.
type Factor string

const (
	FactorSleepLow     Factor = "sleep_low"
	FactorCaffeineHigh Factor = "caffeine_high"
	FactorPhoneHigh    Factor = "phone_high"
	FactorActivityLow  Factor = "activity_low"
	FactorPMHigh       Factor = "pm_high"
	FactorMoodLow      Factor = "mood_low"
	FactorTempHigh     Factor = "temp_high"
	FactorHumidityHigh Factor = "humidity_high"
)

// Attribution is one (feature, penalty) pair from the explanation engine.
// Penalty is the feature's positive contribution to the expected grade,
// i.e. how hard it pushed the prediction toward a worse condition.
type Attribution struct {
	Feature string  `json:"feature"`
	Penalty float64 `json:"penalty"`
}

// DefaultVariableFactors maps raw feature names onto the factor vocabulary.
// The sign convention assumes expected grade up = condition worse.
var DefaultVariableFactors = map[string]Factor{
	"SleepTime":    FactorSleepLow,
	"Caffeine":     FactorCaffeineHigh,
	"PhoneTime":    FactorPhoneHigh,
	"ActivityTime": FactorActivityLow,
	"PM10":         FactorPMHigh,
	"MoodScore":    FactorMoodLow,
	"Temp":         FactorTempHigh,
	"Humidity":     FactorHumidityHigh,
}

// ReduceFactors selects the top-k factors from attributions already sorted
// by descending penalty. Features without a mapping are skipped silently;
// a factor appears at most once, keeping the rank of its first (highest
// penalty) occurrence. Fewer than k mappable factors yields a shorter list.
func ReduceFactors(attributions []Attribution, varToFactor map[string]Factor, k int) []Factor {
	if varToFactor == nil {
		varToFactor = DefaultVariableFactors
	}
	factors := make([]Factor, 0, k)
	seen := make(map[Factor]bool)
	for _, a := range attributions {
		f, ok := varToFactor[a.Feature]
		if !ok {
			continue
		}
		if !seen[f] {
			seen[f] = true
			factors = append(factors, f)
		}
		if len(factors) == k {
			break
		}
	}
	return factors
}
