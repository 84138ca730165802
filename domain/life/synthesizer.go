package life

import (
	"math"
	"math/rand"

	"fiture/domain/core"
)

// sleepReference is the nightly hours against which sleep debt accrues
const sleepReference = 7.0

// dayState carries the latent per-entity state from one simulated day to
// the next. It never leaves a single profile run: each profile starts from
// a fresh state, so concatenating profiles cannot mix debt across them.
type dayState struct {
	sleep    float64
	caffeine int
	phone    float64
	activity float64
	debt     float64
	recent   []float64 // trailing sleep values, most recent last, capped at 3
}

// Synthesizer generates day-by-day autocorrelated behavioral series for one
// profile. The same (seed, environment, params) triple always produces
// bit-identical output.
type Synthesizer struct {
	params  Params
	profile string
}

// NewSynthesizer creates a synthesizer for one profile's parameter set
func NewSynthesizer(params Params, profileName string) (*Synthesizer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Synthesizer{params: params, profile: profileName}, nil
}

// Generate produces exactly nDays records. The environment series is
// repeated or truncated to nDays before stress computation, matching the
// resize semantics of the training data builder.
func (s *Synthesizer) Generate(nDays int, seed int64, env *EnvironmentSeries) ([]DailyRecord, error) {
	if nDays <= 0 {
		return nil, core.NewValidationError("n_days", "must be positive")
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	resized := env.Resize(nDays)
	stress := EnvironmentStress(resized, s.params.EnvWeights, s.params.Directions.Environment)

	rng := rand.New(rand.NewSource(seed))
	records := make([]DailyRecord, 0, nDays)

	state := s.initialState(rng)
	records = append(records, s.emit(rng, state, resized, stress, 0))

	for t := 1; t < nDays; t++ {
		state = s.step(rng, state, stress[t])
		records = append(records, s.emit(rng, state, resized, stress, t))
	}
	return records, nil
}

// initialState samples day 0 from the profile bases and seeds the debt
func (s *Synthesizer) initialState(rng *rand.Rand) dayState {
	p := s.params
	st := dayState{
		sleep:    clamp(normal(rng, p.Bases.SleepHours, p.Noise.Sleep), p.Bounds.SleepMin, p.Bounds.SleepMax),
		caffeine: clampInt(randIntInclusive(rng, p.Bases.CaffeineCupsMin, p.Bases.CaffeineCupsMax), p.Bounds.CaffeineMin, p.Bounds.CaffeineMax),
	}
	st.phone = clamp(normal(rng, p.Bases.PhoneHours, p.Noise.Phone), p.Bounds.PhoneMin, p.Bounds.PhoneMax)
	st.activity = clamp(normal(rng, p.Bases.ActivityHours, p.Noise.Activity), p.Bounds.ActivityMin, p.Bounds.ActivityMax)
	st.debt = math.Max(0, sleepReference-st.sleep)
	st.recent = []float64{st.sleep}
	return st
}

// step is the pure per-day transition: previous state in, next state out.
// The order of draws is fixed (caffeine, phone, activity, sleep) so a seed
// fully determines the stream.
func (s *Synthesizer) step(rng *rand.Rand, prev dayState, stress float64) dayState {
	p := s.params

	// Yesterday's debt suppresses today's caffeine once it passes the gate
	reduce := 0
	if prev.debt > p.Rules.CaffeineDebtGate {
		reduce = randIntInclusive(rng, p.Rules.CaffeineReduceMin, p.Rules.CaffeineReduceMax)
	}
	caffeine := clampInt(
		randIntInclusive(rng, p.Bases.CaffeineCupsMin, p.Bases.CaffeineCupsMax)-reduce,
		p.Bounds.CaffeineMin, p.Bounds.CaffeineMax)

	phone := clamp(
		normal(rng, p.Bases.PhoneHours+p.Rules.PhoneStressGain*stress, p.Noise.Phone),
		p.Bounds.PhoneMin, p.Bounds.PhoneMax)
	activity := clamp(
		normal(rng, p.Bases.ActivityHours-p.Rules.ActivityStressDrop*stress, p.Noise.Activity),
		p.Bounds.ActivityMin, p.Bounds.ActivityMax)

	// Sleep mean: linear driver terms with configured signs, a quadratic
	// penalty above the over-activity threshold, and the debt rebound.
	overActivity := math.Max(0, activity-p.Rules.OverActivityThreshold)
	sleepMean := sleepReference +
		p.Coeff.Phone*float64(-p.Directions.Phone)*phone +
		p.Coeff.Caffeine*float64(-p.Directions.Caffeine)*float64(caffeine) +
		p.Coeff.ActivityPos*float64(p.Directions.Activity)*activity -
		p.Coeff.ActivityNeg*float64(p.Directions.Activity)*overActivity*overActivity +
		p.Coeff.Environment*float64(-p.Directions.Environment)*stress +
		p.Coeff.SleepDebt*prev.debt
	sleep := clamp(normal(rng, sleepMean, p.Noise.Sleep), p.Bounds.SleepMin, p.Bounds.SleepMax)

	recent := append(append([]float64{}, prev.recent...), sleep)
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	return dayState{
		sleep:    sleep,
		caffeine: caffeine,
		phone:    phone,
		activity: activity,
		debt:     math.Max(0, sleepReference-mean(recent)),
		recent:   recent,
	}
}

// emit draws the same-day mood and assembles the record for day t
func (s *Synthesizer) emit(rng *rand.Rand, st dayState, env *EnvironmentSeries, stress []float64, t int) DailyRecord {
	m := s.params.Mood
	moodMean := 60 +
		m.SleepGainPerHour*(st.sleep-sleepReference) +
		m.ActivityGainPerHour*st.activity +
		m.CaffeinePenaltyPerCup*float64(st.caffeine) +
		m.EnvPenaltyPerUnit*stress[t] +
		m.PhonePenaltyPerHour*st.phone
	mood := clamp(normal(rng, moodMean, s.params.Noise.Mood), 0, 100)

	return DailyRecord{
		Date:         env.Dates[t],
		PM10:         env.PM10[t],
		Temp:         env.Temp[t],
		Humidity:     env.Humidity[t],
		SleepTime:    st.sleep,
		ActivityTime: st.activity,
		Caffeine:     st.caffeine,
		PhoneTime:    st.phone,
		MoodScore:    mood,
		ProfileType:  s.profile,
	}
}

func normal(rng *rand.Rand, mean, sd float64) float64 {
	return mean + rng.NormFloat64()*sd
}

// randIntInclusive draws uniformly from [lo, hi]
func randIntInclusive(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
