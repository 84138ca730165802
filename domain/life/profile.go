package life

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fiture/domain/core"
)

// Directions set the causal sign of each driver on sleep: +1 means the
// driver increases sleep, -1 means it decreases it. Unlike coefficients and
// noise, directions have no defaults: a profile that omits them is invalid.
type Directions struct {
	Phone       int `yaml:"phone"`
	Caffeine    int `yaml:"caffeine"`
	Activity    int `yaml:"activity"`
	Environment int `yaml:"environment"`
}

// Coefficients are the magnitudes of each driver's effect on the sleep mean
type Coefficients struct {
	Phone       float64 `yaml:"phone"`        // hours of sleep lost per phone hour
	Caffeine    float64 `yaml:"caffeine"`     // per cup
	ActivityPos float64 `yaml:"activity_pos"` // linear benefit per activity hour
	ActivityNeg float64 `yaml:"activity_neg"` // quadratic over-activity penalty
	Environment float64 `yaml:"environment"`  // per unit of environment stress
	SleepDebt   float64 `yaml:"sleep_debt"`   // rebound per hour of carried debt
}

// MoodWeights shape the same-day mood model
type MoodWeights struct {
	SleepGainPerHour      float64 `yaml:"sleep_gain_per_h"`
	ActivityGainPerHour   float64 `yaml:"activity_gain_per_h"`
	CaffeinePenaltyPerCup float64 `yaml:"caffeine_penalty_per_cup"`
	EnvPenaltyPerUnit     float64 `yaml:"env_penalty_per_unit"`
	PhonePenaltyPerHour   float64 `yaml:"phone_penalty_per_h"`
}

// EnvWeights combine standardized PM10 with temperature/humidity comfort
// deviations into the per-day environment stress scalar.
type EnvWeights struct {
	PM                 float64 `yaml:"pm_weight"`
	Temp               float64 `yaml:"temp_weight"`
	Humidity           float64 `yaml:"hum_weight"`
	TempComfortC       float64 `yaml:"temp_comfort_c"`
	HumidityComfortPct float64 `yaml:"hum_comfort_pct"`
}

// Bases are the day-0 / unconditioned sampling centers
type Bases struct {
	SleepHours      float64 `yaml:"sleep_base_h"`
	PhoneHours      float64 `yaml:"phone_base_h"`
	ActivityHours   float64 `yaml:"activity_base_h"`
	CaffeineCupsMin int     `yaml:"caffeine_base_cups_min"`
	CaffeineCupsMax int     `yaml:"caffeine_base_cups_max"`
}

// Noise holds the sampling standard deviations
type Noise struct {
	Sleep    float64 `yaml:"sleep_noise_h"`
	Phone    float64 `yaml:"phone_noise_h"`
	Activity float64 `yaml:"activity_noise_h"`
	Mood     float64 `yaml:"mood_noise_pts"`
}

// Bounds clamp every behavioral field at generation time
type Bounds struct {
	SleepMin    float64 `yaml:"sleep_min_h"`
	SleepMax    float64 `yaml:"sleep_max_h"`
	PhoneMin    float64 `yaml:"phone_min_h"`
	PhoneMax    float64 `yaml:"phone_max_h"`
	ActivityMin float64 `yaml:"activity_min_h"`
	ActivityMax float64 `yaml:"activity_max_h"`
	CaffeineMin int     `yaml:"caffeine_min_cups"`
	CaffeineMax int     `yaml:"caffeine_max_cups"`
}

// Rules hold the behavioral coupling thresholds
type Rules struct {
	PhoneStressGain       float64 `yaml:"phone_stress_gain_h"`
	ActivityStressDrop    float64 `yaml:"activity_stress_drop_h"`
	OverActivityThreshold float64 `yaml:"over_activity_threshold_h"`
	CaffeineDebtGate      float64 `yaml:"caffeine_reduce_if_debt_gt_h"`
	CaffeineReduceMin     int     `yaml:"caffeine_reduce_min_cups"`
	CaffeineReduceMax     int     `yaml:"caffeine_reduce_max_cups"`
}

// Params is the full parameter set for one synthesis profile
type Params struct {
	Directions Directions   `yaml:"directions"`
	Coeff      Coefficients `yaml:"coeff"`
	Mood       MoodWeights  `yaml:"mood"`
	EnvWeights EnvWeights   `yaml:"env_weights"`
	Bases      Bases        `yaml:"bases"`
	Noise      Noise        `yaml:"noise"`
	Bounds     Bounds       `yaml:"bounds"`
	Rules      Rules        `yaml:"rules"`
}

// DefaultParams returns the documented default parameter set. Profile files
// override these field by field; anything left unspecified keeps its default.
func DefaultParams() Params {
	return Params{
		Directions: Directions{Phone: -1, Caffeine: -1, Activity: +1, Environment: -1},
		Coeff: Coefficients{
			Phone:       0.25,
			Caffeine:    0.18,
			ActivityPos: 0.12,
			ActivityNeg: 0.02,
			Environment: 0.30,
			SleepDebt:   0.25,
		},
		Mood: MoodWeights{
			SleepGainPerHour:      6.0,
			ActivityGainPerHour:   1.5,
			CaffeinePenaltyPerCup: -1.0,
			EnvPenaltyPerUnit:     -5.0,
			PhonePenaltyPerHour:   -0.6,
		},
		EnvWeights: EnvWeights{
			PM:                 0.33,
			Temp:               0.34,
			Humidity:           0.33,
			TempComfortC:       21,
			HumidityComfortPct: 45,
		},
		Bases: Bases{
			SleepHours:      7.2,
			PhoneHours:      3.8,
			ActivityHours:   5.0,
			CaffeineCupsMin: 0,
			CaffeineCupsMax: 4,
		},
		Noise: Noise{Sleep: 0.6, Phone: 1.0, Activity: 1.6, Mood: 6.0},
		Bounds: Bounds{
			SleepMin: 4, SleepMax: 10,
			PhoneMin: 0, PhoneMax: 12,
			ActivityMin: 0, ActivityMax: 12,
			CaffeineMin: 0, CaffeineMax: 6,
		},
		Rules: Rules{
			PhoneStressGain:       0.4,
			ActivityStressDrop:    0.5,
			OverActivityThreshold: 7.0,
			CaffeineDebtGate:      1.5,
			CaffeineReduceMin:     0,
			CaffeineReduceMax:     1,
		},
	}
}

// Validate checks the structurally required pieces of a parameter set.
// Directions must be present and each must be exactly +1 or -1.
func (p Params) Validate() error {
	for name, d := range map[string]int{
		"phone":       p.Directions.Phone,
		"caffeine":    p.Directions.Caffeine,
		"activity":    p.Directions.Activity,
		"environment": p.Directions.Environment,
	} {
		if d != 1 && d != -1 {
			return fmt.Errorf("%w: direction %q must be +1 or -1, got %d",
				core.ErrMissingDirection, name, d)
		}
	}
	if p.Bounds.SleepMin >= p.Bounds.SleepMax {
		return core.NewValidationError("bounds", "sleep_min_h must be below sleep_max_h")
	}
	if p.Bases.CaffeineCupsMax < p.Bases.CaffeineCupsMin {
		return core.NewValidationError("bases", "caffeine cup range is inverted")
	}
	if p.Rules.CaffeineReduceMax < p.Rules.CaffeineReduceMin {
		return core.NewValidationError("rules", "caffeine reduce range is inverted")
	}
	return nil
}

// ProfileSpec names one synthesis profile and its parameter overrides
type ProfileSpec struct {
	Name      string    `yaml:"name"`
	Rows      int       `yaml:"rows"`
	Overrides yaml.Node `yaml:"overrides"`
}

// ProfileDoc is the parsed profile configuration file
type ProfileDoc struct {
	Seed     int64         `yaml:"seed"`
	Defaults yaml.Node     `yaml:"defaults"`
	Profiles []ProfileSpec `yaml:"profiles"`
}

// LoadProfileDoc reads and parses the YAML profile configuration
func LoadProfileDoc(path string) (*ProfileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: profile file %s", core.ErrDataUnavailable, path)
	}
	return ParseProfileDoc(data)
}

// ParseProfileDoc parses profile YAML content
func ParseProfileDoc(data []byte) (*ProfileDoc, error) {
	var doc ProfileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidProfile, err)
	}
	if doc.Seed == 0 {
		doc.Seed = 42
	}
	if len(doc.Profiles) == 0 {
		doc.Profiles = []ProfileSpec{{Name: "default", Rows: 1000}}
	}
	for i := range doc.Profiles {
		if doc.Profiles[i].Rows <= 0 {
			doc.Profiles[i].Rows = 1000
		}
		if doc.Profiles[i].Name == "" {
			return nil, fmt.Errorf("%w: profile %d has no name", core.ErrInvalidProfile, i)
		}
	}
	return &doc, nil
}

// ResolveParams produces the effective parameter set for one profile:
// built-in defaults, then the document defaults, then the profile overrides,
// each applied field by field (deep merge).
func (d *ProfileDoc) ResolveParams(spec ProfileSpec) (Params, error) {
	params := DefaultParams()
	if d.Defaults.Kind != 0 {
		if err := d.Defaults.Decode(&params); err != nil {
			return Params{}, fmt.Errorf("%w: defaults: %v", core.ErrInvalidProfile, err)
		}
	}
	if spec.Overrides.Kind != 0 {
		if err := spec.Overrides.Decode(&params); err != nil {
			return Params{}, fmt.Errorf("%w: profile %s overrides: %v", core.ErrInvalidProfile, spec.Name, err)
		}
	}
	if err := params.Validate(); err != nil {
		return Params{}, err
	}
	return params, nil
}
