package coach

import (
	"encoding/json"
	"fmt"
	"os"

	"fiture/domain/core"
)

// RankedActions hold the action tips for a factor by its rank tier: the
// top-ranked factor surfaces its rank1 set, the second its rank2 set, the
// third its rank3 set.
type RankedActions struct {
	Rank1 []string `json:"rank1"`
	Rank2 []string `json:"rank2"`
	Rank3 []string `json:"rank3"`
}

// FoodTable lists candidate foods per meal slot; the first entry per slot
// is the one recommended.
type FoodTable struct {
	Morning []string `json:"morning"`
	Snack   []string `json:"snack"`
	Dinner  []string `json:"dinner"`
}

// RuleLibrary bundles everything the card builder needs: per-grade summary
// text, per-factor ranked actions, and food tables. Instances are treated
// as immutable once constructed; overrides build a new library instead of
// mutating the defaults.
type RuleLibrary struct {
	GradeSummary map[string]string        `json:"grade_summary"`
	FactorRules  map[Factor]RankedActions `json:"factor_rules_ranked"`
	Foods        map[string]FoodTable     `json:"foods"`
}

// DefaultLibrary returns a fresh copy of the built-in rule tables
func DefaultLibrary() RuleLibrary {
	return RuleLibrary{
		GradeSummary: map[string]string{
			"1": "Top condition today! The key is keeping it up.",
			"2": "Good shape! A few small changes could make it great.",
			"3": "Balance needed. Put some effort into your condition today.",
			"4": "A recharge day. Act on the feedback and be kind to yourself.",
			"5": "Full rest mode needed. How about taking today off?",
		},
		FactorRules: map[Factor]RankedActions{
			FactorSleepLow: {
				Rank1: []string{"Take a 20 minute nap", "Keep caffeine to one cup", "Set a 23:00 bedtime alarm"},
				Rank2: []string{"Screens off 30 minutes before bed", "Drink two extra glasses of water"},
				Rank3: []string{"Move bedtime 15 minutes earlier"},
			},
			FactorCaffeineHigh: {
				Rank1: []string{"Switch to decaf after noon", "Cap at one cup today", "Try barley tea instead"},
				Rank2: []string{"Keep it under two cups", "Drink two extra glasses of water"},
				Rank3: []string{"Dilute strong drinks"},
			},
			FactorPhoneHigh: {
				Rank1: []string{"No phone one hour before bed", "Set a 30 minute social media timer", "Turn on the blue light filter"},
				Rank2: []string{"Mute notifications except messages", "Limit scrolling to 10 minutes"},
				Rank3: []string{"Swap 10 minutes of scrolling for reading or meditation"},
			},
			FactorActivityLow: {
				Rank1: []string{"Walk 10 minutes three times today", "Take the stairs", "Stretch for 10 minutes"},
				Rank2: []string{"Take a 15 minute lunch walk", "Climb one or two flights of stairs"},
				Rank3: []string{"Get 1000 steps around the house"},
			},
			FactorPMHigh: {
				Rank1: []string{"Exercise indoors", "Wear a filter mask outside", "Wash up and gargle after coming home"},
				Rank2: []string{"Drink two extra glasses of water", "Keep ventilation short"},
				Rank3: []string{"Prefer indoor routes when out"},
			},
			FactorMoodLow: {
				Rank1: []string{"Write a feelings journal for 5 minutes", "Call a friend or family member", "Take a short walk"},
				Rank2: []string{"Listen to favorite music for 10 minutes", "Do a simple hobby"},
				Rank3: []string{"Take three deep breaths"},
			},
			FactorTempHigh: {
				Rank1: []string{"Avoid the midday sun", "Replenish electrolytes", "Wear loose clothing"},
				Rank2: []string{"Pick shaded routes", "Drink two extra glasses of water"},
				Rank3: []string{"Use a fan and ventilate briefly"},
			},
			FactorHumidityHigh: {
				Rank1: []string{"Run the dehumidifier", "Wear cotton clothing", "Cool down sweat carefully"},
				Rank2: []string{"Dry off fully after showering", "Change socks"},
				Rank3: []string{"Rinse with lukewarm water when sticky"},
			},
		},
		Foods: map[string]FoodTable{
			"default": {
				Morning: []string{"Brown rice with eggs", "Greek yogurt with banana"},
				Snack:   []string{"A handful of nuts", "Kiwi or orange"},
				Dinner:  []string{"Tofu rice bowl", "Chicken salad with clear soup"},
			},
			"grade4_5": {
				Morning: []string{"Rice porridge", "Banana"},
				Snack:   []string{"Plain yogurt", "A cup of fruit"},
				Dinner:  []string{"Clear seaweed soup", "Boiled potato with seasoned vegetables"},
			},
		},
	}
}

// libraryOverride mirrors the external rule document. A present top-level
// key replaces the built-in table wholesale (key-level replace, not a deep
// merge); absent keys keep their defaults.
type libraryOverride struct {
	GradeSummary map[string]string        `json:"grade_summary"`
	FactorRules  map[Factor]RankedActions `json:"factor_rules_ranked"`
	Foods        map[string]FoodTable     `json:"foods"`
}

// LoadLibrary builds the effective rule library. An empty path returns the
// defaults; a named but missing file is a data-availability error.
func LoadLibrary(path string) (RuleLibrary, error) {
	lib := DefaultLibrary()
	if path == "" {
		return lib, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleLibrary{}, fmt.Errorf("%w: %s", core.ErrRulesNotFound, path)
	}
	var ov libraryOverride
	if err := json.Unmarshal(data, &ov); err != nil {
		return RuleLibrary{}, fmt.Errorf("invalid rule library %s: %w", path, err)
	}
	if ov.GradeSummary != nil {
		lib.GradeSummary = ov.GradeSummary
	}
	if ov.FactorRules != nil {
		lib.FactorRules = ov.FactorRules
	}
	if ov.Foods != nil {
		lib.Foods = ov.Foods
	}
	return lib, nil
}
