package coach

import (
	"fmt"
)

// Card is the structured coaching output for one prediction. Ephemeral:
// built per call and handed straight to the presentation layer.
type Card struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Reasons  []string `json:"reasons"`
	Actions  []string `json:"actions"`
	Food     Meals    `json:"food"`
	Warnings []string `json:"warnings"`
}

// Meals is the single recommended item per meal slot
type Meals struct {
	Morning string `json:"morning"`
	Snack   string `json:"snack"`
	Dinner  string `json:"dinner"`
}

// Environment warning thresholds
const (
	warnPM10Above     = 80.0
	warnTempAbove     = 30.0
	warnHumidityBelow = 30.0
)

// fallbackActions is returned whenever no factor yields any action. Always
// exactly these three items, regardless of maxActions.
var fallbackActions = []string{
	"Drink 6-8 glasses of water",
	"Stretch for 10 minutes",
	"Lights out by 23:30",
}

var rankKeys = [3]func(RankedActions) []string{
	func(r RankedActions) []string { return r.Rank1 },
	func(r RankedActions) []string { return r.Rank2 },
	func(r RankedActions) []string { return r.Rank3 },
}

// BuildCard assembles a coaching card from a predicted grade, the ranked
// top factors, the rule library, and optional raw environment context for
// threshold warnings.
func BuildCard(grade int, factors []Factor, lib RuleLibrary, contextEnv map[string]float64, maxActions int) Card {
	card := Card{
		Title:    fmt.Sprintf("Today's condition %d/5", grade),
		Summary:  lib.GradeSummary[fmt.Sprintf("%d", grade)],
		Reasons:  factorStrings(factors),
		Actions:  selectRankedActions(factors, lib.FactorRules, maxActions),
		Food:     pickFoods(grade, lib.Foods),
		Warnings: environmentWarnings(contextEnv),
	}
	return card
}

// selectRankedActions takes the rank-tier action set of each of the top-3
// factors (1st factor → rank1 set, 2nd → rank2, 3rd → rank3), deduplicates
// across factors preserving order, and truncates at maxActions.
func selectRankedActions(factors []Factor, rules map[Factor]RankedActions, maxActions int) []string {
	actions := make([]string, 0, maxActions)
	seen := make(map[string]bool)

	for i, factor := range factors {
		if i >= len(rankKeys) {
			break
		}
		for _, a := range rankKeys[i](rules[factor]) {
			if !seen[a] {
				seen[a] = true
				actions = append(actions, a)
			}
		}
		if len(actions) >= maxActions {
			break
		}
	}
	if len(actions) == 0 {
		return append([]string{}, fallbackActions...)
	}
	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return actions
}

// pickFoods selects the recovery table for the worst grades, otherwise the
// default table, and always takes the first listed item per slot.
func pickFoods(grade int, foods map[string]FoodTable) Meals {
	key := "default"
	if grade == 4 || grade == 5 {
		key = "grade4_5"
	}
	table := foods[key]
	return Meals{
		Morning: firstOrEmpty(table.Morning),
		Snack:   firstOrEmpty(table.Snack),
		Dinner:  firstOrEmpty(table.Dinner),
	}
}

// environmentWarnings applies the fixed threshold rules against raw
// context values. Missing keys silently skip that check.
func environmentWarnings(contextEnv map[string]float64) []string {
	warnings := []string{}
	if contextEnv == nil {
		return warnings
	}
	if pm, ok := contextEnv["pm10"]; ok && pm > warnPM10Above {
		warnings = append(warnings, "High particulate matter: exercise indoors and wear a mask")
	}
	if temp, ok := contextEnv["temp"]; ok && temp > warnTempAbove {
		warnings = append(warnings, "Heat warning: limit midday outings and hydrate")
	}
	if hum, ok := contextEnv["humidity"]; ok && hum < warnHumidityBelow {
		warnings = append(warnings, "Dry air warning: keep humidity at 40-60%")
	}
	return warnings
}

func factorStrings(factors []Factor) []string {
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = string(f)
	}
	return out
}

func firstOrEmpty(xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[0]
}
