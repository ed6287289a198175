package calculator

import (
	"fmt"
	"strings"
)

type Goal string

const (
	GoalLoss     Goal = "loss"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

const dietDelta = 350

type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snacks    string `json:"snacks"`
	Hydration string `json:"hydration"`
	Tips      string `json:"tips"`
}

var mealTemplates = map[Goal]Meals{
	GoalLoss: {
		Breakfast: "Oats + Apple + 2 Egg Whites",
		Lunch:     "1 Cup Rice + Dal + Mixed Veg + Salad",
		Dinner:    "2 Rotis + Paneer/Chicken + Vegetables",
		Snacks:    "Green Tea + Nuts",
		Hydration: "2.5 - 3L water",
		Tips:      "Avoid sugar, fried food & walk 30 minutes daily.",
	},
	GoalGain: {
		Breakfast: "Banana Shake + Oats + Peanut Butter",
		Lunch:     "2 Cups Rice + Dal + Paneer/Chicken + Ghee",
		Dinner:    "3 Rotis + Paneer/Chicken + Veg",
		Snacks:    "Dry Fruits + Eggs + Milk",
		Hydration: "3 - 3.5L water",
		Tips:      "Increase protein & calorie-dense foods.",
	},
	GoalMaintain: {
		Breakfast: "Oats + Eggs + Milk",
		Lunch:     "Rice/Roti + Dal + Veg + Salad",
		Dinner:    "Roti + Paneer/Chicken + Veg",
		Snacks:    "Fruits + Nuts",
		Hydration: "2.5 - 3L water",
		Tips:      "Maintain balanced protein, carbs & fats.",
	},
}

func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := mealTemplates[g]; !ok {
		return "", fmt.Errorf("%w: goal must be loss, maintain or gain", ErrInvalidInput)
	}
	return g, nil
}

type DietPlan struct {
	Goal     Goal    `json:"goal"`
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	Calories float64 `json:"calories"`
	Meals    Meals   `json:"meals"`
}

// Diet returns the calorie target for goal and its fixed meal template.
func Diet(p Profile, goal Goal) (DietPlan, error) {
	meals, ok := mealTemplates[goal]
	if !ok {
		return DietPlan{}, fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, goal)
	}

	bmr, err := BMR(p)
	if err != nil {
		return DietPlan{}, err
	}
	tdee := bmr * activityMultipliers[p.Activity]

	target := tdee
	switch goal {
	case GoalLoss:
		target -= dietDelta
	case GoalGain:
		target += dietDelta
	}

	return DietPlan{
		Goal:     goal,
		BMR:      bmr,
		TDEE:     tdee,
		Calories: target,
		Meals:    meals,
	}, nil
}
