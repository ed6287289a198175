package calculator

import (
	"fmt"
	"math"
	"strings"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type Activity string

const (
	Sedentary Activity = "sedentary"
	Light     Activity = "light"
	Moderate  Activity = "moderate"
	Active    Activity = "active"
	Intense   Activity = "intense"
)

var activityMultipliers = map[Activity]float64{
	Sedentary: 1.2,
	Light:     1.375,
	Moderate:  1.55,
	Active:    1.725,
	Intense:   1.9,
}

const (
	lossDeficit = 400
	gainSurplus = 300

	proteinPerKg  = 1.6
	fatShare      = 0.25
	kcalPerGramPC = 4
	kcalPerGramF  = 9
)

func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case Male, Female:
		return g, nil
	default:
		return "", fmt.Errorf("%w: gender must be male or female", ErrInvalidInput)
	}
}

func ParseActivity(s string) (Activity, error) {
	a := Activity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := activityMultipliers[a]; !ok {
		return "", fmt.Errorf("%w: activity must be one of sedentary, light, moderate, active, intense", ErrInvalidInput)
	}
	return a, nil
}

// Profile is the input shared by the calorie and diet calculators.
type Profile struct {
	Age      int
	Gender   Gender
	HeightCm float64
	WeightKg float64
	Activity Activity
}

func (p Profile) Validate() error {
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be a positive number", ErrInvalidInput)
	}
	if err := positive("height", p.HeightCm); err != nil {
		return err
	}
	if err := positive("weight", p.WeightKg); err != nil {
		return err
	}
	if _, err := ParseGender(string(p.Gender)); err != nil {
		return err
	}
	if _, err := ParseActivity(string(p.Activity)); err != nil {
		return err
	}
	return nil
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(p Profile) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == Male {
		return base + 5, nil
	}
	return base - 161, nil
}

// TDEE is BMR scaled by the activity multiplier.
func TDEE(p Profile) (float64, error) {
	bmr, err := BMR(p)
	if err != nil {
		return 0, err
	}
	return bmr * activityMultipliers[p.Activity], nil
}

type CalorieResult struct {
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	Maintain float64 `json:"maintain"`
	Loss     float64 `json:"loss"`
	Gain     float64 `json:"gain"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

// Calories returns daily targets and a maintenance macro split. Protein is
// per kg of body weight, fat a fixed share of energy, carbs the remainder.
func Calories(p Profile) (CalorieResult, error) {
	bmr, err := BMR(p)
	if err != nil {
		return CalorieResult{}, err
	}
	tdee := bmr * activityMultipliers[p.Activity]

	protein := proteinPerKg * p.WeightKg
	fat := fatShare * tdee / kcalPerGramF
	carbs := (tdee - (protein*kcalPerGramPC + fat*kcalPerGramF)) / kcalPerGramPC

	return CalorieResult{
		BMR:      bmr,
		TDEE:     tdee,
		Maintain: tdee,
		Loss:     tdee - lossDeficit,
		Gain:     tdee + gainSurplus,
		ProteinG: protein,
		FatG:     fat,
		CarbsG:   carbs,
	}, nil
}

// Rounded rounds every figure to the nearest whole unit for display.
func (r CalorieResult) Rounded() CalorieResult {
	return CalorieResult{
		BMR:      math.Round(r.BMR),
		TDEE:     math.Round(r.TDEE),
		Maintain: math.Round(r.Maintain),
		Loss:     math.Round(r.Loss),
		Gain:     math.Round(r.Gain),
		ProteinG: math.Round(r.ProteinG),
		FatG:     math.Round(r.FatG),
		CarbsG:   math.Round(r.CarbsG),
	}
}
