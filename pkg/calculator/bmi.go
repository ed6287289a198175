// Package calculator holds the closed-form health calculators behind the
// BMI, calorie and diet tools. Nothing here touches the network.
package calculator

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid input")

type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

const (
	idealBMIMin = 18.5
	idealBMIMax = 24.9
)

var advice = map[Category]string{
	Underweight: "Increase calories, eat protein-rich foods, nuts, eggs, milk.",
	Normal:      "Maintain with balanced diet & regular exercise.",
	Overweight:  "Reduce junk food, sugar; walk 30 min daily.",
	Obese:       "Consult a doctor. Avoid sugary drinks & high-calorie foods.",
}

type BMIResult struct {
	BMI        float64  `json:"bmi"`
	Category   Category `json:"category"`
	Advice     string   `json:"advice"`
	IdealMinKg float64  `json:"ideal_min_kg"`
	IdealMaxKg float64  `json:"ideal_max_kg"`
}

// BMI computes the body-mass index for a weight in kilograms and a height in
// centimetres.
func BMI(weightKg, heightCm float64) (BMIResult, error) {
	if err := positive("weight", weightKg); err != nil {
		return BMIResult{}, err
	}
	if err := positive("height", heightCm); err != nil {
		return BMIResult{}, err
	}

	h := heightCm / 100
	bmi := weightKg / (h * h)
	category := Classify(bmi)

	return BMIResult{
		BMI:        bmi,
		Category:   category,
		Advice:     advice[category],
		IdealMinKg: idealBMIMin * h * h,
		IdealMaxKg: idealBMIMax * h * h,
	}, nil
}

// Classify buckets a BMI value. Upper bounds are exclusive.
func Classify(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 24.9:
		return Normal
	case bmi < 29.9:
		return Overweight
	default:
		return Obese
	}
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %s must be a positive number", ErrInvalidInput, name)
	}
	return nil
}
