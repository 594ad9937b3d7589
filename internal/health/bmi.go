// Package health contains the deterministic health calculators: BMI,
// cardiovascular risk scoring, health tips, action plans, and the profile
// summary. Everything here is a pure function over its inputs.
package health

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors shared by the calculators.
var (
	ErrInvalidHeight = errors.New("health: height must be positive")
	ErrInvalidWeight = errors.New("health: weight must be positive")
	ErrInvalidAge    = errors.New("health: age must not be negative")
)

// BMIResult is the body-mass index with its category and advice.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
	Advice   string  `json:"advice"`
}

// CalculateBMI computes weight/height² and assigns the standard category
// band on the exact quotient; the returned BMI value is rounded to one
// decimal. Height and weight must be positive.
func CalculateBMI(weightKg, heightM float64) (BMIResult, error) {
	if heightM <= 0 {
		return BMIResult{}, fmt.Errorf("%w: %v", ErrInvalidHeight, heightM)
	}
	if weightKg <= 0 {
		return BMIResult{}, fmt.Errorf("%w: %v", ErrInvalidWeight, weightKg)
	}

	// Band on the exact quotient; rounding is for display only.
	bmi := weightKg / (heightM * heightM)

	var category, advice string
	switch {
	case bmi < 18.5:
		category = "Underweight"
		advice = "Consider consulting with a healthcare provider about healthy weight gain."
	case bmi < 25:
		category = "Normal weight"
		advice = "Maintain your current healthy lifestyle."
	case bmi < 30:
		category = "Overweight"
		advice = "Consider lifestyle changes including diet and exercise. Consult a healthcare provider."
	default:
		category = "Obese"
		advice = "Strongly recommend consulting with a healthcare provider for a comprehensive health plan."
	}

	return BMIResult{BMI: math.Round(bmi*10) / 10, Category: category, Advice: advice}, nil
}
