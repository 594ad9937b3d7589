package health

import (
	"fmt"
	"strings"
)

var baseTips = []string{
	"Stay hydrated by drinking plenty of water throughout the day",
	"Aim for 7-9 hours of quality sleep each night",
	"Eat a balanced diet rich in fruits, vegetables, and whole grains",
	"Exercise regularly - aim for at least 150 minutes of moderate activity per week",
}

// GenerateHealthTips returns tips in fixed order: the base list, then the
// age-bracket additions, then gender-specific additions. Gender values other
// than "female" and "male" (case-insensitive) add nothing. Age must not be
// negative.
func GenerateHealthTips(age int, gender string) ([]string, error) {
	if age < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAge, age)
	}

	tips := make([]string, len(baseTips))
	copy(tips, baseTips)

	switch {
	case age < 18:
		tips = append(tips,
			"Ensure you're getting enough calcium and vitamin D for bone development",
			"Limit screen time and take regular breaks from devices",
		)
	case age < 40:
		tips = append(tips,
			"Establish healthy habits now to prevent chronic diseases later",
			"Consider regular health screenings as recommended by your doctor",
		)
	case age < 65:
		tips = append(tips,
			"Schedule regular screenings for blood pressure, cholesterol, and diabetes",
			"Consider bone density testing if at risk for osteoporosis",
		)
	default:
		tips = append(tips,
			"Focus on fall prevention and balance exercises",
			"Ensure you're up to date with vaccinations including flu and pneumonia",
		)
	}

	switch strings.ToLower(gender) {
	case "female":
		tips = append(tips,
			"Don't forget regular mammograms and cervical cancer screenings",
			"Ensure adequate iron intake, especially if menstruating",
		)
	case "male":
		tips = append(tips,
			"Consider regular prostate health screenings after age 50",
			"Be aware of heart disease risk factors",
		)
	}

	return tips, nil
}
