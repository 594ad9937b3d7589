package health

import "fmt"

// RiskLevel is the tier assigned by a risk assessment.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// RiskProfile is the outcome of a cardiovascular risk assessment.
type RiskProfile struct {
	RiskLevel         RiskLevel `json:"risk_level"`
	RiskScore         int       `json:"risk_score"`
	ApplicableFactors []string  `json:"applicable_factors"`
	Recommendations   []string  `json:"recommendations"`
}

// riskFactors maps a condition to the risk-factor tags that count toward it.
// Only cardiovascular risk is scored today; the diabetes and osteoporosis
// sets are exposed as reference data via RiskFactors.
var riskFactors = map[string][]string{
	"cardiovascular": {
		"smoking", "high_blood_pressure", "high_cholesterol",
		"diabetes", "family_history", "obesity", "sedentary_lifestyle",
	},
	"diabetes": {
		"obesity", "family_history", "high_blood_pressure",
		"sedentary_lifestyle", "age_over_45", "gestational_diabetes",
	},
	"osteoporosis": {
		"female", "age_over_50", "smoking", "low_calcium",
		"sedentary_lifestyle", "family_history", "thin_build",
	},
}

// RiskFactors returns the known risk-factor tags for a condition
// ("cardiovascular", "diabetes", "osteoporosis"). The second return value is
// false for unknown conditions.
func RiskFactors(condition string) ([]string, bool) {
	factors, ok := riskFactors[condition]
	if !ok {
		return nil, false
	}
	out := make([]string, len(factors))
	copy(out, factors)
	return out, true
}

// AssessCardiovascularRisk scores the caller's risk-factor tags against the
// cardiovascular set and adds an age bonus (+2 over 65, +1 over 45). Unknown
// tags are ignored. Score 0 is Low, 1-2 Moderate, 3+ High.
func AssessCardiovascularRisk(factors []string, age int) (RiskProfile, error) {
	if age < 0 {
		return RiskProfile{}, fmt.Errorf("%w: %d", ErrInvalidAge, age)
	}

	known := make(map[string]struct{}, len(riskFactors["cardiovascular"]))
	for _, f := range riskFactors["cardiovascular"] {
		known[f] = struct{}{}
	}

	applicable := make([]string, 0, len(factors))
	for _, f := range factors {
		if _, ok := known[f]; ok {
			applicable = append(applicable, f)
		}
	}

	score := len(applicable)
	switch {
	case age > 65:
		score += 2
	case age > 45:
		score += 1
	}

	var level RiskLevel
	var recommendations []string
	switch {
	case score == 0:
		level = RiskLow
		recommendations = []string{"Maintain healthy lifestyle", "Regular check-ups"}
	case score <= 2:
		level = RiskModerate
		recommendations = []string{
			"Focus on modifiable risk factors",
			"Regular blood pressure and cholesterol checks",
			"Consider lifestyle modifications",
		}
	default:
		level = RiskHigh
		recommendations = []string{
			"Consult with healthcare provider immediately",
			"Comprehensive cardiovascular evaluation needed",
			"Aggressive lifestyle modifications required",
		}
	}

	return RiskProfile{
		RiskLevel:         level,
		RiskScore:         score,
		ApplicableFactors: applicable,
		Recommendations:   recommendations,
	}, nil
}

// ActionPlan turns assessment results into a short list of concrete action
// items. Moderate or High cardiovascular risk front-loads the escalation
// steps; the general items always follow. The list is capped at 8 items.
func ActionPlan(cardiovascular RiskProfile) []string {
	var items []string
	if cardiovascular.RiskLevel == RiskModerate || cardiovascular.RiskLevel == RiskHigh {
		items = append(items,
			"Schedule appointment with primary care physician",
			"Begin or increase cardiovascular exercise (with doctor approval)",
			"Implement heart-healthy diet changes",
		)
	}
	items = append(items,
		"Establish regular sleep schedule (7-9 hours)",
		"Stay hydrated throughout the day",
		"Practice stress management techniques",
		"Schedule regular preventive health screenings",
	)
	if len(items) > 8 {
		items = items[:8]
	}
	return items
}
