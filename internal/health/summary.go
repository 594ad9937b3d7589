package health

import (
	"strconv"
	"strings"
)

// SummaryProfile is the slice of a user profile the summary needs.
type SummaryProfile struct {
	Age               *int
	Gender            string
	MedicalConditions []string
	Allergies         []string
}

// SymptomNote is one dated symptom observation included in a summary.
type SymptomNote struct {
	Date        string
	Description string
}

// FormatSummary renders a markdown health summary from a profile and recent
// symptom notes. Only the last five notes and the top three personalized tips
// are included. Sections with no data are omitted.
func FormatSummary(profile SummaryProfile, recentSymptoms []SymptomNote) string {
	var b strings.Builder
	b.WriteString("## Your Health Summary\n\n")

	if profile.Age != nil {
		writeField(&b, "Age", strconv.Itoa(*profile.Age))
	}
	if profile.Gender != "" {
		writeField(&b, "Gender", profile.Gender)
	}
	if len(profile.MedicalConditions) > 0 {
		writeField(&b, "Medical Conditions", strings.Join(profile.MedicalConditions, ", "))
	}
	if len(profile.Allergies) > 0 {
		writeField(&b, "Allergies", strings.Join(profile.Allergies, ", "))
	}

	if len(recentSymptoms) > 0 {
		b.WriteString("\n**Recent Symptoms:**\n")
		start := 0
		if len(recentSymptoms) > 5 {
			start = len(recentSymptoms) - 5
		}
		for _, s := range recentSymptoms[start:] {
			date := s.Date
			if date == "" {
				date = "Unknown date"
			}
			desc := s.Description
			if desc == "" {
				desc = "No description"
			}
			b.WriteString("- " + date + ": " + desc + "\n")
		}
	}

	if profile.Age != nil && profile.Gender != "" {
		if tips, err := GenerateHealthTips(*profile.Age, profile.Gender); err == nil {
			b.WriteString("\n**Personalized Health Tips:**\n")
			if len(tips) > 3 {
				tips = tips[:3]
			}
			for _, tip := range tips {
				b.WriteString("- " + tip + "\n")
			}
		}
	}

	b.WriteString("\n*Remember: This summary is for informational purposes only. Always consult with healthcare professionals for medical advice.*")
	return b.String()
}

func writeField(b *strings.Builder, name, value string) {
	b.WriteString("**" + name + ":** " + value + "\n")
}
