package triage

import "regexp"

// SymptomInfo describes a common symptom and when it warrants professional care.
type SymptomInfo struct {
	Description    string `json:"description"`
	WhenToSeekCare string `json:"when_to_seek_care"`
}

// Lexicon is the static rule set driving triage: keyword lists for the
// emergency and urgent tiers, regex patterns for the moderate tier, and a
// small reference table of common symptoms. It is built once at startup and
// never mutated, so a single instance is safe to share across goroutines.
//
// There is exactly one emergency keyword list. Both AssessUrgency and
// IsEmergency read it, so the quick boolean gate can never disagree with the
// full classifier about what counts as an emergency.
type Lexicon struct {
	emergencyKeywords []string
	urgentKeywords    []string
	concerning        []*regexp.Regexp
	symptoms          map[string]SymptomInfo
	symptomOrder      []string
}

var concerningPatterns = []string{
	`pain.*(\d+|ten|severe|unbearable)`,
	`bleeding.*(\d+|hours|days)`,
	`fever.*(\d+|high|very)`,
	`can't.*sleep.*(\d+|days|weeks)`,
	`lost.*weight.*(\d+|pounds|kg)`,
}

// NewLexicon returns the default lexicon.
func NewLexicon() *Lexicon {
	compiled := make([]*regexp.Regexp, 0, len(concerningPatterns))
	for _, p := range concerningPatterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return &Lexicon{
		emergencyKeywords: []string{
			"chest pain", "can't breathe", "difficulty breathing", "severe bleeding",
			"stroke", "heart attack", "suicide", "kill myself", "overdose",
			"severe headache", "unconscious", "seizure", "choking", "allergic reaction",
			"severe abdominal pain", "high fever", "severe burn", "broken bone",
			"head injury", "poisoning", "drug overdose", "can't move", "paralyzed",
		},
		urgentKeywords: []string{
			"high fever", "severe pain", "vomiting blood", "difficulty swallowing",
			"sudden dizziness", "severe allergic reaction", "persistent vomiting",
			"severe dehydration", "rapid heart rate", "confusion",
		},
		concerning: compiled,
		// Lookup scans symptoms in this order; earlier entries win when a
		// query mentions more than one.
		symptomOrder: []string{"fever", "headache", "cough", "sore throat"},
		symptoms: map[string]SymptomInfo{
			"fever": {
				Description:    "Elevated body temperature above 100.4°F (38°C)",
				WhenToSeekCare: "If fever is above 103°F, lasts more than 3 days, or accompanied by severe symptoms",
			},
			"headache": {
				Description:    "Pain in the head or upper neck",
				WhenToSeekCare: "If sudden, severe, or accompanied by neck stiffness, vision changes, or confusion",
			},
			"cough": {
				Description:    "Forceful expulsion of air from lungs",
				WhenToSeekCare: "If persistent for more than 2 weeks, producing blood, or with difficulty breathing",
			},
			"sore throat": {
				Description:    "Pain or irritation in the throat",
				WhenToSeekCare: "If severe, lasting more than a week, or with high fever",
			},
		},
	}
}
