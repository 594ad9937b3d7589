// Package triage classifies free-text patient messages into urgency tiers
// using keyword and pattern matching against a static lexicon. It performs no
// I/O and keeps no mutable state; a Classifier may be shared freely between
// goroutines.
package triage

import "strings"

// Tier is the urgency classification of a message.
type Tier string

const (
	TierEmergency Tier = "EMERGENCY"
	TierUrgent    Tier = "URGENT"
	TierModerate  Tier = "MODERATE"
	TierLow       Tier = "LOW"
)

// Rationale strings returned with each tier.
const (
	rationaleEmergency = "This appears to be a medical emergency. Seek immediate medical attention."
	rationaleUrgent    = "This may require prompt medical attention. Consider contacting a healthcare provider."
	rationaleModerate  = "This should be evaluated by a healthcare provider if symptoms persist."
	rationaleLow       = "This appears to be a general health inquiry."
)

// Assessment is the result of classifying one message.
type Assessment struct {
	Tier      Tier   `json:"tier"`
	Rationale string `json:"rationale"`
}

// Classifier assigns urgency tiers to messages. The zero value is not usable;
// construct with NewClassifier.
type Classifier struct {
	lexicon *Lexicon
}

// NewClassifier returns a classifier backed by the given lexicon. A nil
// lexicon means the default one.
func NewClassifier(lexicon *Lexicon) *Classifier {
	if lexicon == nil {
		lexicon = NewLexicon()
	}
	return &Classifier{lexicon: lexicon}
}

// AssessUrgency classifies a message. Tiers are checked in strict precedence
// order and the first match wins: emergency keywords, then urgent keywords,
// then concerning patterns, then the default LOW tier. Matching is
// case-insensitive; an empty or whitespace-only message is LOW.
func (c *Classifier) AssessUrgency(message string) Assessment {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, c.lexicon.emergencyKeywords):
		return Assessment{Tier: TierEmergency, Rationale: rationaleEmergency}
	case containsAny(lower, c.lexicon.urgentKeywords):
		return Assessment{Tier: TierUrgent, Rationale: rationaleUrgent}
	case c.matchesConcerningPattern(lower):
		return Assessment{Tier: TierModerate, Rationale: rationaleModerate}
	default:
		return Assessment{Tier: TierLow, Rationale: rationaleLow}
	}
}

// IsEmergency reports whether the message trips the emergency keyword set.
// It applies exactly the same keywords as AssessUrgency, so it returns true
// if and only if AssessUrgency would return TierEmergency.
func (c *Classifier) IsEmergency(message string) bool {
	return containsAny(strings.ToLower(message), c.lexicon.emergencyKeywords)
}

// SymptomInfo looks up reference information for a common symptom. The name
// is matched case-insensitively and may contain the symptom as a substring
// ("mild fever" finds "fever"). Symptoms are checked in a fixed order, so a
// query mentioning several always resolves to the same one. The second
// return value is false when the symptom is unknown; that is a lookup miss,
// not an error.
func (c *Classifier) SymptomInfo(symptom string) (SymptomInfo, bool) {
	lower := strings.ToLower(symptom)
	for _, name := range c.lexicon.symptomOrder {
		if strings.Contains(lower, name) {
			return c.lexicon.symptoms[name], true
		}
	}
	return SymptomInfo{}, false
}

func (c *Classifier) matchesConcerningPattern(lower string) bool {
	for _, re := range c.lexicon.concerning {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
