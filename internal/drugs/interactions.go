package drugs

import (
	"sort"
	"strings"
)

// Disclaimer accompanies every interaction report.
const Disclaimer = "This is a basic check. Always consult your pharmacist or doctor for comprehensive interaction screening."

// Finding is one known interaction between a pair of medications. The pair is
// stored in canonical (lexicographic) order.
type Finding struct {
	Medications [2]string `json:"medications"`
	Interaction string    `json:"interaction"`
}

// InteractionReport is the outcome of checking a medication list.
type InteractionReport struct {
	HasInteractions bool      `json:"has_interactions"`
	Findings        []Finding `json:"findings"`
	Disclaimer      string    `json:"disclaimer"`
}

type pairKey struct{ a, b string }

// knownInteractions is keyed by lexicographically sorted lower-case name
// pairs, which makes lookups symmetric by construction.
var knownInteractions = map[pairKey]string{
	{"aspirin", "warfarin"}:   "Increased bleeding risk",
	{"ibuprofen", "warfarin"}: "Increased bleeding risk",
	{"alcohol", "metformin"}:  "Risk of lactic acidosis",
	{"grapefruit", "statins"}: "Increased statin levels",
}

// CheckInteractions canonicalizes each name to lower case, forms every
// unordered pair, and collects the pairs present in the interaction table.
// A pair is reported at most once regardless of input order or case.
func CheckInteractions(medications []string) InteractionReport {
	lowered := make([]string, len(medications))
	for i, med := range medications {
		lowered[i] = strings.ToLower(med)
	}

	var findings []Finding
	seen := make(map[pairKey]bool)
	for i := 0; i < len(lowered); i++ {
		for j := i + 1; j < len(lowered); j++ {
			pair := [2]string{lowered[i], lowered[j]}
			sort.Strings(pair[:])
			key := pairKey{pair[0], pair[1]}
			if seen[key] {
				continue
			}
			if interaction, ok := knownInteractions[key]; ok {
				seen[key] = true
				findings = append(findings, Finding{Medications: pair, Interaction: interaction})
			}
		}
	}

	return InteractionReport{
		HasInteractions: len(findings) > 0,
		Findings:        findings,
		Disclaimer:      Disclaimer,
	}
}
