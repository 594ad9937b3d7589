// Package drugs holds the static over-the-counter drug reference table and
// the pairwise medication interaction checker. The tables are built once and
// never written to afterwards, so a Database is safe for concurrent reads.
package drugs

import (
	"sort"
	"strings"
)

// Record is the reference entry for one drug, keyed by its generic name.
type Record struct {
	GenericName  string   `json:"generic_name"`
	BrandNames   []string `json:"brand_names"`
	Category     string   `json:"category"`
	CommonUses   []string `json:"common_uses"`
	MaxDailyDose string   `json:"max_daily_dose"`
	Warnings     []string `json:"warnings"`
	SideEffects  []string `json:"side_effects"`
}

// Database is the in-memory drug reference table.
type Database struct {
	records map[string]Record
}

// NewDatabase builds the default reference table.
func NewDatabase() *Database {
	return &Database{records: map[string]Record{
		"acetaminophen": {
			GenericName:  "Acetaminophen",
			BrandNames:   []string{"Tylenol", "Panadol"},
			Category:     "Pain reliever/Fever reducer",
			CommonUses:   []string{"Pain relief", "Fever reduction"},
			MaxDailyDose: "4000mg for adults",
			Warnings: []string{
				"Do not exceed maximum dose",
				"Avoid alcohol",
				"Check other medications for acetaminophen content",
			},
			SideEffects: []string{"Rare at normal doses", "Liver damage with overdose"},
		},
		"ibuprofen": {
			GenericName:  "Ibuprofen",
			BrandNames:   []string{"Advil", "Motrin"},
			Category:     "NSAID (Non-steroidal anti-inflammatory drug)",
			CommonUses:   []string{"Pain relief", "Inflammation reduction", "Fever reduction"},
			MaxDailyDose: "1200mg for adults (OTC), up to 3200mg (prescription)",
			Warnings: []string{
				"Take with food",
				"Avoid if history of stomach ulcers",
				"May increase bleeding risk",
			},
			SideEffects: []string{"Stomach upset", "Heartburn", "Dizziness", "Increased bleeding risk"},
		},
		"aspirin": {
			GenericName:  "Aspirin",
			BrandNames:   []string{"Bayer", "Bufferin"},
			Category:     "NSAID/Antiplatelet",
			CommonUses:   []string{"Pain relief", "Heart attack prevention", "Stroke prevention"},
			MaxDailyDose: "Varies by indication (81mg-4000mg)",
			Warnings: []string{
				"Increased bleeding risk",
				"Not for children with viral infections",
				"Take with food",
			},
			SideEffects: []string{"Stomach irritation", "Increased bleeding", "Ringing in ears (high doses)"},
		},
	}}
}

// Lookup finds a drug by generic name or brand alias, case-insensitively.
// The second return value is false when the name is unknown; an unknown drug
// is a lookup miss, not an error.
func (d *Database) Lookup(name string) (Record, bool) {
	lower := strings.ToLower(name)
	if rec, ok := d.records[lower]; ok {
		return rec, true
	}
	for _, rec := range d.records {
		for _, brand := range rec.BrandNames {
			if strings.ToLower(brand) == lower {
				return rec, true
			}
		}
	}
	return Record{}, false
}

// Search returns every record whose generic name, brand name, or use-case
// description contains the query, case-insensitively. A record matching on
// several fields is returned once.
func (d *Database) Search(query string) []Record {
	lower := strings.ToLower(query)
	generics := make([]string, 0, len(d.records))
	for generic := range d.records {
		generics = append(generics, generic)
	}
	sort.Strings(generics)

	var results []Record
	for _, generic := range generics {
		rec := d.records[generic]
		if strings.Contains(generic, lower) || matchesBrand(rec, lower) || matchesUse(rec, lower) {
			results = append(results, rec)
		}
	}
	return results
}

func matchesBrand(rec Record, lowerQuery string) bool {
	for _, brand := range rec.BrandNames {
		if strings.Contains(strings.ToLower(brand), lowerQuery) {
			return true
		}
	}
	return false
}

func matchesUse(rec Record, lowerQuery string) bool {
	for _, use := range rec.CommonUses {
		if strings.Contains(strings.ToLower(use), lowerQuery) {
			return true
		}
	}
	return false
}
