// Package vitals interprets structured vital-sign readings against fixed
// clinical threshold tables. Each evaluated vital lands in exactly one band;
// bands are checked top-down and the first match wins.
package vitals

import (
	"errors"
	"fmt"
	"strconv"
)

// TemperatureUnit selects the threshold table for body temperature.
type TemperatureUnit string

const (
	Fahrenheit TemperatureUnit = "F"
	Celsius    TemperatureUnit = "C"
)

// VitalSigns carries the readings to interpret. Every field is optional: a
// nil pointer means the vital was not measured and produces no result.
// TemperatureUnit defaults to Fahrenheit when empty.
type VitalSigns struct {
	Systolic        *int            `json:"systolic,omitempty"`
	Diastolic       *int            `json:"diastolic,omitempty"`
	HeartRate       *int            `json:"heart_rate,omitempty"`
	Temperature     *float64        `json:"temperature,omitempty"`
	TemperatureUnit TemperatureUnit `json:"temperature_unit,omitempty"`
}

// Result is one interpreted vital: the formatted reading and its band label.
type Result struct {
	Reading string `json:"reading"`
	Status  string `json:"status"`
}

// Report holds one typed slot per vital. A nil slot means the corresponding
// reading was absent from the input.
type Report struct {
	BloodPressure *Result `json:"blood_pressure,omitempty"`
	HeartRate     *Result `json:"heart_rate,omitempty"`
	Temperature   *Result `json:"temperature,omitempty"`
}

// Results flattens the report into a name-keyed map, which is the shape most
// API consumers want. Absent vitals have no key.
func (r Report) Results() map[string]Result {
	out := make(map[string]Result)
	if r.BloodPressure != nil {
		out["blood_pressure"] = *r.BloodPressure
	}
	if r.HeartRate != nil {
		out["heart_rate"] = *r.HeartRate
	}
	if r.Temperature != nil {
		out["temperature"] = *r.Temperature
	}
	return out
}

// Validation errors returned by Interpret.
var (
	ErrPartialBloodPressure = errors.New("vitals: blood pressure requires both systolic and diastolic")
	ErrReadingOutOfRange    = errors.New("vitals: reading out of range")
	ErrUnknownUnit          = errors.New("vitals: unknown temperature unit")
)

// Interpret evaluates every present reading and returns its band. Readings
// that are missing are skipped; readings that are present but invalid
// (non-positive values, systolic without diastolic, unknown unit) are
// reported as validation errors rather than silently dropped.
func Interpret(v VitalSigns) (Report, error) {
	var report Report

	if (v.Systolic == nil) != (v.Diastolic == nil) {
		return Report{}, ErrPartialBloodPressure
	}
	if v.Systolic != nil {
		sys, dia := *v.Systolic, *v.Diastolic
		if sys <= 0 || dia <= 0 {
			return Report{}, fmt.Errorf("%w: blood pressure %d/%d", ErrReadingOutOfRange, sys, dia)
		}
		report.BloodPressure = &Result{
			Reading: fmt.Sprintf("%d/%d", sys, dia),
			Status:  bloodPressureStatus(sys, dia),
		}
	}

	if v.HeartRate != nil {
		hr := *v.HeartRate
		if hr <= 0 {
			return Report{}, fmt.Errorf("%w: heart rate %d", ErrReadingOutOfRange, hr)
		}
		report.HeartRate = &Result{
			Reading: fmt.Sprintf("%d bpm", hr),
			Status:  heartRateStatus(hr),
		}
	}

	if v.Temperature != nil {
		unit := v.TemperatureUnit
		if unit == "" {
			unit = Fahrenheit
		}
		temp := *v.Temperature
		if temp <= 0 {
			return Report{}, fmt.Errorf("%w: temperature %v", ErrReadingOutOfRange, temp)
		}
		status, err := temperatureStatus(temp, unit)
		if err != nil {
			return Report{}, err
		}
		report.Temperature = &Result{
			Reading: strconv.FormatFloat(temp, 'f', -1, 64) + "°" + string(unit),
			Status:  status,
		}
	}

	return report, nil
}

func bloodPressureStatus(systolic, diastolic int) string {
	switch {
	case systolic < 90 || diastolic < 60:
		return "Low (Hypotension)"
	case systolic < 120 && diastolic < 80:
		return "Normal"
	case systolic < 130 && diastolic < 80:
		return "Elevated"
	case systolic < 140 || diastolic < 90:
		return "High Blood Pressure Stage 1"
	case systolic < 180 || diastolic < 120:
		return "High Blood Pressure Stage 2"
	default:
		return "Hypertensive Crisis - Seek immediate care"
	}
}

func heartRateStatus(bpm int) string {
	switch {
	case bpm < 60:
		return "Low (Bradycardia)"
	case bpm <= 100:
		return "Normal"
	default:
		return "High (Tachycardia)"
	}
}

func temperatureStatus(temp float64, unit TemperatureUnit) (string, error) {
	switch unit {
	case Fahrenheit:
		switch {
		case temp < 97:
			return "Low", nil
		case temp <= 99.5:
			return "Normal", nil
		case temp <= 100.3:
			return "Low-grade fever", nil
		case temp <= 102:
			return "Moderate fever", nil
		default:
			return "High fever - seek medical attention", nil
		}
	case Celsius:
		switch {
		case temp < 36.1:
			return "Low", nil
		case temp <= 37.5:
			return "Normal", nil
		case temp <= 37.9:
			return "Low-grade fever", nil
		case temp <= 38.9:
			return "Moderate fever", nil
		default:
			return "High fever - seek medical attention", nil
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
}
