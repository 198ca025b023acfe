package duct

import (
	"strconv"
	"strings"
)

// ErrorLabel is the label of the single entry produced for a failed
// calculation.
const ErrorLabel = "Error"

// Entry is one display row: a label, a value already formatted for display,
// and its unit (empty for unitless values and the flow state).
type Entry struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

func (e Entry) String() string {
	if e.Unit == "" {
		return e.Label + ": " + e.Value
	}
	return e.Label + ": " + e.Value + " " + e.Unit
}

// Entries keeps display order. It encodes to JSON as an array so the order
// survives the trip to the client.
type Entries []Entry

// Project formats evaluated properties for display, rounding every number to
// three decimals.
func Project(p Properties) Entries {
	return Entries{
		measure("Area", p.Area, "m²"),
		measure("Velocity", p.Velocity, "m/s"),
		measure("Perimeter", p.Perimeter, "m"),
		measure("Equivalent Diameter", p.EquivalentDiameter, "m"),
		measure("Hydraulic Diameter", p.HydraulicDiameter, "m"),
		measure("Dynamic Viscosity", p.DynamicViscosity, "kg/m·s"),
		measure("Air Density", p.AirDensity, "kg/m³"),
		measure("Reynold's Number", p.ReynoldsNumber, "N/A"),
		{Label: "Flow State", Value: p.FlowRegime.String()},
		measure("Friction Factor", p.FrictionFactor, ""),
		measure("Static Pressure Drop", p.StaticPressureDrop, "Pa/m"),
		measure("Dynamic Pressure Drop", p.DynamicPressureDrop, "Pa/m"),
		measure("Total Pressure Drop", p.TotalPressureDrop, "Pa/m"),
		measure("Loss Coefficient", p.LossCoefficient, ""),
		measure("Sound Power Level", p.SoundPowerLevel, "dB"),
		measure("Sound Pressure Level", p.SoundPressureLevel, "dB"),
	}
}

func measure(label string, v float64, unit string) Entry {
	return Entry{Label: label, Value: strconv.FormatFloat(v, 'f', 3, 64), Unit: unit}
}

// ErrorEntries is the projection of a failed calculation.
func ErrorEntries(err error) Entries {
	return Entries{{Label: ErrorLabel, Value: err.Error()}}
}

// Failed reports whether e is an error projection.
func (e Entries) Failed() bool {
	return len(e) == 1 && e[0].Label == ErrorLabel
}

// Lookup returns the entry with the given label.
func (e Entries) Lookup(label string) (Entry, bool) {
	for _, entry := range e {
		if entry.Label == label {
			return entry, true
		}
	}
	return Entry{}, false
}

func (e Entries) String() string {
	var b strings.Builder
	for _, entry := range e {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	return b.String()
}
