package duct

import "errors"

// Defaults fill in the environmental and noise inputs a request leaves out.
type Defaults struct {
	RoughnessMM      float64 `json:"roughness_mm" yaml:"roughness_mm"`
	TemperatureC     float64 `json:"temperature_c" yaml:"temperature_c"`
	RelativeHumidity float64 `json:"relative_humidity" yaml:"relative_humidity"`
	ElevationM       float64 `json:"elevation_m" yaml:"elevation_m"`
	DirectionFactor  int     `json:"direction_factor" yaml:"direction_factor"`
	DistanceM        float64 `json:"distance_m" yaml:"distance_m"`
}

// StandardDefaults: galvanised steel at 20 °C and 50 % RH, sea level, a
// listener 1 m away in free field.
var StandardDefaults = Defaults{
	RoughnessMM:      0.09,
	TemperatureC:     20,
	RelativeHumidity: 0.5,
	ElevationM:       0,
	DirectionFactor:  1,
	DistanceM:        1,
}

// Input is a calculation request as it arrives over JSON, YAML or a
// spreadsheet row. Pointer fields are optional; nil means "not given".
type Input struct {
	Name             string   `json:"name,omitempty" yaml:"name,omitempty"`
	Shape            string   `json:"shape" yaml:"shape"`
	WidthMM          *int     `json:"width_mm,omitempty" yaml:"width_mm,omitempty"`
	HeightMM         *int     `json:"height_mm,omitempty" yaml:"height_mm,omitempty"`
	DiameterMM       *int     `json:"diameter_mm,omitempty" yaml:"diameter_mm,omitempty"`
	FlowRateLps      int      `json:"flow_rate_lps" yaml:"flow_rate_lps"`
	RoughnessMM      *float64 `json:"roughness_mm,omitempty" yaml:"roughness_mm,omitempty"`
	TemperatureC     *float64 `json:"temperature_c,omitempty" yaml:"temperature_c,omitempty"`
	RelativeHumidity *float64 `json:"relative_humidity,omitempty" yaml:"relative_humidity,omitempty"`
	ElevationM       *float64 `json:"elevation_m,omitempty" yaml:"elevation_m,omitempty"`
	DirectionFactor  *int     `json:"direction_factor,omitempty" yaml:"direction_factor,omitempty"`
	DistanceM        *float64 `json:"distance_m,omitempty" yaml:"distance_m,omitempty"`
}

// WithDefaults returns a copy of in with every missing optional field taken
// from def.
func (in Input) WithDefaults(def Defaults) Input {
	if in.RoughnessMM == nil {
		in.RoughnessMM = &def.RoughnessMM
	}
	if in.TemperatureC == nil {
		in.TemperatureC = &def.TemperatureC
	}
	if in.RelativeHumidity == nil {
		in.RelativeHumidity = &def.RelativeHumidity
	}
	if in.ElevationM == nil {
		in.ElevationM = &def.ElevationM
	}
	if in.DirectionFactor == nil {
		in.DirectionFactor = &def.DirectionFactor
	}
	if in.DistanceM == nil {
		in.DistanceM = &def.DistanceM
	}
	return in
}

// Specification validates the cross section and builds the input record.
// Optional fields still missing fall back to StandardDefaults.
func (in Input) Specification() (Specification, error) {
	cs, err := NewCrossSection(in.Shape, in.WidthMM, in.HeightMM, in.DiameterMM)
	if err != nil {
		return Specification{}, err
	}
	in = in.WithDefaults(StandardDefaults)
	return Specification{
		Section:          cs,
		FlowRateLps:      in.FlowRateLps,
		RoughnessMM:      *in.RoughnessMM,
		TemperatureC:     *in.TemperatureC,
		RelativeHumidity: *in.RelativeHumidity,
		ElevationM:       *in.ElevationM,
		DirectionFactor:  *in.DirectionFactor,
		DistanceM:        *in.DistanceM,
	}, nil
}

// Evaluate runs one calculation on a fresh Duct.
func Evaluate(spec Specification) (Properties, error) {
	return New(spec).Evaluate()
}

// Compute evaluates one duct and projects the result for display. On failure
// it returns a *ValidationError and no entries.
func Compute(cs CrossSection, flowRateLps int, roughnessMM, temperatureC, relativeHumidity, elevationM float64, directionFactor int, distanceM float64) (Entries, error) {
	p, err := Evaluate(Specification{
		Section:          cs,
		FlowRateLps:      flowRateLps,
		RoughnessMM:      roughnessMM,
		TemperatureC:     temperatureC,
		RelativeHumidity: relativeHumidity,
		ElevationM:       elevationM,
		DirectionFactor:  directionFactor,
		DistanceM:        distanceM,
	})
	if err != nil {
		return nil, err
	}
	return Project(p), nil
}

// Describe is Compute for callers that only render: it always returns
// something to show, either the sixteen entries or the single error entry.
func Describe(cs CrossSection, flowRateLps int, roughnessMM, temperatureC, relativeHumidity, elevationM float64, directionFactor int, distanceM float64) Entries {
	entries, err := Compute(cs, flowRateLps, roughnessMM, temperatureC, relativeHumidity, elevationM, directionFactor, distanceM)
	if err != nil {
		return ErrorEntries(err)
	}
	return entries
}

// Result is the response for one Input.
type Result struct {
	Name       string      `json:"name,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
	Entries    Entries     `json:"entries"`
	Error      string      `json:"error,omitempty"`
}

// Calculate runs one request end to end. A failed calculation still returns
// a Result carrying the error projection alongside the error.
func Calculate(in Input) (Result, error) {
	spec, err := in.Specification()
	if err == nil {
		var p Properties
		p, err = Evaluate(spec)
		if err == nil {
			return Result{Name: in.Name, Properties: &p, Entries: Project(p)}, nil
		}
	}
	return Result{Name: in.Name, Entries: ErrorEntries(err), Error: err.Error()}, err
}

// IsValidationError reports whether err came from the engine.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
