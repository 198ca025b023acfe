package duct

import "math"

// Quantity names one derived property of a duct.
type Quantity int

const (
	QuantityArea Quantity = iota
	QuantityVelocity
	QuantityPerimeter
	QuantityEquivalentDiameter
	QuantityHydraulicDiameter
	QuantityDynamicViscosity
	QuantityAirDensity
	QuantityReynoldsNumber
	QuantityFlowRegime
	QuantityFrictionFactor
	QuantityStaticPressureDrop
	QuantityDynamicPressureDrop
	QuantityTotalPressureDrop
	QuantityLossCoefficient
	QuantitySoundPowerLevel
	QuantitySoundPressureLevel

	numQuantities
)

var quantityNames = [numQuantities]string{
	"area",
	"velocity",
	"perimeter",
	"equivalent diameter",
	"hydraulic diameter",
	"dynamic viscosity",
	"air density",
	"Reynolds number",
	"flow regime",
	"friction factor",
	"static pressure drop",
	"dynamic pressure drop",
	"total pressure drop",
	"loss coefficient",
	"sound power level",
	"sound pressure level",
}

func (q Quantity) String() string {
	if q < 0 || q >= numQuantities {
		return "unknown quantity"
	}
	return quantityNames[q]
}

// Specification is the input record of one calculation. Duct keeps its own
// copy, so changing a Specification after New has no effect.
type Specification struct {
	Section          CrossSection
	FlowRateLps      int
	RoughnessMM      float64
	TemperatureC     float64
	RelativeHumidity float64 // 0-1
	ElevationM       float64
	DirectionFactor  int
	DistanceM        float64
}

// cell is a quantity slot: either unevaluated or holding its cached value.
// A cached zero is a real result, not "not yet computed".
type cell[T any] struct {
	cached bool
	value  T
}

// Duct resolves derived quantities on demand, caching each one the first
// time it is computed.
type Duct struct {
	spec        Specification
	evaluations int

	area               cell[float64]
	velocity           cell[float64]
	perimeter          cell[float64]
	equivalentDiameter cell[float64]
	hydraulicDiameter  cell[float64]
	viscosity          cell[float64]
	density            cell[float64]
	reynolds           cell[float64]
	regime             cell[FlowRegime]
	friction           cell[float64]
	staticDrop         cell[float64]
	dynamicDrop        cell[float64]
	totalDrop          cell[float64]
	lossCoefficient    cell[float64]
	soundPower         cell[float64]
	soundPressure      cell[float64]
}

func New(spec Specification) *Duct {
	return &Duct{spec: spec}
}

func (d *Duct) Specification() Specification {
	return d.spec
}

func resolve[T any](d *Duct, c *cell[T], q Quantity, compute func() (T, error)) (T, error) {
	if c.cached {
		return c.value, nil
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	if f, ok := any(v).(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		var zero T
		return zero, degenerate("%s is not a finite number", q)
	}
	d.evaluations++
	c.value, c.cached = v, true
	return v, nil
}

func (d *Duct) Area() (float64, error) {
	return resolve(d, &d.area, QuantityArea, func() (float64, error) {
		switch s := d.spec.Section.(type) {
		case Rectangular:
			return RectangularArea(s.WidthMM, s.HeightMM)
		case Round:
			return RoundArea(s.DiameterMM)
		default:
			return 0, unsupportedSection(d.spec.Section)
		}
	})
}

func (d *Duct) Perimeter() (float64, error) {
	return resolve(d, &d.perimeter, QuantityPerimeter, func() (float64, error) {
		switch s := d.spec.Section.(type) {
		case Rectangular:
			return RectangularPerimeter(s.WidthMM, s.HeightMM)
		case Round:
			return RoundPerimeter(s.DiameterMM)
		default:
			return 0, unsupportedSection(d.spec.Section)
		}
	})
}

func (d *Duct) Velocity() (float64, error) {
	return resolve(d, &d.velocity, QuantityVelocity, func() (float64, error) {
		a, err := d.Area()
		if err != nil {
			return 0, err
		}
		return Velocity(d.spec.FlowRateLps, a)
	})
}

func (d *Duct) EquivalentDiameter() (float64, error) {
	return resolve(d, &d.equivalentDiameter, QuantityEquivalentDiameter, func() (float64, error) {
		a, p, err := d.areaAndPerimeter()
		if err != nil {
			return 0, err
		}
		switch s := d.spec.Section.(type) {
		case Rectangular:
			return RectangularEquivalentDiameter(a, p), nil
		case Round:
			return RoundDiameter(s.DiameterMM), nil
		default:
			return 0, unsupportedSection(d.spec.Section)
		}
	})
}

func (d *Duct) HydraulicDiameter() (float64, error) {
	return resolve(d, &d.hydraulicDiameter, QuantityHydraulicDiameter, func() (float64, error) {
		a, p, err := d.areaAndPerimeter()
		if err != nil {
			return 0, err
		}
		switch s := d.spec.Section.(type) {
		case Rectangular:
			return RectangularHydraulicDiameter(a, p), nil
		case Round:
			return RoundDiameter(s.DiameterMM), nil
		default:
			return 0, unsupportedSection(d.spec.Section)
		}
	})
}

func (d *Duct) areaAndPerimeter() (float64, float64, error) {
	a, err := d.Area()
	if err != nil {
		return 0, 0, err
	}
	p, err := d.Perimeter()
	if err != nil {
		return 0, 0, err
	}
	return a, p, nil
}

func (d *Duct) DynamicViscosity() (float64, error) {
	return resolve(d, &d.viscosity, QuantityDynamicViscosity, func() (float64, error) {
		return DynamicViscosity(d.spec.TemperatureC)
	})
}

func (d *Duct) AirDensity() (float64, error) {
	return resolve(d, &d.density, QuantityAirDensity, func() (float64, error) {
		return AirDensity(d.spec.ElevationM, d.spec.TemperatureC, d.spec.RelativeHumidity)
	})
}

func (d *Duct) ReynoldsNumber() (float64, error) {
	return resolve(d, &d.reynolds, QuantityReynoldsNumber, func() (float64, error) {
		mu, err := d.DynamicViscosity()
		if err != nil {
			return 0, err
		}
		rho, err := d.AirDensity()
		if err != nil {
			return 0, err
		}
		dh, err := d.HydraulicDiameter()
		if err != nil {
			return 0, err
		}
		v, err := d.Velocity()
		if err != nil {
			return 0, err
		}
		return ReynoldsNumber(v, dh, mu, rho)
	})
}

func (d *Duct) Regime() (FlowRegime, error) {
	return resolve(d, &d.regime, QuantityFlowRegime, func() (FlowRegime, error) {
		re, err := d.ReynoldsNumber()
		if err != nil {
			return 0, err
		}
		return Classify(re), nil
	})
}

func (d *Duct) FrictionFactor() (float64, error) {
	return resolve(d, &d.friction, QuantityFrictionFactor, func() (float64, error) {
		re, err := d.ReynoldsNumber()
		if err != nil {
			return 0, err
		}
		dh, err := d.HydraulicDiameter()
		if err != nil {
			return 0, err
		}
		regime, err := d.Regime()
		if err != nil {
			return 0, err
		}
		return FrictionFactor(regime, re, d.spec.RoughnessMM, dh)
	})
}

func (d *Duct) StaticPressureDrop() (float64, error) {
	return resolve(d, &d.staticDrop, QuantityStaticPressureDrop, func() (float64, error) {
		f, err := d.FrictionFactor()
		if err != nil {
			return 0, err
		}
		dh, err := d.HydraulicDiameter()
		if err != nil {
			return 0, err
		}
		rho, err := d.AirDensity()
		if err != nil {
			return 0, err
		}
		v, err := d.Velocity()
		if err != nil {
			return 0, err
		}
		return StaticPressureDrop(f, dh, rho, v), nil
	})
}

func (d *Duct) DynamicPressureDrop() (float64, error) {
	return resolve(d, &d.dynamicDrop, QuantityDynamicPressureDrop, func() (float64, error) {
		rho, err := d.AirDensity()
		if err != nil {
			return 0, err
		}
		v, err := d.Velocity()
		if err != nil {
			return 0, err
		}
		return DynamicPressureDrop(rho, v), nil
	})
}

func (d *Duct) pressureDrops() (float64, float64, error) {
	ps, err := d.StaticPressureDrop()
	if err != nil {
		return 0, 0, err
	}
	pd, err := d.DynamicPressureDrop()
	if err != nil {
		return 0, 0, err
	}
	return ps, pd, nil
}

func (d *Duct) TotalPressureDrop() (float64, error) {
	return resolve(d, &d.totalDrop, QuantityTotalPressureDrop, func() (float64, error) {
		ps, pd, err := d.pressureDrops()
		if err != nil {
			return 0, err
		}
		return TotalPressureDrop(ps, pd), nil
	})
}

func (d *Duct) LossCoefficient() (float64, error) {
	return resolve(d, &d.lossCoefficient, QuantityLossCoefficient, func() (float64, error) {
		ps, pd, err := d.pressureDrops()
		if err != nil {
			return 0, err
		}
		return LossCoefficient(ps, pd)
	})
}

func (d *Duct) SoundPowerLevel() (float64, error) {
	return resolve(d, &d.soundPower, QuantitySoundPowerLevel, func() (float64, error) {
		v, err := d.Velocity()
		if err != nil {
			return 0, err
		}
		a, err := d.Area()
		if err != nil {
			return 0, err
		}
		return SoundPowerLevel(v, a)
	})
}

func (d *Duct) SoundPressureLevel() (float64, error) {
	return resolve(d, &d.soundPressure, QuantitySoundPressureLevel, func() (float64, error) {
		swl, err := d.SoundPowerLevel()
		if err != nil {
			return 0, err
		}
		return SoundPressureLevel(swl, d.spec.DirectionFactor, d.spec.DistanceM)
	})
}

// Resolve computes and caches q together with everything it depends on.
func (d *Duct) Resolve(q Quantity) error {
	var err error
	switch q {
	case QuantityArea:
		_, err = d.Area()
	case QuantityVelocity:
		_, err = d.Velocity()
	case QuantityPerimeter:
		_, err = d.Perimeter()
	case QuantityEquivalentDiameter:
		_, err = d.EquivalentDiameter()
	case QuantityHydraulicDiameter:
		_, err = d.HydraulicDiameter()
	case QuantityDynamicViscosity:
		_, err = d.DynamicViscosity()
	case QuantityAirDensity:
		_, err = d.AirDensity()
	case QuantityReynoldsNumber:
		_, err = d.ReynoldsNumber()
	case QuantityFlowRegime:
		_, err = d.Regime()
	case QuantityFrictionFactor:
		_, err = d.FrictionFactor()
	case QuantityStaticPressureDrop:
		_, err = d.StaticPressureDrop()
	case QuantityDynamicPressureDrop:
		_, err = d.DynamicPressureDrop()
	case QuantityTotalPressureDrop:
		_, err = d.TotalPressureDrop()
	case QuantityLossCoefficient:
		_, err = d.LossCoefficient()
	case QuantitySoundPowerLevel:
		_, err = d.SoundPowerLevel()
	case QuantitySoundPressureLevel:
		_, err = d.SoundPressureLevel()
	default:
		err = invalidInput("unknown quantity %d", int(q))
	}
	return err
}

// Properties holds every derived quantity of a fully evaluated duct, in SI
// units.
type Properties struct {
	Area                float64    `json:"area_m2"`
	Velocity            float64    `json:"velocity_m_s"`
	Perimeter           float64    `json:"perimeter_m"`
	EquivalentDiameter  float64    `json:"equivalent_diameter_m"`
	HydraulicDiameter   float64    `json:"hydraulic_diameter_m"`
	DynamicViscosity    float64    `json:"dynamic_viscosity_kg_ms"`
	AirDensity          float64    `json:"air_density_kg_m3"`
	ReynoldsNumber      float64    `json:"reynolds_number"`
	FlowRegime          FlowRegime `json:"flow_state"`
	FrictionFactor      float64    `json:"friction_factor"`
	StaticPressureDrop  float64    `json:"static_pressure_drop_pa_m"`
	DynamicPressureDrop float64    `json:"dynamic_pressure_drop_pa_m"`
	TotalPressureDrop   float64    `json:"total_pressure_drop_pa_m"`
	LossCoefficient     float64    `json:"loss_coefficient"`
	SoundPowerLevel     float64    `json:"sound_power_level_db"`
	SoundPressureLevel  float64    `json:"sound_pressure_level_db"`
}

// Evaluate resolves all sixteen quantities. The first failure aborts the
// whole evaluation.
func (d *Duct) Evaluate() (Properties, error) {
	for q := Quantity(0); q < numQuantities; q++ {
		if err := d.Resolve(q); err != nil {
			return Properties{}, err
		}
	}
	return Properties{
		Area:                d.area.value,
		Velocity:            d.velocity.value,
		Perimeter:           d.perimeter.value,
		EquivalentDiameter:  d.equivalentDiameter.value,
		HydraulicDiameter:   d.hydraulicDiameter.value,
		DynamicViscosity:    d.viscosity.value,
		AirDensity:          d.density.value,
		ReynoldsNumber:      d.reynolds.value,
		FlowRegime:          d.regime.value,
		FrictionFactor:      d.friction.value,
		StaticPressureDrop:  d.staticDrop.value,
		DynamicPressureDrop: d.dynamicDrop.value,
		TotalPressureDrop:   d.totalDrop.value,
		LossCoefficient:     d.lossCoefficient.value,
		SoundPowerLevel:     d.soundPower.value,
		SoundPressureLevel:  d.soundPressure.value,
	}, nil
}
