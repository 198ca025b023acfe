package duct

import "testing"

func rectangularSpec() Specification {
	return Specification{
		Section:          Rectangular{WidthMM: 700, HeightMM: 400},
		FlowRateLps:      2000,
		RoughnessMM:      0.09,
		TemperatureC:     20,
		RelativeHumidity: 0.5,
		ElevationM:       0,
		DirectionFactor:  1,
		DistanceM:        1,
	}
}

func roundSpec(diameterMM, flowRateLps int) Specification {
	s := rectangularSpec()
	s.Section = Round{DiameterMM: diameterMM}
	s.FlowRateLps = flowRateLps
	return s
}

func TestDuctRectangularReference(t *testing.T) {
	p, err := New(rectangularSpec()).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "area", p.Area, 0.28, 1e-12)
	approx(t, "velocity", p.Velocity, 7.142857143, 1e-8)
	approx(t, "perimeter", p.Perimeter, 2.2, 1e-12)
	approx(t, "equivalent diameter", p.EquivalentDiameter, 0.572886978, 1e-8)
	approx(t, "hydraulic diameter", p.HydraulicDiameter, 0.5090909091, 1e-9)
	approx(t, "reynolds", p.ReynoldsNumber, 238350.2343, 1e-3)
	if p.FlowRegime != Turbulent {
		t.Errorf("flow regime = %s, want Turbulent", p.FlowRegime)
	}
	approx(t, "friction factor", p.FrictionFactor, 0.01650853179, 1e-10)
	approx(t, "static pressure drop", p.StaticPressureDrop, 0.9960168219, 1e-8)
	approx(t, "dynamic pressure drop", p.DynamicPressureDrop, 30.71521538, 1e-7)
	approx(t, "loss coefficient", p.LossCoefficient, 0.03242747315, 1e-9)
	approx(t, "sound power level", p.SoundPowerLevel, 47.16517853, 1e-7)
	approx(t, "sound pressure level", p.SoundPressureLevel, 36.17307989, 1e-7)
}

func TestDuctRoundReference(t *testing.T) {
	p, err := New(roundSpec(250, 1000)).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "area", p.Area, 0.04908738521, 1e-10)
	approx(t, "velocity", p.Velocity, 20.37183272, 1e-7)
	if p.EquivalentDiameter != 0.25 || p.HydraulicDiameter != 0.25 {
		t.Errorf("diameters = %g/%g, want 0.25 for a round duct", p.EquivalentDiameter, p.HydraulicDiameter)
	}
	approx(t, "friction factor", p.FrictionFactor, 0.0172070006, 1e-9)
	approx(t, "total pressure drop", p.TotalPressureDrop, 267.0408258, 1e-6)
}

func TestDuctCachesEachQuantityOnce(t *testing.T) {
	d := New(rectangularSpec())

	first, err := d.SoundPressureLevel()
	if err != nil {
		t.Fatal(err)
	}
	// SPL pulls SWL, velocity and area.
	if d.evaluations != 4 {
		t.Errorf("evaluations after SPL = %d, want 4", d.evaluations)
	}

	second, err := d.SoundPressureLevel()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("repeated SPL = %g, first %g", second, first)
	}
	if d.evaluations != 4 {
		t.Errorf("evaluations after repeat = %d, want 4", d.evaluations)
	}

	if _, err := d.Evaluate(); err != nil {
		t.Fatal(err)
	}
	if d.evaluations != int(numQuantities) {
		t.Errorf("evaluations after full evaluation = %d, want %d", d.evaluations, numQuantities)
	}
	if _, err := d.Evaluate(); err != nil {
		t.Fatal(err)
	}
	if d.evaluations != int(numQuantities) {
		t.Errorf("second evaluation recomputed: %d evaluations", d.evaluations)
	}
}

func TestDuctTransitionalZeroFrictionIsCached(t *testing.T) {
	// Ø1000 mm at 30 L/s sits at Re ≈ 2500.
	d := New(roundSpec(1000, 30))

	regime, err := d.Regime()
	if err != nil {
		t.Fatal(err)
	}
	if regime != Transitional {
		t.Fatalf("regime = %s, want Transitional", regime)
	}

	f, err := d.FrictionFactor()
	if err != nil || f != 0 {
		t.Fatalf("friction factor = %g, %v; want 0", f, err)
	}
	if !d.friction.cached {
		t.Fatal("zero friction factor was not cached")
	}
	n := d.evaluations
	if _, err := d.FrictionFactor(); err != nil {
		t.Fatal(err)
	}
	if d.evaluations != n {
		t.Errorf("cached zero friction factor was recomputed")
	}

	p, err := d.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if p.StaticPressureDrop != 0 || p.LossCoefficient != 0 {
		t.Errorf("transitional static drop/loss coefficient = %g/%g, want 0/0", p.StaticPressureDrop, p.LossCoefficient)
	}
}

func TestDuctLaminar(t *testing.T) {
	p, err := New(roundSpec(1000, 1)).Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if p.FlowRegime != Laminar {
		t.Fatalf("regime = %s, want Laminar", p.FlowRegime)
	}
	approx(t, "laminar friction factor", p.FrictionFactor, 64/p.ReynoldsNumber, 1e-15)
}

func TestDuctFailuresAbort(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Specification)
		kind ErrorKind
	}{
		{"nil section", func(s *Specification) { s.Section = nil }, InputValidation},
		{"zero width", func(s *Specification) { s.Section = Rectangular{WidthMM: 0, HeightMM: 400} }, InputValidation},
		{"negative diameter", func(s *Specification) { s.Section = Round{DiameterMM: -300} }, InputValidation},
		{"zero flow", func(s *Specification) { s.FlowRateLps = 0 }, InputValidation},
		{"zero distance", func(s *Specification) { s.DistanceM = 0 }, ArithmeticDegeneracy},
		{"below absolute zero", func(s *Specification) { s.TemperatureC = -280 }, InputValidation},
		{"negative roughness turbulent", func(s *Specification) { s.RoughnessMM = -5 }, InputValidation},
		{"negative roughness laminar", func(s *Specification) {
			s.Section = Round{DiameterMM: 1000}
			s.FlowRateLps = 1
			s.RoughnessMM = -5
		}, InputValidation},
		{"negative roughness transitional", func(s *Specification) {
			s.Section = Round{DiameterMM: 1000}
			s.FlowRateLps = 30
			s.RoughnessMM = -5
		}, InputValidation},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := rectangularSpec()
			c.mut(&s)
			p, err := New(s).Evaluate()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := kindOf(err); got != c.kind {
				t.Errorf("error kind = %s, want %s (%v)", got, c.kind, err)
			}
			if p != (Properties{}) {
				t.Errorf("partial properties returned: %+v", p)
			}
		})
	}
}

func TestResolveUnknownQuantity(t *testing.T) {
	d := New(rectangularSpec())
	if err := d.Resolve(numQuantities); kindOf(err) != InputValidation {
		t.Errorf("Resolve(unknown) error = %v", err)
	}
	for q := Quantity(0); q < numQuantities; q++ {
		if q.String() == "unknown quantity" {
			t.Errorf("quantity %d has no name", q)
		}
	}
}

func TestSpecificationIsCopied(t *testing.T) {
	s := rectangularSpec()
	d := New(s)
	s.FlowRateLps = 1
	v, err := d.Velocity()
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "velocity", v, 7.142857143, 1e-8)
}
