package duct

import (
	"fmt"
	"math"
)

// Standard air and correlation constants.
const (
	sutherlandConstant = 120.0
	viscosityRefCP     = 0.01827 // centipoise at the reference temperature
	refTempRankine     = 524.07

	seaLevelPressurePa = 101325.0
	gasConstantDry     = 287.057 // J/kg.K
	gasConstantVapour  = 461.495 // J/kg.K
	absoluteZeroC      = -273.15

	turbulentReynolds    = 4000.0
	transitionalReynolds = 2000.0
	altshulThreshold     = 0.018
)

// FlowRegime is the band a Reynolds number falls in.
type FlowRegime int

const (
	Laminar FlowRegime = iota + 1
	Transitional
	Turbulent
)

func (r FlowRegime) String() string {
	switch r {
	case Laminar:
		return "Laminar"
	case Transitional:
		return "Transitional"
	case Turbulent:
		return "Turbulent"
	default:
		return "Unknown"
	}
}

func (r FlowRegime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *FlowRegime) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Laminar":
		*r = Laminar
	case "Transitional":
		*r = Transitional
	case "Turbulent":
		*r = Turbulent
	default:
		return fmt.Errorf("unknown flow regime %q", text)
	}
	return nil
}

// RectangularArea returns W*H in m².
func RectangularArea(widthMM, heightMM int) (float64, error) {
	if widthMM <= 0 || heightMM <= 0 {
		return 0, invalidInput("invalid area: width and height must be positive")
	}
	return float64(widthMM) * float64(heightMM) * 1e-6, nil
}

// RoundArea returns pi*(D/2)² in m².
func RoundArea(diameterMM int) (float64, error) {
	if diameterMM <= 0 {
		return 0, invalidInput("invalid area: diameter must be positive")
	}
	r := float64(diameterMM) / 2
	return math.Pi * r * r * 1e-6, nil
}

// RectangularPerimeter returns 2(W+H) in m.
func RectangularPerimeter(widthMM, heightMM int) (float64, error) {
	if widthMM <= 0 || heightMM <= 0 {
		return 0, invalidInput("invalid perimeter: width and height must be positive")
	}
	return 2 * float64(widthMM+heightMM) * 1e-3, nil
}

// RoundPerimeter returns pi*D in m.
func RoundPerimeter(diameterMM int) (float64, error) {
	if diameterMM <= 0 {
		return 0, invalidInput("invalid perimeter: diameter must be positive")
	}
	return math.Pi * float64(diameterMM) * 1e-3, nil
}

// Velocity is Q/A with Q in L/s, giving m/s.
func Velocity(flowRateLps int, area float64) (float64, error) {
	if flowRateLps <= 0 {
		return 0, invalidInput("invalid flow rate: %d L/s", flowRateLps)
	}
	if area <= 0 {
		return 0, invalidInput("invalid area: %g m²", area)
	}
	return float64(flowRateLps) * 1e-3 / area, nil
}

// RectangularEquivalentDiameter is the Huebscher diameter of the round duct
// with the same friction loss: 1.3 A^0.625 / (P/2)^0.25.
func RectangularEquivalentDiameter(area, perimeter float64) float64 {
	return 1.3 * math.Pow(area, 0.625) / math.Pow(perimeter/2, 0.25)
}

// RectangularHydraulicDiameter is 4A/P.
func RectangularHydraulicDiameter(area, perimeter float64) float64 {
	return 4 * area / perimeter
}

// RoundDiameter converts the duct diameter to m. It is both the equivalent
// and the hydraulic diameter of a round duct.
func RoundDiameter(diameterMM int) float64 {
	return float64(diameterMM) * 1e-3
}

// DynamicViscosity of air by Sutherland's law, kg/m.s. The correlation is
// written in degrees Rankine.
func DynamicViscosity(temperatureC float64) (float64, error) {
	if temperatureC <= absoluteZeroC {
		return 0, invalidInput("temperature %g °C is below absolute zero", temperatureC)
	}
	ambient := temperatureC*9/5 + 491.67
	a := 0.555*refTempRankine + sutherlandConstant
	b := 0.555*ambient + sutherlandConstant
	return viscosityRefCP * (a / b) * math.Pow(ambient/refTempRankine, 1.5) / 1000, nil
}

// AirDensity of moist air at the given elevation, kg/m³. relativeHumidity
// is a 0-1 fraction.
func AirDensity(elevationM, temperatureC, relativeHumidity float64) (float64, error) {
	base := 1 - 2.25577e-5*elevationM
	if base <= 0 {
		return 0, invalidInput("elevation %g m is outside the barometric formula's range", elevationM)
	}
	if temperatureC <= absoluteZeroC {
		return 0, invalidInput("temperature %g °C is below absolute zero", temperatureC)
	}
	if relativeHumidity < 0 || relativeHumidity > 1 {
		return 0, invalidInput("relative humidity must be a fraction between 0 and 1, got %g", relativeHumidity)
	}

	p := seaLevelPressurePa * math.Pow(base, 5.25588)
	pSat := 6.1078 * math.Pow(10, 7.5*temperatureC/(temperatureC+237.3))
	pv := relativeHumidity * pSat
	pd := p - pv
	tK := temperatureC - absoluteZeroC

	rho := pd/(gasConstantDry*tK) + pv/(gasConstantVapour*tK)
	if rho <= 0 {
		return 0, degenerate("air density is not positive (%g kg/m³)", rho)
	}
	return rho, nil
}

// ReynoldsNumber is V*Dh/nu with nu = mu/rho.
func ReynoldsNumber(velocity, hydraulicDiameter, viscosity, density float64) (float64, error) {
	if viscosity <= 0 || density <= 0 {
		return 0, degenerate("kinematic viscosity is undefined for mu=%g, rho=%g", viscosity, density)
	}
	return velocity * hydraulicDiameter / (viscosity / density), nil
}

// Classify bands a Reynolds number. Each band includes its lower edge.
func Classify(reynolds float64) FlowRegime {
	switch {
	case reynolds >= turbulentReynolds:
		return Turbulent
	case reynolds >= transitionalReynolds:
		return Transitional
	default:
		return Laminar
	}
}

// AltshulTsal is the uncorrected f' = 0.11 (eps/Dh + 68/Re)^0.25.
func AltshulTsal(roughnessMM, hydraulicDiameter, reynolds float64) float64 {
	return 0.11 * math.Pow(roughnessMM*1e-3/hydraulicDiameter+68/reynolds, 0.25)
}

// FrictionFactor selects the correlation for the regime. Turbulent flow uses
// Altshul-Tsal with the 0.85f'+0.0028 correction below f' = 0.018.
// Transitional flow is reported as 0.
func FrictionFactor(regime FlowRegime, reynolds, roughnessMM, hydraulicDiameter float64) (float64, error) {
	if roughnessMM < 0 {
		return 0, invalidInput("roughness must not be negative, got %g mm", roughnessMM)
	}
	switch regime {
	case Turbulent:
		f := AltshulTsal(roughnessMM, hydraulicDiameter, reynolds)
		if f >= altshulThreshold {
			return f, nil
		}
		return f*0.85 + 0.0028, nil
	case Transitional:
		return 0, nil
	case Laminar:
		if reynolds == 0 {
			return 0, degenerate("laminar friction factor is undefined at Re = 0")
		}
		return 64 / reynolds, nil
	default:
		return 0, invalidInput("unknown flow regime %d", int(regime))
	}
}

// StaticPressureDrop per metre of duct, Pa/m.
func StaticPressureDrop(frictionFactor, hydraulicDiameter, density, velocity float64) float64 {
	return frictionFactor * (1 / hydraulicDiameter) * density * (velocity * velocity / 2)
}

// DynamicPressureDrop is the velocity pressure 0.5 rho V², Pa/m.
func DynamicPressureDrop(density, velocity float64) float64 {
	return 0.5 * density * velocity * velocity
}

func TotalPressureDrop(static, dynamic float64) float64 {
	return static + dynamic
}

// LossCoefficient is static over dynamic pressure.
func LossCoefficient(static, dynamic float64) (float64, error) {
	if dynamic == 0 {
		return 0, degenerate("loss coefficient is undefined for zero dynamic pressure")
	}
	return static / dynamic, nil
}

// SoundPowerLevel of airflow noise, dB.
func SoundPowerLevel(velocity, area float64) (float64, error) {
	if velocity <= 0 || area <= 0 {
		return 0, invalidInput("sound power level needs positive velocity and area")
	}
	return 10 + 50*math.Log10(velocity) + 10*math.Log10(area), nil
}

// SoundPressureLevel at distanceM from the source with directivity factor
// directionFactor, dB.
func SoundPressureLevel(soundPower float64, directionFactor int, distanceM float64) (float64, error) {
	if directionFactor <= 0 {
		return 0, invalidInput("noise direction factor must be positive, got %d", directionFactor)
	}
	if distanceM == 0 {
		return 0, degenerate("noise distance must not be zero")
	}
	if distanceM < 0 {
		return 0, invalidInput("noise distance must be positive, got %g m", distanceM)
	}
	spread := float64(directionFactor) / (4 * math.Pi * distanceM * distanceM)
	return soundPower - math.Abs(10*math.Log10(spread)), nil
}
