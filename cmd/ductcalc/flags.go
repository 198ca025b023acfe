package main

import (
	duct "Ductwork/internal/calc/duct"

	"github.com/spf13/cobra"
)

// ductFlags mirrors duct.Input on the command line. Optional values are only
// passed on when the flag was given, so defaults still apply.
type ductFlags struct {
	name      string
	shape     string
	width     int
	height    int
	diameter  int
	flow      int
	roughness float64
	temp      float64
	rh        float64
	elevation float64
	direction int
	distance  float64
}

func (f *ductFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "duct tag shown in the output")
	fs.StringVar(&f.shape, "shape", string(duct.ShapeRectangular), "cross section: Rectangular or Round")
	fs.IntVar(&f.width, "width", 0, "rectangular width, mm")
	fs.IntVar(&f.height, "height", 0, "rectangular height, mm")
	fs.IntVar(&f.diameter, "diameter", 0, "round diameter, mm")
	fs.IntVar(&f.flow, "flow", 0, "air flow rate, L/s")
	fs.Float64Var(&f.roughness, "roughness", 0, "absolute roughness, mm")
	fs.Float64Var(&f.temp, "temp", 0, "air temperature, °C")
	fs.Float64Var(&f.rh, "rh", 0, "relative humidity, 0-1")
	fs.Float64Var(&f.elevation, "elevation", 0, "site elevation, m")
	fs.IntVar(&f.direction, "direction", 0, "noise directivity factor")
	fs.Float64Var(&f.distance, "distance", 0, "listener distance, m")
	cmd.MarkFlagRequired("flow")
}

func (f *ductFlags) input(cmd *cobra.Command) duct.Input {
	fs := cmd.Flags()
	in := duct.Input{
		Name:        f.name,
		Shape:       f.shape,
		FlowRateLps: f.flow,
	}
	if fs.Changed("width") {
		in.WidthMM = &f.width
	}
	if fs.Changed("height") {
		in.HeightMM = &f.height
	}
	if fs.Changed("diameter") {
		in.DiameterMM = &f.diameter
	}
	if fs.Changed("roughness") {
		in.RoughnessMM = &f.roughness
	}
	if fs.Changed("temp") {
		in.TemperatureC = &f.temp
	}
	if fs.Changed("rh") {
		in.RelativeHumidity = &f.rh
	}
	if fs.Changed("elevation") {
		in.ElevationM = &f.elevation
	}
	if fs.Changed("direction") {
		in.DirectionFactor = &f.direction
	}
	if fs.Changed("distance") {
		in.DistanceM = &f.distance
	}
	return in
}
