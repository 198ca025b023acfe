package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	duct "Ductwork/internal/calc/duct"
	"github.com/xuri/excelize/v2"
)

// Column layout of an input sheet. Row 1 is a header and is skipped.
//
//	name, shape, width_mm, height_mm, diameter_mm, flow_rate_lps,
//	roughness_mm, temperature_c, relative_humidity, elevation_m,
//	direction_factor, distance_m
//
// Everything after flow_rate_lps is optional.
var inputHeader = []string{
	"name", "shape", "width_mm", "height_mm", "diameter_mm", "flow_rate_lps",
	"roughness_mm", "temperature_c", "relative_humidity", "elevation_m",
	"direction_factor", "distance_m",
}

const resultSheet = "Results"

// Sheet is what ReadWorkbook found in the first worksheet.
type Sheet struct {
	Inputs      []duct.Input
	SkippedRows []int
}

func ReadWorkbook(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Sheet{}, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) < 2 {
		return Sheet{}, fmt.Errorf("empty sheet")
	}

	var sheet Sheet
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i])
		if err != nil {
			sheet.SkippedRows = append(sheet.SkippedRows, i+1)
			continue
		}
		if in.Name == "" {
			in.Name = fmt.Sprintf("row %d", i+1)
		}
		sheet.Inputs = append(sheet.Inputs, in)
	}
	return sheet, nil
}

func parseRow(row []string) (duct.Input, error) {
	if len(row) < 6 {
		return duct.Input{}, fmt.Errorf("bad row")
	}
	in := duct.Input{
		Name:  strings.TrimSpace(row[0]),
		Shape: strings.TrimSpace(row[1]),
	}
	var err error
	if in.WidthMM, err = optInt(row, 2); err != nil {
		return duct.Input{}, err
	}
	if in.HeightMM, err = optInt(row, 3); err != nil {
		return duct.Input{}, err
	}
	if in.DiameterMM, err = optInt(row, 4); err != nil {
		return duct.Input{}, err
	}
	if in.FlowRateLps, err = toInt(row[5]); err != nil {
		return duct.Input{}, err
	}
	if in.RoughnessMM, err = optFloat(row, 6); err != nil {
		return duct.Input{}, err
	}
	if in.TemperatureC, err = optFloat(row, 7); err != nil {
		return duct.Input{}, err
	}
	if in.RelativeHumidity, err = optFloat(row, 8); err != nil {
		return duct.Input{}, err
	}
	if in.ElevationM, err = optFloat(row, 9); err != nil {
		return duct.Input{}, err
	}
	if in.DirectionFactor, err = optInt(row, 10); err != nil {
		return duct.Input{}, err
	}
	if in.DistanceM, err = optFloat(row, 11); err != nil {
		return duct.Input{}, err
	}
	return in, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func optInt(row []string, i int) (*int, error) {
	s := cell(row, i)
	if s == "" {
		return nil, nil
	}
	v, err := toInt(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optFloat(row []string, i int) (*float64, error) {
	s := cell(row, i)
	if s == "" {
		return nil, nil
	}
	v, err := toFloat(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func toInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// WriteTemplate writes an empty input workbook with the expected header.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(inputHeader))
	for i, h := range inputHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	return f.Write(w)
}

// WriteResults writes one row per result: the duct name, the sixteen
// quantities as numbers in SI units, and the error message if any.
func WriteResults(w io.Writer, results []duct.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultSheet); err != nil {
		return err
	}

	labels := duct.Project(duct.Properties{})
	header := []any{"Name"}
	for _, e := range labels {
		if e.Unit != "" {
			header = append(header, e.Label+" ("+e.Unit+")")
		} else {
			header = append(header, e.Label)
		}
	}
	header = append(header, "Error")
	if err := f.SetSheetRow(resultSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(resultSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, res := range results {
		row := []any{res.Name}
		if p := res.Properties; p != nil {
			row = append(row,
				p.Area, p.Velocity, p.Perimeter, p.EquivalentDiameter, p.HydraulicDiameter,
				p.DynamicViscosity, p.AirDensity, p.ReynoldsNumber, p.FlowRegime.String(),
				p.FrictionFactor, p.StaticPressureDrop, p.DynamicPressureDrop, p.TotalPressureDrop,
				p.LossCoefficient, p.SoundPowerLevel, p.SoundPressureLevel, "",
			)
		} else {
			for range labels {
				row = append(row, "")
			}
			row = append(row, res.Error)
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(resultSheet, start, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
