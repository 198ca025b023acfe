package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	duct "Ductwork/internal/calc/duct"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string     `json:"project"`
	Author  string     `json:"author"`
	Title   string     `json:"title"`
	Notes   string     `json:"notes"`
	Duct    duct.Input `json:"duct"`
}

// Write renders a one-page A4 report of the duct inputs and the calculated
// entries. in.Duct is expected to have its defaults applied.
func Write(w io.Writer, in Input, res duct.Result, date time.Time) error {
	if in.Title == "" {
		in.Title = "Duct Sizing Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(in.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", in.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", in.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Input")
	for _, row := range inputRows(in.Duct) {
		tableRow(pdf, tr, row[0], row[1], row[2])
	}
	pdf.Ln(4)

	section(pdf, "Results")
	for _, e := range res.Entries {
		tableRow(pdf, tr, e.Label, e.Value, e.Unit)
	}

	if in.Notes != "" {
		pdf.Ln(6)
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(in.Notes), "", "L", false)
	}
	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func tableRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value, unit string) {
	pdf.CellFormat(70, 6, tr(label), "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 6, tr(value), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, tr(unit), "1", 1, "L", false, 0, "")
}

func inputRows(in duct.Input) [][3]string {
	rows := [][3]string{{"Duct Type", in.Shape, ""}}
	if in.Name != "" {
		rows = append([][3]string{{"Duct", in.Name, ""}}, rows...)
	}
	for _, d := range []struct {
		label string
		v     *int
	}{
		{"Width", in.WidthMM},
		{"Height", in.HeightMM},
		{"Diameter", in.DiameterMM},
	} {
		if d.v != nil {
			rows = append(rows, [3]string{d.label, strconv.Itoa(*d.v), "mm"})
		}
	}
	rows = append(rows, [3]string{"Flow Rate", strconv.Itoa(in.FlowRateLps), "L/s"})
	rows = appendFloat(rows, "Roughness", in.RoughnessMM, "mm")
	rows = appendFloat(rows, "Temperature", in.TemperatureC, "°C")
	rows = appendFloat(rows, "Relative Humidity", in.RelativeHumidity, "")
	rows = appendFloat(rows, "Elevation", in.ElevationM, "m")
	if in.DirectionFactor != nil {
		rows = append(rows, [3]string{"Noise Direction Factor", strconv.Itoa(*in.DirectionFactor), ""})
	}
	rows = appendFloat(rows, "Noise Distance", in.DistanceM, "m")
	return rows
}

func appendFloat(rows [][3]string, label string, v *float64, unit string) [][3]string {
	if v == nil {
		return rows
	}
	return append(rows, [3]string{label, strconv.FormatFloat(*v, 'f', -1, 64), unit})
}
