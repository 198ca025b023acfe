package duct

// Shape is the tag a caller uses to pick a cross-section variant.
type Shape string

const (
	ShapeRectangular Shape = "Rectangular"
	ShapeRound       Shape = "Round"
)

// CrossSection is one of Rectangular or Round. The interface is sealed so
// that the evaluator's type switches cover every variant.
type CrossSection interface {
	Shape() Shape
	crossSection()
}

// Rectangular duct, dimensions in mm.
type Rectangular struct {
	WidthMM  int `json:"width_mm"`
	HeightMM int `json:"height_mm"`
}

func (Rectangular) Shape() Shape  { return ShapeRectangular }
func (Rectangular) crossSection() {}

// Round duct, diameter in mm.
type Round struct {
	DiameterMM int `json:"diameter_mm"`
}

func (Round) Shape() Shape  { return ShapeRound }
func (Round) crossSection() {}

// NewCrossSection builds the variant named by shape. Only the dimensions of
// that variant are read; the others may be nil.
func NewCrossSection(shape string, width, height, diameter *int) (CrossSection, error) {
	switch Shape(shape) {
	case ShapeRectangular:
		if width == nil || height == nil {
			return nil, invalidInput("width and height must be provided for rectangular duct")
		}
		if *width <= 0 || *height <= 0 {
			return nil, invalidInput("width and height must be positive, got %d x %d mm", *width, *height)
		}
		return Rectangular{WidthMM: *width, HeightMM: *height}, nil
	case ShapeRound:
		if diameter == nil {
			return nil, invalidInput("diameter must be provided for round duct")
		}
		if *diameter <= 0 {
			return nil, invalidInput("diameter must be positive, got %d mm", *diameter)
		}
		return Round{DiameterMM: *diameter}, nil
	default:
		return nil, invalidInput("unsupported duct type: %s", shape)
	}
}

func unsupportedSection(cs CrossSection) error {
	if cs == nil {
		return invalidInput("invalid duct type")
	}
	return invalidInput("unsupported duct type: %s", cs.Shape())
}
