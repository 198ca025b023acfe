package batch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	duct "Ductwork/internal/calc/duct"
)

func intp(v int) *int { return &v }

func TestCalculateMixed(t *testing.T) {
	in := Input{Items: []duct.Input{
		{Name: "rect", Shape: "Rectangular", WidthMM: intp(700), HeightMM: intp(400), FlowRateLps: 2000},
		{Name: "tri", Shape: "Triangle", FlowRateLps: 100},
		{Name: "round", Shape: "Round", DiameterMM: intp(250), FlowRateLps: 1000},
	}}
	res, err := Calculate(in, duct.StandardDefaults)
	if err != nil {
		t.Fatal(err)
	}
	if res.Count != 3 || res.Failed != 1 {
		t.Fatalf("count/failed = %d/%d, want 3/1", res.Count, res.Failed)
	}
	if len(res.Results[0].Entries) != 16 || len(res.Results[2].Entries) != 16 {
		t.Error("valid ducts should carry all sixteen entries")
	}
	if !res.Results[1].Entries.Failed() {
		t.Errorf("invalid duct entries = %v", res.Results[1].Entries)
	}
	if res.Results[1].Name != "tri" {
		t.Errorf("name = %q", res.Results[1].Name)
	}
}

func TestCalculateEmpty(t *testing.T) {
	if _, err := Calculate(Input{}, duct.StandardDefaults); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestHandler(t *testing.T) {
	h := &Handler{Defaults: duct.StandardDefaults}
	body := `{"items":[{"shape":"Round","diameter_mm":250,"flow_rate_lps":1000},{"shape":"Round","flow_rate_lps":1000}]}`
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Count != 2 || res.Failed != 1 {
		t.Errorf("count/failed = %d/%d", res.Count, res.Failed)
	}

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[]}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty batch status = %d", rec.Code)
	}
}
