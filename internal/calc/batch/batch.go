package batch

import (
	"fmt"

	duct "Ductwork/internal/calc/duct"
)

type Input struct {
	Items []duct.Input `json:"items"`
}

type Result struct {
	Count   int           `json:"count"`
	Failed  int           `json:"failed"`
	Results []duct.Result `json:"results"`
}

// Calculate evaluates every item independently. A failing duct gets its
// error projection; the others are unaffected.
func Calculate(in Input, def duct.Defaults) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]duct.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := duct.Calculate(item.WithDefaults(def))
		if err != nil {
			out.Failed++
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}
