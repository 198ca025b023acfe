package report

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	duct "Ductwork/internal/calc/duct"
)

type Handler struct {
	Defaults duct.Defaults
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	input.Duct = input.Duct.WithDefaults(h.Defaults)
	res, err := duct.Calculate(input.Duct)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(res)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"duct-report.pdf\"")
	if err := Write(w, input, res, time.Now()); err != nil {
		log.Printf("duct report: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
