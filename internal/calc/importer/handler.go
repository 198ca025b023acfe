package importer

import (
	"encoding/json"
	"log"
	"net/http"

	batch "Ductwork/internal/calc/batch"
	duct "Ductwork/internal/calc/duct"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Defaults duct.Defaults
}

type ImportResult struct {
	batch.Result
	SkippedRows []int `json:"skipped_rows,omitempty"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	sheet, err := ReadWorkbook(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	res, err := batch.Calculate(batch.Input{Items: sheet.Inputs}, h.Defaults)
	if err != nil {
		http.Error(w, "No valid rows", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Result: res, SkippedRows: sheet.SkippedRows})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input batch.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := batch.Calculate(input, h.Defaults)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\"ducts.xlsx\"")
	if err := WriteResults(w, res.Results); err != nil {
		log.Printf("export workbook: %v", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}

func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\"ducts-template.xlsx\"")
	if err := WriteTemplate(w); err != nil {
		log.Printf("template workbook: %v", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}
