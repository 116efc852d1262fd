package importer

import (
	"encoding/json"
	"net/http"

	"github.com/herbertjm76/bare-resource-horizon/internal/rest"
)

// maxUploadBytes caps an uploaded workbook at 10 MiB.
const maxUploadBytes = 10 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ImportAllocations accepts a multipart form with a `file` workbook part
// and a `mapping` JSON part naming the spreadsheet columns.
func (h *Handler) ImportAllocations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid multipart form"})
		return
	}
	var mapping ColumnMapping
	if err := json.Unmarshal([]byte(r.FormValue("mapping")), &mapping); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid mapping",
			Details: "Part mapping must be a JSON object naming the workbook columns",
		})
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Part file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.service.ImportAllocations(r.Context(), file, mapping)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: err.Error()})
		return
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
