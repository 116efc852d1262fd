package leave

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/herbertjm76/bare-resource-horizon/internal/rest"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
)

const defaultPeriodWeeks = 12

type LeaveEntryDTO struct {
	ResourceId  int     `json:"resourceId"`
	LeaveTypeId int     `json:"leaveTypeId"`
	WeekKey     string  `json:"weekKey"`
	Hours       float64 `json:"hours"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetResourceLeave returns the leave entries of one resource over a span of
// weeks starting at the week containing date.
func (h *Handler) GetResourceLeave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resourceId, err := strconv.Atoi(mux.Vars(r)["resourceId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid resourceId format",
			Details: "Parameter resourceId must be a number",
		})
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Parameter date is required"})
		return
	}
	weeks := defaultPeriodWeeks
	if value := r.URL.Query().Get("weeks"); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			weeks = n
		}
	}

	entries, err := h.service.ListForResource(r.Context(), resourceId, date, weeks)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]LeaveEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, LeaveEntryDTO{
			ResourceId:  entry.ResourceId,
			LeaveTypeId: entry.LeaveTypeId,
			WeekKey:     entry.WeekKey,
			Hours:       entry.Hours,
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SaveLeave books leave hours for the week containing the submitted date.
func (h *Handler) SaveLeave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto struct {
		ResourceId  int     `json:"resourceId"`
		LeaveTypeId int     `json:"leaveTypeId"`
		Date        string  `json:"date"`
		Hours       float64 `json:"hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if dto.Hours < 0 {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Hours must not be negative"})
		return
	}

	saved, err := h.service.Save(r.Context(), dto.ResourceId, dto.LeaveTypeId, dto.Date, dto.Hours)
	if err != nil {
		writeError(w, err)
		return
	}
	response := LeaveEntryDTO{
		ResourceId:  saved.ResourceId,
		LeaveTypeId: saved.LeaveTypeId,
		WeekKey:     saved.WeekKey,
		Hours:       saved.Hours,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteLeave removes the leave entry for the week containing date.
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	resourceId, err := strconv.Atoi(r.URL.Query().Get("resourceId"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Parameter resourceId must be a number"})
		return
	}
	leaveTypeId, err := strconv.Atoi(r.URL.Query().Get("leaveTypeId"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Parameter leaveTypeId must be a number"})
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Parameter date is required"})
		return
	}
	if _, err := h.service.Delete(r.Context(), resourceId, leaveTypeId, date); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, company.ErrNoCompany) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
