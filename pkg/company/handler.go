package company

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/herbertjm76/bare-resource-horizon/internal/rest"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
)

type CompanyDTO struct {
	Uid          string `json:"uid"`
	Name         string `json:"name"`
	WeekStartDay string `json:"weekStartDay"`
}

type ReferenceItemDTO struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type OfficeLocationDTO struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CurrentCompany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	c, err := CurrentCompany(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if err := json.NewEncoder(w).Encode(companyToDTO(c)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto CompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	ws, err := allocweek.ParseWeekStartDay(dto.WeekStartDay)
	if err != nil && dto.WeekStartDay != "" {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid week start day",
			Details: "Supported values: sunday, monday, saturday",
		})
		return
	}
	created, err := h.service.Create(r.Context(), dto.Name, ws)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(companyToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateWeekStartDay(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var body struct {
		WeekStartDay string `json:"weekStartDay"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	ws, err := allocweek.ParseWeekStartDay(body.WeekStartDay)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid week start day",
			Details: "Supported values: sunday, monday, saturday",
		})
		return
	}
	updated, err := h.service.UpdateWeekStartDay(r.Context(), ws)
	if err != nil {
		if errors.Is(err, ErrNoCompany) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(companyToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	writeReferenceList(w, err, rolesToDTO(roles))
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	role, err := h.service.CreateRole(r.Context(), name)
	writeReferenceItem(w, err, ReferenceItemDTO{Id: role.Id, Name: role.Name})
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r, "roleId")
	if !ok {
		return
	}
	writeDeletion(w, h.service.DeleteRole(r.Context(), id))
}

func (h *Handler) ListProjectStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.service.ListProjectStatuses(r.Context())
	dtos := make([]ReferenceItemDTO, 0, len(statuses))
	for _, s := range statuses {
		dtos = append(dtos, ReferenceItemDTO{Id: s.Id, Name: s.Name})
	}
	writeReferenceList(w, err, dtos)
}

func (h *Handler) CreateProjectStatus(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	status, err := h.service.CreateProjectStatus(r.Context(), name)
	writeReferenceItem(w, err, ReferenceItemDTO{Id: status.Id, Name: status.Name})
}

func (h *Handler) DeleteProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r, "statusId")
	if !ok {
		return
	}
	writeDeletion(w, h.service.DeleteProjectStatus(r.Context(), id))
}

func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListLeaveTypes(r.Context())
	dtos := make([]ReferenceItemDTO, 0, len(types))
	for _, lt := range types {
		dtos = append(dtos, ReferenceItemDTO{Id: lt.Id, Name: lt.Name})
	}
	writeReferenceList(w, err, dtos)
}

func (h *Handler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	lt, err := h.service.CreateLeaveType(r.Context(), name)
	writeReferenceItem(w, err, ReferenceItemDTO{Id: lt.Id, Name: lt.Name})
}

func (h *Handler) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r, "leaveTypeId")
	if !ok {
		return
	}
	writeDeletion(w, h.service.DeleteLeaveType(r.Context(), id))
}

func (h *Handler) ListOfficeLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListOfficeLocations(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]OfficeLocationDTO, 0, len(locations))
	for _, loc := range locations {
		dtos = append(dtos, OfficeLocationDTO{Id: loc.Id, Name: loc.Name, City: loc.City, Country: loc.Country})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateOfficeLocation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto OfficeLocationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	loc, err := h.service.CreateOfficeLocation(r.Context(), OfficeLocation{Name: dto.Name, City: dto.City, Country: dto.Country})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(OfficeLocationDTO{Id: loc.Id, Name: loc.Name, City: loc.City, Country: loc.Country}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteOfficeLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r, "locationId")
	if !ok {
		return
	}
	writeDeletion(w, h.service.DeleteOfficeLocation(r.Context(), id))
}

func companyToDTO(c Company) CompanyDTO {
	return CompanyDTO{
		Uid:          c.Uid,
		Name:         c.Name,
		WeekStartDay: string(c.WeekStartDay),
	}
}

func rolesToDTO(roles []Role) []ReferenceItemDTO {
	dtos := make([]ReferenceItemDTO, 0, len(roles))
	for _, role := range roles {
		dtos = append(dtos, ReferenceItemDTO{Id: role.Id, Name: role.Name})
	}
	return dtos
}

func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Name must be provided"})
		return "", false
	}
	return body.Name, true
}

func pathId(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid " + name + " format",
			Details: "Parameter " + name + " must be a number",
		})
		return 0, false
	}
	return id, true
}

func writeReferenceList(w http.ResponseWriter, err error, dtos []ReferenceItemDTO) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeReferenceItem(w http.ResponseWriter, err error, dto ReferenceItemDTO) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeDeletion(w http.ResponseWriter, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoCompany) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
