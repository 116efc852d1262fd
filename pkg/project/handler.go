package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/herbertjm76/bare-resource-horizon/internal/rest"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
)

type ProjectDTO struct {
	Id               int    `json:"id"`
	Uid              string `json:"uid"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	StatusId         int    `json:"statusId,omitempty"`
	OfficeLocationId int    `json:"officeLocationId,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projects, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, toDTO(p))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	created, err := h.service.Create(r.Context(), Project{
		Code:             dto.Code,
		Name:             dto.Name,
		StatusId:         dto.StatusId,
		OfficeLocationId: dto.OfficeLocationId,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid projectId format",
			Details: "Parameter projectId must be a number",
		})
		return
	}
	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	updated, err := h.service.Update(r.Context(), Project{
		Id:               id,
		Code:             dto.Code,
		Name:             dto.Name,
		StatusId:         dto.StatusId,
		OfficeLocationId: dto.OfficeLocationId,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid projectId format",
			Details: "Parameter projectId must be a number",
		})
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(p Project) ProjectDTO {
	return ProjectDTO{
		Id:               p.Id,
		Uid:              p.Uid,
		Code:             p.Code,
		Name:             p.Name,
		StatusId:         p.StatusId,
		OfficeLocationId: p.OfficeLocationId,
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, company.ErrNoCompany) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if errors.Is(err, ErrProjectNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
