package resource

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/herbertjm76/bare-resource-horizon/internal/rest"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
)

type ResourceDTO struct {
	Id               int     `json:"id"`
	Uid              string  `json:"uid"`
	Kind             string  `json:"kind"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email,omitempty"`
	RoleId           int     `json:"roleId,omitempty"`
	OfficeLocationId int     `json:"officeLocationId,omitempty"`
	WeeklyCapacity   float64 `json:"weeklyCapacity"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resources, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]ResourceDTO, 0, len(resources))
	for _, res := range resources {
		dtos = append(dtos, toDTO(res))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	res, ok := decodeResource(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), res)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := strconv.Atoi(mux.Vars(r)["resourceId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid resourceId format",
			Details: "Parameter resourceId must be a number",
		})
		return
	}
	res, ok := decodeResource(w, r)
	if !ok {
		return
	}
	res.Id = id
	updated, err := h.service.Update(r.Context(), res)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["resourceId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid resourceId format",
			Details: "Parameter resourceId must be a number",
		})
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeResource(w http.ResponseWriter, r *http.Request) (Resource, bool) {
	var dto ResourceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return Resource{}, false
	}
	kind := Kind(dto.Kind)
	if dto.Kind != "" {
		parsed, err := ParseKind(dto.Kind)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
				Error:   "Invalid resource kind",
				Details: "Supported values: active, pre_registered",
			})
			return Resource{}, false
		}
		kind = parsed
	}
	return Resource{
		Kind:             kind,
		FirstName:        dto.FirstName,
		LastName:         dto.LastName,
		Email:            dto.Email,
		RoleId:           dto.RoleId,
		OfficeLocationId: dto.OfficeLocationId,
		WeeklyCapacity:   dto.WeeklyCapacity,
	}, true
}

func toDTO(res Resource) ResourceDTO {
	return ResourceDTO{
		Id:               res.Id,
		Uid:              res.Uid,
		Kind:             string(res.Kind),
		FirstName:        res.FirstName,
		LastName:         res.LastName,
		Email:            res.Email,
		RoleId:           res.RoleId,
		OfficeLocationId: res.OfficeLocationId,
		WeeklyCapacity:   res.WeeklyCapacity,
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, company.ErrNoCompany) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if errors.Is(err, ErrResourceNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
