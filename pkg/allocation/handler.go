package allocation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/herbertjm76/bare-resource-horizon/internal/rest"
	"github.com/herbertjm76/bare-resource-horizon/internal/utils"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	"github.com/herbertjm76/bare-resource-horizon/pkg/resource"
)

// defaultPeriodWeeks bounds an allocation query when the client does not ask
// for a specific horizon.
const defaultPeriodWeeks = 12

type AllocationDTO struct {
	ProjectId    int     `json:"projectId"`
	ResourceId   int     `json:"resourceId"`
	ResourceKind string  `json:"resourceKind"`
	WeekKey      string  `json:"weekKey"`
	Hours        float64 `json:"hours"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// GetAllocations returns the week-key to hours map for one identity. The
// date parameter may be any day and defaults to today; it is normalized to
// its containing week. With weeksBack/weeksForward present the span is
// symmetric around that week, otherwise it runs weeks buckets forward
// (default 12).
func (h *Handler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	identityQuery, ok := decodeIdentityQuery(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = allocweek.ToDateKey(h.clock.Now())
	}

	var hours map[string]float64
	var err error
	if r.URL.Query().Has("weeksBack") || r.URL.Query().Has("weeksForward") {
		weeksBack := intQuery(r, "weeksBack", 0)
		weeksForward := intQuery(r, "weeksForward", 0)
		hours, err = h.service.FetchSymmetric(r.Context(), identityQuery.projectId, identityQuery.resourceId, identityQuery.kind, date, weeksBack, weeksForward)
	} else {
		weeks := intQuery(r, "weeks", defaultPeriodWeeks)
		hours, err = h.service.Fetch(r.Context(), identityQuery.projectId, identityQuery.resourceId, identityQuery.kind, date, weeks)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(hours); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SaveAllocation writes hours for the week containing the submitted date.
func (h *Handler) SaveAllocation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto struct {
		ProjectId    int     `json:"projectId"`
		ResourceId   int     `json:"resourceId"`
		ResourceKind string  `json:"resourceKind"`
		Date         string  `json:"date"`
		Hours        float64 `json:"hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	kind, err := resource.ParseKind(dto.ResourceKind)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid resource kind",
			Details: "Supported values: active, pre_registered",
		})
		return
	}
	if dto.Hours < 0 {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Hours must not be negative"})
		return
	}

	weekKey, err := h.service.Save(r.Context(), dto.ProjectId, dto.ResourceId, kind, dto.Date, dto.Hours)
	if err != nil {
		writeError(w, err)
		return
	}
	response := AllocationDTO{
		ProjectId:    dto.ProjectId,
		ResourceId:   dto.ResourceId,
		ResourceKind: dto.ResourceKind,
		WeekKey:      weekKey,
		Hours:        dto.Hours,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteAllocation removes the allocation for the week containing date.
func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	identityQuery, ok := decodeIdentityQuery(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Parameter date is required"})
		return
	}
	if _, err := h.service.Delete(r.Context(), identityQuery.projectId, identityQuery.resourceId, identityQuery.kind, date); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProjectAllocations returns all allocations of a project over the span,
// across resources, for the planning grid.
func (h *Handler) GetProjectAllocations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid projectId format",
			Details: "Parameter projectId must be a number",
		})
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = allocweek.ToDateKey(h.clock.Now())
	}
	weeks := intQuery(r, "weeks", defaultPeriodWeeks)

	allocations, err := h.service.ListForProject(r.Context(), projectId, date, weeks)
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]AllocationDTO, 0, len(allocations))
	for _, a := range allocations {
		dtos = append(dtos, AllocationDTO{
			ProjectId:    a.ProjectId,
			ResourceId:   a.ResourceId,
			ResourceKind: string(a.ResourceKind),
			WeekKey:      a.WeekKey,
			Hours:        a.Hours,
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type identityQuery struct {
	projectId  int
	resourceId int
	kind       resource.Kind
}

func decodeIdentityQuery(w http.ResponseWriter, r *http.Request) (identityQuery, bool) {
	projectId, err := strconv.Atoi(r.URL.Query().Get("projectId"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Parameter projectId must be a number"})
		return identityQuery{}, false
	}
	resourceId, err := strconv.Atoi(r.URL.Query().Get("resourceId"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{Error: "Parameter resourceId must be a number"})
		return identityQuery{}, false
	}
	kind, err := resource.ParseKind(r.URL.Query().Get("resourceKind"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid resource kind",
			Details: "Supported values: active, pre_registered",
		})
		return identityQuery{}, false
	}
	return identityQuery{projectId: projectId, resourceId: resourceId, kind: kind}, true
}

func intQuery(r *http.Request, name string, fallback int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, company.ErrNoCompany) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
