package app

import (
	"github.com/gorilla/mux"
	"github.com/herbertjm76/bare-resource-horizon/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Company + settings
	r.HandleFunc("/api/company", deps.CompanyHandler.CreateCompany).Methods("POST")
	r.HandleFunc("/api/company/current", deps.CompanyHandler.CurrentCompany).Methods("GET")
	r.HandleFunc("/api/company/current/week-start-day", deps.CompanyHandler.UpdateWeekStartDay).Methods("PUT")

	// Reference data
	r.HandleFunc("/api/company/role", deps.CompanyHandler.ListRoles).Methods("GET")
	r.HandleFunc("/api/company/role", deps.CompanyHandler.CreateRole).Methods("POST")
	r.HandleFunc("/api/company/role/{roleId}", deps.CompanyHandler.DeleteRole).Methods("DELETE")
	r.HandleFunc("/api/company/project-status", deps.CompanyHandler.ListProjectStatuses).Methods("GET")
	r.HandleFunc("/api/company/project-status", deps.CompanyHandler.CreateProjectStatus).Methods("POST")
	r.HandleFunc("/api/company/project-status/{statusId}", deps.CompanyHandler.DeleteProjectStatus).Methods("DELETE")
	r.HandleFunc("/api/company/leave-type", deps.CompanyHandler.ListLeaveTypes).Methods("GET")
	r.HandleFunc("/api/company/leave-type", deps.CompanyHandler.CreateLeaveType).Methods("POST")
	r.HandleFunc("/api/company/leave-type/{leaveTypeId}", deps.CompanyHandler.DeleteLeaveType).Methods("DELETE")
	r.HandleFunc("/api/company/office-location", deps.CompanyHandler.ListOfficeLocations).Methods("GET")
	r.HandleFunc("/api/company/office-location", deps.CompanyHandler.CreateOfficeLocation).Methods("POST")
	r.HandleFunc("/api/company/office-location/{locationId}", deps.CompanyHandler.DeleteOfficeLocation).Methods("DELETE")

	// Resources
	r.HandleFunc("/api/resource", deps.ResourceHandler.ListResources).Methods("GET")
	r.HandleFunc("/api/resource", deps.ResourceHandler.CreateResource).Methods("POST")
	r.HandleFunc("/api/resource/{resourceId}", deps.ResourceHandler.UpdateResource).Methods("PUT")
	r.HandleFunc("/api/resource/{resourceId}", deps.ResourceHandler.DeleteResource).Methods("DELETE")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.UpdateProject).Methods("PUT")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.DeleteProject).Methods("DELETE")

	// Allocations
	r.HandleFunc("/api/allocation", deps.AllocationHandler.GetAllocations).Methods("GET")
	r.HandleFunc("/api/allocation", deps.AllocationHandler.SaveAllocation).Methods("PUT")
	r.HandleFunc("/api/allocation", deps.AllocationHandler.DeleteAllocation).Methods("DELETE")
	r.HandleFunc("/api/allocation/project/{projectId}", deps.AllocationHandler.GetProjectAllocations).Methods("GET")

	// Leave
	r.HandleFunc("/api/leave/resource/{resourceId}", deps.LeaveHandler.GetResourceLeave).Methods("GET")
	r.HandleFunc("/api/leave", deps.LeaveHandler.SaveLeave).Methods("PUT")
	r.HandleFunc("/api/leave", deps.LeaveHandler.DeleteLeave).Methods("DELETE")

	// Spreadsheet import
	r.HandleFunc("/api/import/allocations", deps.ImporterHandler.ImportAllocations).Methods("POST")
}
