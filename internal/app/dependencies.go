package app

import (
	"github.com/herbertjm76/bare-resource-horizon/internal/config"
	"github.com/herbertjm76/bare-resource-horizon/internal/event_bus"
	"github.com/herbertjm76/bare-resource-horizon/internal/utils"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocation"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	"github.com/herbertjm76/bare-resource-horizon/pkg/importer"
	"github.com/herbertjm76/bare-resource-horizon/pkg/leave"
	"github.com/herbertjm76/bare-resource-horizon/pkg/project"
	"github.com/herbertjm76/bare-resource-horizon/pkg/resource"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	CompanyRepo    company.Repository
	CompanyService company.Service
	CompanyHandler *company.Handler

	ResourceRepo    resource.Repository
	ResourceService resource.Service
	ResourceHandler *resource.Handler

	ProjectRepo    project.Repository
	ProjectService project.Service
	ProjectHandler *project.Handler

	AllocationRepo    allocation.Repository
	AllocationService allocation.Service
	AllocationHandler *allocation.Handler

	LeaveRepo    leave.Repository
	LeaveService leave.Service
	LeaveHandler *leave.Handler

	ImporterService importer.Service
	ImporterHandler *importer.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()

	deps.CompanyRepo = company.NewRepository(db)
	deps.CompanyService = company.NewService(deps.CompanyRepo)
	deps.CompanyHandler = company.NewHandler(deps.CompanyService)

	deps.ResourceRepo = resource.NewRepository(db)
	deps.ResourceService = resource.NewService(deps.ResourceRepo)
	deps.ResourceHandler = resource.NewHandler(deps.ResourceService)

	deps.ProjectRepo = project.NewRepository(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.Clock = &utils.SystemClock{}

	deps.AllocationRepo = allocation.NewRepository(db)
	deps.AllocationService = allocation.NewService(deps.AllocationRepo, deps.CompanyService, deps.EventBus)
	deps.AllocationHandler = allocation.NewHandler(deps.AllocationService, deps.Clock)

	deps.LeaveRepo = leave.NewRepository(db)
	deps.LeaveService = leave.NewService(deps.LeaveRepo, deps.CompanyService, deps.EventBus)
	deps.LeaveHandler = leave.NewHandler(deps.LeaveService)

	deps.ImporterService = importer.NewService(deps.AllocationService)
	deps.ImporterHandler = importer.NewHandler(deps.ImporterService)

	return deps
}
