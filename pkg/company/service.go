package company

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetByUid(ctx context.Context, uid string) (Company, error)
	Create(ctx context.Context, name string, weekStartDay allocweek.WeekStartDay) (Company, error)
	UpdateWeekStartDay(ctx context.Context, weekStartDay allocweek.WeekStartDay) (Company, error)
	// WeekStartDay resolves the configured week start for a company by id.
	// It backs every normalization call in the allocation and leave services.
	WeekStartDay(ctx context.Context, companyId int) (allocweek.WeekStartDay, error)

	ListRoles(ctx context.Context) ([]Role, error)
	CreateRole(ctx context.Context, name string) (Role, error)
	DeleteRole(ctx context.Context, id int) error

	ListProjectStatuses(ctx context.Context) ([]ProjectStatus, error)
	CreateProjectStatus(ctx context.Context, name string) (ProjectStatus, error)
	DeleteProjectStatus(ctx context.Context, id int) error

	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
	CreateLeaveType(ctx context.Context, name string) (LeaveType, error)
	DeleteLeaveType(ctx context.Context, id int) error

	ListOfficeLocations(ctx context.Context) ([]OfficeLocation, error)
	CreateOfficeLocation(ctx context.Context, loc OfficeLocation) (OfficeLocation, error)
	DeleteOfficeLocation(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetByUid(ctx context.Context, uid string) (Company, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) Create(ctx context.Context, name string, weekStartDay allocweek.WeekStartDay) (Company, error) {
	if !weekStartDay.Valid() {
		weekStartDay = allocweek.DefaultWeekStartDay
	}
	c := Company{
		Uid:          uuid.NewString(),
		Name:         name,
		WeekStartDay: weekStartDay,
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		log.Errorf("failed to create company %q: %v", name, err)
		return Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

func (s *ServiceImpl) UpdateWeekStartDay(ctx context.Context, weekStartDay allocweek.WeekStartDay) (Company, error) {
	current, err := CurrentCompany(ctx)
	if err != nil {
		return Company{}, err
	}
	if !weekStartDay.Valid() {
		return Company{}, fmt.Errorf("unsupported week start day: %q", weekStartDay)
	}
	if err := s.repo.UpdateWeekStartDay(ctx, current.Id, string(weekStartDay)); err != nil {
		log.Errorf("failed to update week start day for company %d: %v", current.Id, err)
		return Company{}, fmt.Errorf("failed to update week start day: %w", err)
	}
	current.WeekStartDay = weekStartDay
	return current, nil
}

func (s *ServiceImpl) WeekStartDay(ctx context.Context, companyId int) (allocweek.WeekStartDay, error) {
	// The middleware already resolved the tenant for this request; avoid a
	// second lookup when the id matches.
	if current, err := CurrentCompany(ctx); err == nil && current.Id == companyId {
		return current.WeekStartDay, nil
	}
	c, err := s.repo.Get(ctx, companyId)
	if err != nil {
		return "", err
	}
	return c.WeekStartDay, nil
}

func (s *ServiceImpl) ListRoles(ctx context.Context) ([]Role, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRoles(ctx, companyId)
}

func (s *ServiceImpl) CreateRole(ctx context.Context, name string) (Role, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return Role{}, err
	}
	return s.repo.CreateRole(ctx, companyId, name)
}

func (s *ServiceImpl) DeleteRole(ctx context.Context, id int) error {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteRole(ctx, companyId, id)
}

func (s *ServiceImpl) ListProjectStatuses(ctx context.Context) ([]ProjectStatus, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListProjectStatuses(ctx, companyId)
}

func (s *ServiceImpl) CreateProjectStatus(ctx context.Context, name string) (ProjectStatus, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return ProjectStatus{}, err
	}
	return s.repo.CreateProjectStatus(ctx, companyId, name)
}

func (s *ServiceImpl) DeleteProjectStatus(ctx context.Context, id int) error {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteProjectStatus(ctx, companyId, id)
}

func (s *ServiceImpl) ListLeaveTypes(ctx context.Context) ([]LeaveType, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListLeaveTypes(ctx, companyId)
}

func (s *ServiceImpl) CreateLeaveType(ctx context.Context, name string) (LeaveType, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return LeaveType{}, err
	}
	return s.repo.CreateLeaveType(ctx, companyId, name)
}

func (s *ServiceImpl) DeleteLeaveType(ctx context.Context, id int) error {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteLeaveType(ctx, companyId, id)
}

func (s *ServiceImpl) ListOfficeLocations(ctx context.Context) ([]OfficeLocation, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListOfficeLocations(ctx, companyId)
}

func (s *ServiceImpl) CreateOfficeLocation(ctx context.Context, loc OfficeLocation) (OfficeLocation, error) {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return OfficeLocation{}, err
	}
	return s.repo.CreateOfficeLocation(ctx, companyId, loc)
}

func (s *ServiceImpl) DeleteOfficeLocation(ctx context.Context, id int) error {
	companyId, err := CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteOfficeLocation(ctx, companyId, id)
}
