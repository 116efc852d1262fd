package company

import (
	"context"
	"sync"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
)

type RepositoryStub struct {
	mu        sync.RWMutex
	companies map[int]Company
	roles     map[int]Role
	statuses  map[int]ProjectStatus
	types     map[int]LeaveType
	locations map[int]OfficeLocation
	nextId    int
}

func NewRepositoryStub() *RepositoryStub {
	r := &RepositoryStub{}
	r.Reset()
	return r
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies = make(map[int]Company)
	r.roles = make(map[int]Role)
	r.statuses = make(map[int]ProjectStatus)
	r.types = make(map[int]LeaveType)
	r.locations = make(map[int]OfficeLocation)
	r.nextId = 1
}

func (r *RepositoryStub) GetByUid(ctx context.Context, uid string) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.companies {
		if c.Uid == uid {
			return c, nil
		}
	}
	return Company{}, ErrCompanyNotFound
}

func (r *RepositoryStub) Get(ctx context.Context, id int) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.companies[id]
	if !ok {
		return Company{}, ErrCompanyNotFound
	}
	return c, nil
}

func (r *RepositoryStub) Create(ctx context.Context, c Company) (Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Id = r.nextId
	r.nextId++
	r.companies[c.Id] = c
	return c, nil
}

func (r *RepositoryStub) UpdateWeekStartDay(ctx context.Context, id int, weekStartDay string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return ErrCompanyNotFound
	}
	ws, err := allocweek.ParseWeekStartDay(weekStartDay)
	if err != nil {
		return err
	}
	c.WeekStartDay = ws
	r.companies[id] = c
	return nil
}

func (r *RepositoryStub) ListRoles(ctx context.Context, companyId int) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Role
	for _, role := range r.roles {
		if role.CompanyId == companyId {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *RepositoryStub) CreateRole(ctx context.Context, companyId int, name string) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role := Role{Id: r.nextId, CompanyId: companyId, Name: name}
	r.nextId++
	r.roles[role.Id] = role
	return role, nil
}

func (r *RepositoryStub) DeleteRole(ctx context.Context, companyId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[id]; ok && role.CompanyId == companyId {
		delete(r.roles, id)
	}
	return nil
}

func (r *RepositoryStub) ListProjectStatuses(ctx context.Context, companyId int) ([]ProjectStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ProjectStatus
	for _, status := range r.statuses {
		if status.CompanyId == companyId {
			out = append(out, status)
		}
	}
	return out, nil
}

func (r *RepositoryStub) CreateProjectStatus(ctx context.Context, companyId int, name string) (ProjectStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	status := ProjectStatus{Id: r.nextId, CompanyId: companyId, Name: name}
	r.nextId++
	r.statuses[status.Id] = status
	return status, nil
}

func (r *RepositoryStub) DeleteProjectStatus(ctx context.Context, companyId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, ok := r.statuses[id]; ok && status.CompanyId == companyId {
		delete(r.statuses, id)
	}
	return nil
}

func (r *RepositoryStub) ListLeaveTypes(ctx context.Context, companyId int) ([]LeaveType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []LeaveType
	for _, lt := range r.types {
		if lt.CompanyId == companyId {
			out = append(out, lt)
		}
	}
	return out, nil
}

func (r *RepositoryStub) CreateLeaveType(ctx context.Context, companyId int, name string) (LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lt := LeaveType{Id: r.nextId, CompanyId: companyId, Name: name}
	r.nextId++
	r.types[lt.Id] = lt
	return lt, nil
}

func (r *RepositoryStub) DeleteLeaveType(ctx context.Context, companyId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lt, ok := r.types[id]; ok && lt.CompanyId == companyId {
		delete(r.types, id)
	}
	return nil
}

func (r *RepositoryStub) ListOfficeLocations(ctx context.Context, companyId int) ([]OfficeLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []OfficeLocation
	for _, loc := range r.locations {
		if loc.CompanyId == companyId {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (r *RepositoryStub) CreateOfficeLocation(ctx context.Context, companyId int, loc OfficeLocation) (OfficeLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc.Id = r.nextId
	loc.CompanyId = companyId
	r.nextId++
	r.locations[loc.Id] = loc
	return loc, nil
}

func (r *RepositoryStub) DeleteOfficeLocation(ctx context.Context, companyId int, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loc, ok := r.locations[id]; ok && loc.CompanyId == companyId {
		delete(r.locations, id)
	}
	return nil
}
