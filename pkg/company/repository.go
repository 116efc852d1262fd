package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCompanyNotFound = errors.New("company not found")

type Repository interface {
	GetByUid(ctx context.Context, uid string) (Company, error)
	Get(ctx context.Context, id int) (Company, error)
	Create(ctx context.Context, c Company) (Company, error)
	UpdateWeekStartDay(ctx context.Context, id int, weekStartDay string) error

	ListRoles(ctx context.Context, companyId int) ([]Role, error)
	CreateRole(ctx context.Context, companyId int, name string) (Role, error)
	DeleteRole(ctx context.Context, companyId int, id int) error

	ListProjectStatuses(ctx context.Context, companyId int) ([]ProjectStatus, error)
	CreateProjectStatus(ctx context.Context, companyId int, name string) (ProjectStatus, error)
	DeleteProjectStatus(ctx context.Context, companyId int, id int) error

	ListLeaveTypes(ctx context.Context, companyId int) ([]LeaveType, error)
	CreateLeaveType(ctx context.Context, companyId int, name string) (LeaveType, error)
	DeleteLeaveType(ctx context.Context, companyId int, id int) error

	ListOfficeLocations(ctx context.Context, companyId int) ([]OfficeLocation, error)
	CreateOfficeLocation(ctx context.Context, companyId int, loc OfficeLocation) (OfficeLocation, error)
	DeleteOfficeLocation(ctx context.Context, companyId int, id int) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetByUid(ctx context.Context, uid string) (Company, error) {
	query := `SELECT id, uid, name, week_start_day FROM company WHERE uid = $1`
	return r.scanCompany(r.db.QueryRow(ctx, query, uid))
}

func (r *repositoryImpl) Get(ctx context.Context, id int) (Company, error) {
	query := `SELECT id, uid, name, week_start_day FROM company WHERE id = $1`
	return r.scanCompany(r.db.QueryRow(ctx, query, id))
}

func (r *repositoryImpl) scanCompany(row pgx.Row) (Company, error) {
	var c Company
	var weekStartDay string
	if err := row.Scan(&c.Id, &c.Uid, &c.Name, &weekStartDay); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, ErrCompanyNotFound
		}
		return Company{}, err
	}
	ws, err := allocweek.ParseWeekStartDay(weekStartDay)
	if err != nil {
		return Company{}, err
	}
	c.WeekStartDay = ws
	return c, nil
}

func (r *repositoryImpl) Create(ctx context.Context, c Company) (Company, error) {
	query := `INSERT INTO company (uid, name, week_start_day) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRow(ctx, query, c.Uid, c.Name, string(c.WeekStartDay)).Scan(&c.Id); err != nil {
		return Company{}, fmt.Errorf("could not create company: %w", err)
	}
	return c, nil
}

func (r *repositoryImpl) UpdateWeekStartDay(ctx context.Context, id int, weekStartDay string) error {
	query := `UPDATE company SET week_start_day = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, weekStartDay, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *repositoryImpl) ListRoles(ctx context.Context, companyId int) ([]Role, error) {
	query := `SELECT id, company_id, name FROM company_role WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, companyId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.Id, &role.CompanyId, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *repositoryImpl) CreateRole(ctx context.Context, companyId int, name string) (Role, error) {
	query := `INSERT INTO company_role (company_id, name) VALUES ($1, $2) RETURNING id`
	role := Role{CompanyId: companyId, Name: name}
	if err := r.db.QueryRow(ctx, query, companyId, name).Scan(&role.Id); err != nil {
		return Role{}, err
	}
	return role, nil
}

func (r *repositoryImpl) DeleteRole(ctx context.Context, companyId int, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM company_role WHERE company_id = $1 AND id = $2`, companyId, id)
	return err
}

func (r *repositoryImpl) ListProjectStatuses(ctx context.Context, companyId int) ([]ProjectStatus, error) {
	query := `SELECT id, company_id, name FROM project_status WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, companyId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []ProjectStatus
	for rows.Next() {
		var status ProjectStatus
		if err := rows.Scan(&status.Id, &status.CompanyId, &status.Name); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *repositoryImpl) CreateProjectStatus(ctx context.Context, companyId int, name string) (ProjectStatus, error) {
	query := `INSERT INTO project_status (company_id, name) VALUES ($1, $2) RETURNING id`
	status := ProjectStatus{CompanyId: companyId, Name: name}
	if err := r.db.QueryRow(ctx, query, companyId, name).Scan(&status.Id); err != nil {
		return ProjectStatus{}, err
	}
	return status, nil
}

func (r *repositoryImpl) DeleteProjectStatus(ctx context.Context, companyId int, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM project_status WHERE company_id = $1 AND id = $2`, companyId, id)
	return err
}

func (r *repositoryImpl) ListLeaveTypes(ctx context.Context, companyId int) ([]LeaveType, error) {
	query := `SELECT id, company_id, name FROM leave_type WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, companyId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []LeaveType
	for rows.Next() {
		var lt LeaveType
		if err := rows.Scan(&lt.Id, &lt.CompanyId, &lt.Name); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (r *repositoryImpl) CreateLeaveType(ctx context.Context, companyId int, name string) (LeaveType, error) {
	query := `INSERT INTO leave_type (company_id, name) VALUES ($1, $2) RETURNING id`
	lt := LeaveType{CompanyId: companyId, Name: name}
	if err := r.db.QueryRow(ctx, query, companyId, name).Scan(&lt.Id); err != nil {
		return LeaveType{}, err
	}
	return lt, nil
}

func (r *repositoryImpl) DeleteLeaveType(ctx context.Context, companyId int, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM leave_type WHERE company_id = $1 AND id = $2`, companyId, id)
	return err
}

func (r *repositoryImpl) ListOfficeLocations(ctx context.Context, companyId int) ([]OfficeLocation, error) {
	query := `SELECT id, company_id, name, city, country FROM office_location WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, companyId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []OfficeLocation
	for rows.Next() {
		var loc OfficeLocation
		if err := rows.Scan(&loc.Id, &loc.CompanyId, &loc.Name, &loc.City, &loc.Country); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (r *repositoryImpl) CreateOfficeLocation(ctx context.Context, companyId int, loc OfficeLocation) (OfficeLocation, error) {
	query := `INSERT INTO office_location (company_id, name, city, country) VALUES ($1, $2, $3, $4) RETURNING id`
	loc.CompanyId = companyId
	if err := r.db.QueryRow(ctx, query, companyId, loc.Name, loc.City, loc.Country).Scan(&loc.Id); err != nil {
		return OfficeLocation{}, err
	}
	return loc, nil
}

func (r *repositoryImpl) DeleteOfficeLocation(ctx context.Context, companyId int, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM office_location WHERE company_id = $1 AND id = $2`, companyId, id)
	return err
}
