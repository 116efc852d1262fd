package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProjectNotFound = errors.New("project not found")

type Repository interface {
	List(ctx context.Context, companyId int) ([]Project, error)
	Get(ctx context.Context, companyId int, id int) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	Delete(ctx context.Context, companyId int, id int) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context, companyId int) ([]Project, error) {
	query := `SELECT id, company_id, uid, code, name, status_id, office_location_id FROM project WHERE company_id = $1 ORDER BY code`
	rows, err := r.db.Query(ctx, query, companyId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Id, &p.CompanyId, &p.Uid, &p.Code, &p.Name, &p.StatusId, &p.OfficeLocationId); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *repositoryImpl) Get(ctx context.Context, companyId int, id int) (Project, error) {
	query := `SELECT id, company_id, uid, code, name, status_id, office_location_id FROM project WHERE company_id = $1 AND id = $2`
	var p Project
	err := r.db.QueryRow(ctx, query, companyId, id).Scan(&p.Id, &p.CompanyId, &p.Uid, &p.Code, &p.Name, &p.StatusId, &p.OfficeLocationId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrProjectNotFound
		}
		return Project{}, err
	}
	return p, nil
}

func (r *repositoryImpl) Create(ctx context.Context, p Project) (Project, error) {
	query := `INSERT INTO project (company_id, uid, code, name, status_id, office_location_id) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRow(ctx, query, p.CompanyId, p.Uid, p.Code, p.Name, p.StatusId, p.OfficeLocationId).Scan(&p.Id); err != nil {
		return Project{}, fmt.Errorf("could not create project: %w", err)
	}
	return p, nil
}

func (r *repositoryImpl) Update(ctx context.Context, p Project) (Project, error) {
	query := `UPDATE project SET code = $1, name = $2, status_id = $3, office_location_id = $4 WHERE company_id = $5 AND id = $6`
	result, err := r.db.Exec(ctx, query, p.Code, p.Name, p.StatusId, p.OfficeLocationId, p.CompanyId, p.Id)
	if err != nil {
		return Project{}, fmt.Errorf("could not update project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, companyId int, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM project WHERE company_id = $1 AND id = $2`, companyId, id)
	return err
}
