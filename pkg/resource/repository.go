package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrResourceNotFound = errors.New("resource not found")

type Repository interface {
	List(ctx context.Context, companyId int) ([]Resource, error)
	Get(ctx context.Context, companyId int, id int) (Resource, error)
	Create(ctx context.Context, res Resource) (Resource, error)
	Update(ctx context.Context, res Resource) (Resource, error)
	Delete(ctx context.Context, companyId int, id int) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

const resourceColumns = `id, company_id, uid, kind, first_name, last_name, email, role_id, office_location_id, weekly_capacity`

func (r *repositoryImpl) List(ctx context.Context, companyId int) ([]Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resource WHERE company_id = $1 ORDER BY last_name, first_name`
	rows, err := r.db.Query(ctx, query, companyId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *repositoryImpl) Get(ctx context.Context, companyId int, id int) (Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resource WHERE company_id = $1 AND id = $2`
	res, err := scanResource(r.db.QueryRow(ctx, query, companyId, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Resource{}, ErrResourceNotFound
		}
		return Resource{}, err
	}
	return res, nil
}

func (r *repositoryImpl) Create(ctx context.Context, res Resource) (Resource, error) {
	query := `INSERT INTO resource (company_id, uid, kind, first_name, last_name, email, role_id, office_location_id, weekly_capacity)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		res.CompanyId, res.Uid, string(res.Kind), res.FirstName, res.LastName, res.Email,
		res.RoleId, res.OfficeLocationId, res.WeeklyCapacity,
	).Scan(&res.Id)
	if err != nil {
		return Resource{}, fmt.Errorf("could not create resource: %w", err)
	}
	return res, nil
}

func (r *repositoryImpl) Update(ctx context.Context, res Resource) (Resource, error) {
	query := `UPDATE resource
			  SET kind = $1, first_name = $2, last_name = $3, email = $4, role_id = $5, office_location_id = $6, weekly_capacity = $7
			  WHERE company_id = $8 AND id = $9`
	result, err := r.db.Exec(ctx, query,
		string(res.Kind), res.FirstName, res.LastName, res.Email, res.RoleId, res.OfficeLocationId,
		res.WeeklyCapacity, res.CompanyId, res.Id,
	)
	if err != nil {
		return Resource{}, fmt.Errorf("could not update resource: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Resource{}, ErrResourceNotFound
	}
	return res, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, companyId int, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM resource WHERE company_id = $1 AND id = $2`, companyId, id)
	return err
}

func scanResource(row pgx.Row) (Resource, error) {
	var res Resource
	var kind string
	err := row.Scan(
		&res.Id,
		&res.CompanyId,
		&res.Uid,
		&kind,
		&res.FirstName,
		&res.LastName,
		&res.Email,
		&res.RoleId,
		&res.OfficeLocationId,
		&res.WeeklyCapacity,
	)
	if err != nil {
		return Resource{}, err
	}
	res.Kind = Kind(kind)
	return res, nil
}
