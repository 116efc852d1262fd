package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/herbertjm76/bare-resource-horizon/pkg/resource"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// WeekHours returns the hours per week key for one identity within the
	// inclusive [startKey, endKey] span. Buckets without a row are simply
	// absent from the map; that means unallocated, not an error.
	WeekHours(ctx context.Context, identity Identity, startKey, endKey string) (map[string]float64, error)
	// Upsert inserts the allocation or updates the hours of the existing row
	// for the same identity and week bucket. The conflict target is the
	// uniqueness constraint on the full identity tuple, so two racing saves
	// cannot produce duplicate rows for one bucket.
	Upsert(ctx context.Context, a Allocation) (Allocation, error)
	// Delete removes the row for one identity and week bucket. Deleting an
	// absent row is a no-op.
	Delete(ctx context.Context, identity Identity, weekKey string) error
	// ListForProject returns all allocations of a project within the span,
	// across all resources, for grid views.
	ListForProject(ctx context.Context, companyId, projectId int, startKey, endKey string) ([]Allocation, error)
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WeekHours(ctx context.Context, identity Identity, startKey, endKey string) (map[string]float64, error) {
	start, err := allocweek.ParseDateKey(startKey)
	if err != nil {
		return nil, err
	}
	end, err := allocweek.ParseDateKey(endKey)
	if err != nil {
		return nil, err
	}

	query := `SELECT allocation_date, hours FROM allocation
			  WHERE company_id = $1 AND project_id = $2 AND resource_id = $3 AND resource_kind = $4
			    AND allocation_date >= $5 AND allocation_date <= $6`
	rows, err := r.db.Query(ctx, query,
		identity.CompanyId, identity.ProjectId, identity.ResourceId, string(identity.ResourceKind), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(map[string]float64)
	for rows.Next() {
		var date time.Time
		var h float64
		if err := rows.Scan(&date, &h); err != nil {
			return nil, err
		}
		hours[allocweek.ToDateKey(date)] = h
	}
	return hours, rows.Err()
}

func (r *repositoryImpl) Upsert(ctx context.Context, a Allocation) (Allocation, error) {
	date, err := allocweek.ParseDateKey(a.WeekKey)
	if err != nil {
		return Allocation{}, err
	}
	query := `INSERT INTO allocation (company_id, project_id, resource_id, resource_kind, allocation_date, hours)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (company_id, project_id, resource_id, resource_kind, allocation_date)
			  DO UPDATE SET hours = EXCLUDED.hours
			  RETURNING id`
	err = r.db.QueryRow(ctx, query,
		a.CompanyId, a.ProjectId, a.ResourceId, string(a.ResourceKind), date, a.Hours,
	).Scan(&a.Id)
	if err != nil {
		return Allocation{}, fmt.Errorf("could not upsert allocation: %w", err)
	}
	return a, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, identity Identity, weekKey string) error {
	date, err := allocweek.ParseDateKey(weekKey)
	if err != nil {
		return err
	}
	query := `DELETE FROM allocation
			  WHERE company_id = $1 AND project_id = $2 AND resource_id = $3 AND resource_kind = $4 AND allocation_date = $5`
	_, err = r.db.Exec(ctx, query,
		identity.CompanyId, identity.ProjectId, identity.ResourceId, string(identity.ResourceKind), date)
	return err
}

func (r *repositoryImpl) ListForProject(ctx context.Context, companyId, projectId int, startKey, endKey string) ([]Allocation, error) {
	start, err := allocweek.ParseDateKey(startKey)
	if err != nil {
		return nil, err
	}
	end, err := allocweek.ParseDateKey(endKey)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, company_id, project_id, resource_id, resource_kind, allocation_date, hours
			  FROM allocation
			  WHERE company_id = $1 AND project_id = $2 AND allocation_date >= $3 AND allocation_date <= $4
			  ORDER BY allocation_date, resource_id`
	rows, err := r.db.Query(ctx, query, companyId, projectId, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []Allocation
	for rows.Next() {
		var a Allocation
		var kind string
		var date time.Time
		if err := rows.Scan(&a.Id, &a.CompanyId, &a.ProjectId, &a.ResourceId, &kind, &date, &a.Hours); err != nil {
			return nil, err
		}
		a.ResourceKind = resource.Kind(kind)
		a.WeekKey = allocweek.ToDateKey(date)
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}
