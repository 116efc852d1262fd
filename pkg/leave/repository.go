package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListForResource(ctx context.Context, companyId, resourceId int, startKey, endKey string) ([]LeaveEntry, error)
	Upsert(ctx context.Context, entry LeaveEntry) (LeaveEntry, error)
	Delete(ctx context.Context, companyId, resourceId, leaveTypeId int, weekKey string) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListForResource(ctx context.Context, companyId, resourceId int, startKey, endKey string) ([]LeaveEntry, error) {
	start, err := allocweek.ParseDateKey(startKey)
	if err != nil {
		return nil, err
	}
	end, err := allocweek.ParseDateKey(endKey)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, company_id, resource_id, leave_type_id, week_date, hours
			  FROM leave_entry
			  WHERE company_id = $1 AND resource_id = $2 AND week_date >= $3 AND week_date <= $4
			  ORDER BY week_date`
	rows, err := r.db.Query(ctx, query, companyId, resourceId, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaveEntry
	for rows.Next() {
		var entry LeaveEntry
		var date time.Time
		if err := rows.Scan(&entry.Id, &entry.CompanyId, &entry.ResourceId, &entry.LeaveTypeId, &date, &entry.Hours); err != nil {
			return nil, err
		}
		entry.WeekKey = allocweek.ToDateKey(date)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *repositoryImpl) Upsert(ctx context.Context, entry LeaveEntry) (LeaveEntry, error) {
	date, err := allocweek.ParseDateKey(entry.WeekKey)
	if err != nil {
		return LeaveEntry{}, err
	}
	query := `INSERT INTO leave_entry (company_id, resource_id, leave_type_id, week_date, hours)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (company_id, resource_id, leave_type_id, week_date)
			  DO UPDATE SET hours = EXCLUDED.hours
			  RETURNING id`
	err = r.db.QueryRow(ctx, query, entry.CompanyId, entry.ResourceId, entry.LeaveTypeId, date, entry.Hours).Scan(&entry.Id)
	if err != nil {
		return LeaveEntry{}, fmt.Errorf("could not upsert leave entry: %w", err)
	}
	return entry, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, companyId, resourceId, leaveTypeId int, weekKey string) error {
	date, err := allocweek.ParseDateKey(weekKey)
	if err != nil {
		return err
	}
	query := `DELETE FROM leave_entry WHERE company_id = $1 AND resource_id = $2 AND leave_type_id = $3 AND week_date = $4`
	_, err = r.db.Exec(ctx, query, companyId, resourceId, leaveTypeId, date)
	return err
}
