package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCompany inserts a company row and returns it together with a context
// scoped to that company, the shape most repository tests start from.
func SeedCompany(t *testing.T, db *pgxpool.Pool, weekStartDay allocweek.WeekStartDay) (company.Company, context.Context) {
	t.Helper()

	seeded := company.Company{
		Uid:          uuid.NewString(),
		Name:         "Test Company",
		WeekStartDay: weekStartDay,
	}
	err := db.QueryRow(context.Background(),
		`INSERT INTO company (uid, name, week_start_day) VALUES ($1, $2, $3) RETURNING id`,
		seeded.Uid, seeded.Name, string(seeded.WeekStartDay),
	).Scan(&seeded.Id)
	if err != nil {
		t.Fatalf("Failed to seed company: %v", err)
	}

	return seeded, company.WithCompany(context.Background(), seeded)
}
