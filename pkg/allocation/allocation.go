package allocation

import (
	"github.com/herbertjm76/bare-resource-horizon/pkg/resource"
)

// Allocation is the hours assigned to one resource on one project for one
// week bucket. WeekKey is always the canonical week start produced by
// pkg/allocweek under the owning company's configured week start day; the
// same string is the persisted allocation_date, the cache key, and the
// change-feed key, so every view of a week addresses the same record.
type Allocation struct {
	Id           int
	CompanyId    int
	ProjectId    int
	ResourceId   int
	ResourceKind resource.Kind
	WeekKey      string
	Hours        float64
}

// Identity names one (project, resource, kind) allocation series inside a
// company. A row is unique per Identity and WeekKey; saves for an existing
// bucket update the row in place rather than inserting a duplicate.
type Identity struct {
	CompanyId    int
	ProjectId    int
	ResourceId   int
	ResourceKind resource.Kind
}
