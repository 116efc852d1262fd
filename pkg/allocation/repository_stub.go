package allocation

import (
	"context"
	"sync"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
)

type allocationKey struct {
	identity Identity
	weekKey  string
}

type RepositoryStub struct {
	mu     sync.RWMutex
	rows   map[allocationKey]Allocation
	nextId int
	// FailNext makes the next mutating call return this error, for
	// exercising the access layer's failure path.
	FailNext error
}

func NewRepositoryStub() *RepositoryStub {
	r := &RepositoryStub{}
	r.Reset()
	return r
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[allocationKey]Allocation)
	r.nextId = 1
	r.FailNext = nil
}

func (r *RepositoryStub) takeFailure() error {
	err := r.FailNext
	r.FailNext = nil
	return err
}

func (r *RepositoryStub) WeekHours(ctx context.Context, identity Identity, startKey, endKey string) (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hours := make(map[string]float64)
	for key, row := range r.rows {
		if key.identity == identity && allocweek.WeekKeyInRange(key.weekKey, startKey, endKey) {
			hours[key.weekKey] = row.Hours
		}
	}
	return hours, nil
}

func (r *RepositoryStub) Upsert(ctx context.Context, a Allocation) (Allocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return Allocation{}, err
	}
	key := allocationKey{
		identity: Identity{
			CompanyId:    a.CompanyId,
			ProjectId:    a.ProjectId,
			ResourceId:   a.ResourceId,
			ResourceKind: a.ResourceKind,
		},
		weekKey: a.WeekKey,
	}
	if existing, ok := r.rows[key]; ok {
		existing.Hours = a.Hours
		r.rows[key] = existing
		return existing, nil
	}
	a.Id = r.nextId
	r.nextId++
	r.rows[key] = a
	return a, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, identity Identity, weekKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	delete(r.rows, allocationKey{identity: identity, weekKey: weekKey})
	return nil
}

func (r *RepositoryStub) ListForProject(ctx context.Context, companyId, projectId int, startKey, endKey string) ([]Allocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Allocation
	for key, row := range r.rows {
		if key.identity.CompanyId == companyId && key.identity.ProjectId == projectId &&
			allocweek.WeekKeyInRange(key.weekKey, startKey, endKey) {
			out = append(out, row)
		}
	}
	return out, nil
}

// RowCount reports the number of stored rows, for duplicate checks in tests.
func (r *RepositoryStub) RowCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
