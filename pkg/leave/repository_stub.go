package leave

import (
	"context"
	"sync"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
)

type leaveKey struct {
	companyId   int
	resourceId  int
	leaveTypeId int
	weekKey     string
}

type RepositoryStub struct {
	mu     sync.RWMutex
	rows   map[leaveKey]LeaveEntry
	nextId int
	// FailNext makes the next mutating call return this error.
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
	r.rows = make(map[leaveKey]LeaveEntry)
	r.nextId = 1
	r.FailNext = nil
}

func (r *RepositoryStub) takeFailure() error {
	err := r.FailNext
	r.FailNext = nil
	return err
}

func (r *RepositoryStub) ListForResource(ctx context.Context, companyId, resourceId int, startKey, endKey string) ([]LeaveEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []LeaveEntry
	for key, row := range r.rows {
		if key.companyId == companyId && key.resourceId == resourceId &&
			allocweek.WeekKeyInRange(key.weekKey, startKey, endKey) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *RepositoryStub) Upsert(ctx context.Context, entry LeaveEntry) (LeaveEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return LeaveEntry{}, err
	}
	key := leaveKey{
		companyId:   entry.CompanyId,
		resourceId:  entry.ResourceId,
		leaveTypeId: entry.LeaveTypeId,
		weekKey:     entry.WeekKey,
	}
	if existing, ok := r.rows[key]; ok {
		existing.Hours = entry.Hours
		r.rows[key] = existing
		return existing, nil
	}
	entry.Id = r.nextId
	r.nextId++
	r.rows[key] = entry
	return entry, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, companyId, resourceId, leaveTypeId int, weekKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	delete(r.rows, leaveKey{companyId: companyId, resourceId: resourceId, leaveTypeId: leaveTypeId, weekKey: weekKey})
	return nil
}

// RowCount reports the number of stored rows, for duplicate checks in tests.
func (r *RepositoryStub) RowCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
