package allocation

import (
	"context"
	"sync"

	"github.com/herbertjm76/bare-resource-horizon/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// TrackerState is the lifecycle of a live allocation cache.
type TrackerState int

const (
	// TrackerUninitialized: subscribed to the change feed but no snapshot
	// loaded yet. Events are buffered.
	TrackerUninitialized TrackerState = iota
	// TrackerLoading: snapshot fetch in flight. Events are buffered.
	TrackerLoading
	// TrackerReady: snapshot applied and buffered events replayed. Events
	// are applied directly.
	TrackerReady
)

// Tracker keeps an in-memory WeekKey to hours map for one identity
// consistent with concurrent writes arriving on the change feed.
//
// The subscription is opened at construction, before the snapshot fetch, and
// events observed while the snapshot is in flight are buffered and replayed
// on top of it. That ordering is what guarantees a write landing in the gap
// between fetch and subscribe is never lost. Events replayed after the
// snapshot overwrite the snapshot's values: the feed reflects later server
// truth, so last write observed wins.
type Tracker struct {
	mu          sync.Mutex
	state       TrackerState
	identity    Identity
	hours       map[string]float64
	pending     []event_bus.AllocationChanged
	unsubscribe func()
}

// NewTracker subscribes to the allocation change feed filtered to identity.
// The tracker is in TrackerUninitialized state until Load is called.
func NewTracker(bus *event_bus.EventBus, identity Identity) *Tracker {
	t := &Tracker{
		state:    TrackerUninitialized,
		identity: identity,
		hours:    make(map[string]float64),
	}
	t.unsubscribe = event_bus.SubscribeTyped[event_bus.AllocationChanged](
		bus,
		event_bus.TopicAllocationChanged,
		func(e event_bus.EventT[event_bus.AllocationChanged]) error {
			t.onChange(e.Data)
			return nil
		},
	)
	return t
}

// Load fetches the snapshot through fetch, applies it, then replays any
// events buffered since the subscription opened. Safe to call once; a failed
// Load leaves the tracker uninitialized and the caller should Close it.
func (t *Tracker) Load(ctx context.Context, fetch func(ctx context.Context) (map[string]float64, error)) error {
	t.mu.Lock()
	t.state = TrackerLoading
	t.mu.Unlock()

	snapshot, err := fetch(ctx)
	if err != nil {
		t.mu.Lock()
		t.state = TrackerUninitialized
		t.mu.Unlock()
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.hours = make(map[string]float64, len(snapshot))
	for key, h := range snapshot {
		t.hours[key] = h
	}
	for _, change := range t.pending {
		t.apply(change)
	}
	t.pending = nil
	t.state = TrackerReady
	return nil
}

func (t *Tracker) onChange(change event_bus.AllocationChanged) {
	if change.ProjectID != t.identity.ProjectId ||
		change.ResourceID != t.identity.ResourceId ||
		change.ResourceKind != string(t.identity.ResourceKind) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case TrackerReady:
		t.apply(change)
	default:
		log.Debugf("buffering allocation change for week %s until snapshot is ready", change.WeekKey)
		t.pending = append(t.pending, change)
	}
}

// apply mutates the map for one confirmed change. Callers hold t.mu.
func (t *Tracker) apply(change event_bus.AllocationChanged) {
	if change.Hours == nil {
		delete(t.hours, change.WeekKey)
		return
	}
	t.hours[change.WeekKey] = *change.Hours
}

// Hours returns the cached hours for one week bucket.
func (t *Tracker) Hours(weekKey string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, ok := t.hours[weekKey]
	return h, ok
}

// Snapshot returns a copy of the cached map.
func (t *Tracker) Snapshot() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]float64, len(t.hours))
	for key, h := range t.hours {
		out[key] = h
	}
	return out
}

func (t *Tracker) State() TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Close tears down the change-feed subscription. The tracker must not be
// used afterwards.
func (t *Tracker) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}
