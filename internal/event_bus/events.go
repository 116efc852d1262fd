package event_bus

// Topics published on the application bus. The bus is the in-process change
// feed: repositories publish after every confirmed write, and any number of
// live trackers consume the stream to keep their caches consistent.
const (
	TopicAllocationChanged EventType = "allocation.changed"
	TopicLeaveChanged      EventType = "leave.changed"
)

// AllocationChanged describes a confirmed write to one resource-week
// allocation. Hours is nil when the row was deleted.
type AllocationChanged struct {
	CompanyID    int
	ProjectID    int
	ResourceID   int
	ResourceKind string
	WeekKey      string
	Hours        *float64
}

// LeaveChanged describes a confirmed write to one resource-week leave entry.
// Hours is nil when the entry was deleted.
type LeaveChanged struct {
	CompanyID   int
	ResourceID  int
	LeaveTypeID int
	WeekKey     string
	Hours       *float64
}
