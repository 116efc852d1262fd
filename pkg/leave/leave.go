package leave

// LeaveEntry is hours of leave or holiday booked for one resource in one
// week bucket, typed by a company-configured leave type. WeekKey follows the
// same canonical form as allocations so leave and project hours line up in
// the same grid columns.
type LeaveEntry struct {
	Id          int
	CompanyId   int
	ResourceId  int
	LeaveTypeId int
	WeekKey     string
	Hours       float64
}
