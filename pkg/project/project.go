package project

// Project is a billable or internal engagement that resources are allocated
// to, scoped to one company.
type Project struct {
	Id               int
	CompanyId        int
	Uid              string
	Code             string
	Name             string
	StatusId         int
	OfficeLocationId int
}
