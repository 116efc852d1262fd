package company

import (
	"github.com/herbertjm76/bare-resource-horizon/pkg/allocweek"
)

// Company is the tenant. Every read and write in the system is scoped by a
// company id; WeekStartDay is the company-level configuration that decides
// which weekday begins each allocation week bucket.
type Company struct {
	Id           int
	Uid          string
	Name         string
	WeekStartDay allocweek.WeekStartDay
}

// Reference data configured per company and attached to projects, resources,
// and leave entries.

type Role struct {
	Id        int
	CompanyId int
	Name      string
}

type ProjectStatus struct {
	Id        int
	CompanyId int
	Name      string
}

type LeaveType struct {
	Id        int
	CompanyId int
	Name      string
}

type OfficeLocation struct {
	Id        int
	CompanyId int
	Name      string
	City      string
	Country   string
}
