package resource

import (
	"fmt"
)

// Kind distinguishes onboarded team members from pre-registered placeholders
// that can already be scheduled before their account exists.
type Kind string

const (
	KindActive        Kind = "active"
	KindPreRegistered Kind = "pre_registered"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindActive, KindPreRegistered:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unsupported resource kind: %q", s)
	}
}

// Resource is a schedulable team member, scoped to one company.
type Resource struct {
	Id               int
	CompanyId        int
	Uid              string
	Kind             Kind
	FirstName        string
	LastName         string
	Email            string
	RoleId           int
	OfficeLocationId int
	// WeeklyCapacity is the contracted hours available per week bucket.
	WeeklyCapacity float64
}
