package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus represents where a project sits in its lifecycle.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

// Project is a construction contract against which cash, invoices and
// journal entries are attributed. Code is the natural key ("P-001").
type Project struct {
	ID            int64
	Code          string
	Name          string
	ClientName    string
	Location      string
	ContractValue decimal.Decimal
	StartDate     time.Time
	Status        ProjectStatus
	Type          string // building, road, infrastructure, other
}
