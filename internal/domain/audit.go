package domain

import (
	"time"
)

// AuditLog is an append-only record of a mutating action on an entry.
type AuditLog struct {
	ID        string
	EntryID   string
	UserID    string // who performed the action
	Action    AuditAction
	Details   string
	CreatedAt time.Time
}

// AuditAction represents the kinds of auditable entry actions.
type AuditAction string

const (
	AuditActionCreate            AuditAction = "create"
	AuditActionEdit              AuditAction = "edit"
	AuditActionCalculateInterest AuditAction = "calculate_interest"
	AuditActionRelease           AuditAction = "release"
)

var validAuditActions = map[AuditAction]bool{
	AuditActionCreate:            true,
	AuditActionEdit:              true,
	AuditActionCalculateInterest: true,
	AuditActionRelease:           true,
}

// IsValid checks if the action is a known action.
func (a AuditAction) IsValid() bool {
	return validAuditActions[a]
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	EntryID   string
	UserID    string
	Action    AuditAction
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
