package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is a trail entry recorded for every balance mutation, so a
// discrepancy found by reconciliation can be traced back to the write that
// introduced it.
type AuditLog struct {
	ID           string
	Action       string // transaction.create, transaction.update, transaction.delete, backup.import
	MethodID     string // payment method the delta was applied to
	IsCard       bool
	Delta        string // signed decimal string
	BeforeState  JSON   // balance before the adjustment
	AfterState   JSON   // balance after the adjustment
	Status       string // success, failure
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// Audit actions
const (
	AuditActionTransactionCreate = "transaction.create"
	AuditActionTransactionUpdate = "transaction.update"
	AuditActionTransactionDelete = "transaction.delete"
	AuditActionBackupImport      = "backup.import"
)

// Audit statuses
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

// MarshalState converts a domain object to JSON for audit logging.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs.
type AuditFilter struct {
	Action    string
	MethodID  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
