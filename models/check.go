package models

import "time"

// CheckStatus is the recorded outcome of a performed safety check. The
// field is free-form in storage; these are the values the submission flow
// commonly writes.
type CheckStatus string

const (
	CheckStatusPerformed CheckStatus = "performed"
	CheckStatusCompleted CheckStatus = "completed"
	CheckStatusPassed    CheckStatus = "passed"
	CheckStatusFailed    CheckStatus = "failed"
)

// CheckItem captures whether a single safety instruction was verified
// during a check.
type CheckItem struct {
	Label   string `json:"label" dynamodbav:"label"`
	Checked bool   `json:"checked" dynamodbav:"checked"`
}

// CompletedCheck is a persisted record of a performed safety check. It is
// read-only to the scheduling engine: the completed view is built from these
// records independently of the projected schedule.
type CompletedCheck struct {
	CheckID       string      `json:"checkID" dynamodbav:"checkID" validate:"omitempty,uuid4"`
	EquipmentID   string      `json:"equipmentID" dynamodbav:"equipmentID" validate:"required"`
	OrgID         string      `json:"orgID,omitempty" dynamodbav:"orgID,omitempty"`
	PerformedBy   string      `json:"performedBy" dynamodbav:"performedBy"`
	PerformedDate *time.Time  `json:"performedDate,omitempty" dynamodbav:"performedDate,omitempty"`
	Status        CheckStatus `json:"status" dynamodbav:"status"`
	Issues        string      `json:"issues,omitempty" dynamodbav:"issues,omitempty"`
	Notes         string      `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
	CheckData     []CheckItem `json:"checkData" dynamodbav:"checkData"`
	CreatedAt     time.Time   `json:"createdAt" dynamodbav:"createdAt"`
}

// SortDate is the timestamp the completed view orders by: the performed
// time when present, otherwise the record creation time.
func (c *CompletedCheck) SortDate() time.Time {
	if c.PerformedDate != nil && !c.PerformedDate.IsZero() {
		return *c.PerformedDate
	}
	return c.CreatedAt
}

type SubmitCheckRequest struct {
	EquipmentID   string      `json:"equipmentID" validate:"required"`
	PerformedDate *time.Time  `json:"performedDate,omitempty"`
	Status        CheckStatus `json:"status" validate:"required"`
	Issues        string      `json:"issues,omitempty" validate:"omitempty,max=2000"`
	Notes         string      `json:"notes,omitempty" validate:"omitempty,max=2000"`
	CheckData     []CheckItem `json:"checkData,omitempty"`
}

type CheckFilter struct {
	EquipmentID string      `json:"equipmentID,omitempty"`
	OrgID       string      `json:"orgID,omitempty"`
	PerformedBy string      `json:"performedBy,omitempty"`
	Status      CheckStatus `json:"status,omitempty"`
	FromDate    time.Time   `json:"fromDate,omitempty"`
	ToDate      time.Time   `json:"toDate,omitempty"`
}
