package models

import "time"

// ScheduleView names one of the derived schedule views.
type ScheduleView string

const (
	ViewOverdue   ScheduleView = "overdue"
	ViewThisWeek  ScheduleView = "this-week"
	ViewFuture    ScheduleView = "future"
	ViewAll       ScheduleView = "all"
	ViewCompleted ScheduleView = "completed"
)

// IsValid reports whether the view name is one of the defined views.
func (v ScheduleView) IsValid() bool {
	switch v {
	case ViewOverdue, ViewThisWeek, ViewFuture, ViewAll, ViewCompleted:
		return true
	}
	return false
}

// ScheduleEntry is a single projected safety-check occurrence. Entries are
// derived fresh on every scheduling request and never persisted; equipment
// fields are denormalized at projection time so the entry renders without
// further lookups.
type ScheduleEntry struct {
	EquipmentID          string          `json:"equipmentID"`
	EquipmentName        string          `json:"equipmentName"`
	Manufacturer         string          `json:"manufacturer,omitempty"`
	ScheduledDate        time.Time       `json:"scheduledDate"`
	Frequency            SafetyFrequency `json:"frequency"`
	IsPastDue            bool            `json:"isPastDue"`
	Instructions         []string        `json:"instructions,omitempty"`
	AuthorizedOfficers   []string        `json:"authorizedOfficers,omitempty"`
	SafetyManagerDisplay string          `json:"safetyManagerDisplay,omitempty"`
	TrainingVideo        *TrainingVideo  `json:"trainingVideo,omitempty"`
}

// ViewerRole classifies how much of the equipment catalogue a viewer may
// see. Only the safety-officer role is restricted; every other role sees
// the full catalogue.
type ViewerRole string

const (
	ViewerRoleAdmin         ViewerRole = "admin"
	ViewerRoleOwner         ViewerRole = "owner"
	ViewerRoleEmployee      ViewerRole = "employee"
	ViewerRoleSafetyOfficer ViewerRole = "safety_officer"
)

// Restricted reports whether equipment visibility must be limited to items
// the viewer is an authorized officer for.
func (r ViewerRole) Restricted() bool {
	return r == ViewerRoleSafetyOfficer
}

// ViewerContext identifies who is asking for a schedule. It exists only for
// the duration of one scheduling computation and is built per request from
// the authenticated claims.
type ViewerContext struct {
	ViewerID string     `json:"viewerID"`
	Role     ViewerRole `json:"role"`
}

// ScheduleViewResult is the response payload for a schedule view request.
// Exactly one of Entries or Checks is populated depending on the view.
type ScheduleViewResult struct {
	View    ScheduleView     `json:"view"`
	Entries []ScheduleEntry  `json:"entries,omitempty"`
	Checks  []CompletedCheck `json:"checks,omitempty"`
}
