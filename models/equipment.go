package models

import "time"

// SafetyFrequency is the recurrence category governing how often an
// equipment item requires a safety check.
type SafetyFrequency string

const (
	FrequencyDaily      SafetyFrequency = "daily"
	FrequencyWeekly     SafetyFrequency = "weekly"
	FrequencyMonthly    SafetyFrequency = "monthly"
	FrequencyQuarterly  SafetyFrequency = "quarterly"
	FrequencyBiannually SafetyFrequency = "biannually"
	FrequencyAnnually   SafetyFrequency = "annually"
)

// KnownFrequencies lists every recognized frequency code.
var KnownFrequencies = []SafetyFrequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyBiannually,
	FrequencyAnnually,
}

// IsKnown reports whether the frequency is one of the enumerated codes.
func (f SafetyFrequency) IsKnown() bool {
	for _, k := range KnownFrequencies {
		if f == k {
			return true
		}
	}
	return false
}

// TrainingVideo references an externally hosted training recording.
type TrainingVideo struct {
	URL  string `json:"url" dynamodbav:"url"`
	Name string `json:"name" dynamodbav:"name"`
}

// Equipment represents a physical asset requiring periodic safety verification.
//
// AuthorizedOfficers is deliberately untyped: the upstream storage layer has
// persisted this field as a native string list, a JSON-encoded string and a
// comma-separated string across records. It is normalized once at the
// authorization-filter boundary (scheduler.NormalizeOfficers) and never read
// directly anywhere else.
type Equipment struct {
	EquipmentID        string          `json:"equipmentID" dynamodbav:"equipmentID" validate:"omitempty,uuid4"`
	OrgID              string          `json:"orgID" dynamodbav:"orgID" validate:"required"`
	Name               string          `json:"name" dynamodbav:"name" validate:"required,min=2,max=200"`
	Manufacturer       string          `json:"manufacturer,omitempty" dynamodbav:"manufacturer,omitempty"`
	Model              string          `json:"model,omitempty" dynamodbav:"model,omitempty"`
	SafetyFrequency    SafetyFrequency `json:"safetyFrequency,omitempty" dynamodbav:"safetyFrequency,omitempty"`
	SafetyInstructions []string        `json:"safetyInstructions" dynamodbav:"safetyInstructions"`
	AuthorizedOfficers interface{}     `json:"authorizedOfficers,omitempty" dynamodbav:"authorizedOfficers,omitempty"`
	SafetyManagerID    string          `json:"safetyManagerID,omitempty" dynamodbav:"safetyManagerID,omitempty"`
	TrainingVideo      *TrainingVideo  `json:"trainingVideo,omitempty" dynamodbav:"trainingVideo,omitempty"`
	LastSafetyCheck    *time.Time      `json:"lastSafetyCheck,omitempty" dynamodbav:"lastSafetyCheck,omitempty"`
	CreatedAt          time.Time       `json:"createdAt" dynamodbav:"createdAt"`
	CreatedBy          string          `json:"createdBy,omitempty" dynamodbav:"createdBy,omitempty"`
	UpdatedAt          time.Time       `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
	UpdatedBy          string          `json:"updatedBy,omitempty" dynamodbav:"updatedBy,omitempty"`
}

// HasSchedule reports whether the equipment participates in safety
// scheduling at all. Equipment without a frequency never appears in any
// schedule view.
func (e *Equipment) HasSchedule() bool {
	return e.SafetyFrequency != ""
}

type CreateEquipmentRequest struct {
	OrgID              string          `json:"orgID" validate:"required"`
	Name               string          `json:"name" validate:"required,min=2,max=200"`
	Manufacturer       string          `json:"manufacturer,omitempty"`
	Model              string          `json:"model,omitempty"`
	SafetyFrequency    SafetyFrequency `json:"safetyFrequency,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly biannually annually"`
	SafetyInstructions []string        `json:"safetyInstructions,omitempty"`
	AuthorizedOfficers []string        `json:"authorizedOfficers,omitempty"`
	SafetyManagerID    string          `json:"safetyManagerID,omitempty"`
	TrainingVideo      *TrainingVideo  `json:"trainingVideo,omitempty"`
}

type UpdateEquipmentRequest struct {
	Name               string          `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Manufacturer       string          `json:"manufacturer,omitempty"`
	Model              string          `json:"model,omitempty"`
	SafetyFrequency    SafetyFrequency `json:"safetyFrequency,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly biannually annually"`
	SafetyInstructions []string        `json:"safetyInstructions,omitempty"`
	AuthorizedOfficers []string        `json:"authorizedOfficers,omitempty"`
	SafetyManagerID    string          `json:"safetyManagerID,omitempty"`
	TrainingVideo      *TrainingVideo  `json:"trainingVideo,omitempty"`
}

type EquipmentFilter struct {
	OrgID           string          `json:"orgID,omitempty"`
	SafetyFrequency SafetyFrequency `json:"safetyFrequency,omitempty"`
	Manufacturer    string          `json:"manufacturer,omitempty"`
	CreatedBy       string          `json:"createdBy,omitempty"`
}
