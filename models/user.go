package models

import "time"

// UserRole represents the role of a user. Safety officers are the only
// restricted role: their equipment visibility is limited to items they are
// explicitly authorized for.
type UserRole string

const (
	UserRoleOwner         UserRole = "owner"
	UserRoleAdmin         UserRole = "admin"
	UserRoleEmployee      UserRole = "employee"
	UserRoleContractor    UserRole = "contractor"
	UserRoleSafetyOfficer UserRole = "safety_officer"
)

// ViewerRole maps the account role onto the scheduling engine's visibility
// classification.
func (r UserRole) ViewerRole() ViewerRole {
	if r == UserRoleSafetyOfficer {
		return ViewerRoleSafetyOfficer
	}
	return ViewerRole(r)
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User represents an account in the system
type User struct {
	ID                  string     `json:"id" dynamodbav:"id"`
	Email               string     `json:"email" dynamodbav:"email"`
	Username            string     `json:"username" dynamodbav:"username"`
	PasswordHash        string     `json:"-" dynamodbav:"password_hash"`
	FirstName           string     `json:"first_name" dynamodbav:"first_name"`
	LastName            string     `json:"last_name" dynamodbav:"last_name"`
	Phone               *string    `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Role                UserRole   `json:"role" dynamodbav:"role"`
	Status              UserStatus `json:"status" dynamodbav:"status"`
	OrgID               string     `json:"orgID,omitempty" dynamodbav:"orgID,omitempty"`
	CreatedAt           time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" dynamodbav:"updated_at"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty" dynamodbav:"last_login_at,omitempty"`
	FailedLoginAttempts int        `json:"failed_login_attempts" dynamodbav:"failed_login_attempts"`
	AccountLockedUntil  *time.Time `json:"account_locked_until,omitempty" dynamodbav:"account_locked_until,omitempty"`
}

// DisplayName is the label shown wherever the user appears in a schedule
// entry (safety manager, authorized officers).
func (u *User) DisplayName() string {
	if u.FirstName != "" || u.LastName != "" {
		if u.FirstName == "" {
			return u.LastName
		}
		if u.LastName == "" {
			return u.FirstName
		}
		return u.FirstName + " " + u.LastName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// RegisterUser represents the request structure for user registration
type RegisterUser struct {
	Email     string   `json:"email" binding:"required,email"`
	Username  string   `json:"username" binding:"required"`
	Password  string   `json:"password" binding:"required,min=8"`
	FirstName string   `json:"first_name" binding:"required"`
	LastName  string   `json:"last_name" binding:"required"`
	Phone     string   `json:"phone,omitempty"`
	Role      UserRole `json:"role,omitempty"`
	OrgID     string   `json:"orgID,omitempty"`
}
