package models

import "time"

// AccessLevel is the role a registered lab user holds.
type AccessLevel string

const (
	AccessLevelStudent AccessLevel = "student"
	AccessLevelFaculty AccessLevel = "faculty"
	AccessLevelAdmin   AccessLevel = "admin"
)

// Valid reports whether a is one of the known access levels.
func (a AccessLevel) Valid() bool {
	switch a {
	case AccessLevelStudent, AccessLevelFaculty, AccessLevelAdmin:
		return true
	}
	return false
}

// UserStatus is the account state of a registered lab user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// Valid reports whether s is one of the known user statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

// ComputerUser is a person registered to use the lab.
//
// ComputerStation holds the unit_id of the workstation the user is signed in
// to, or "" when not signed in. It is matched by string, not a foreign key.
type ComputerUser struct {
	Base
	StudentID       string      `gorm:"size:20;uniqueIndex;not null" json:"student_id"`
	FirstName       string      `gorm:"size:100;not null" json:"first_name"`
	LastName        string      `gorm:"size:100;not null" json:"last_name"`
	Email           *string     `gorm:"size:254" json:"email"`
	ContactNumber   string      `gorm:"size:20;not null" json:"contact_number"`
	Course          string      `gorm:"size:100;not null" json:"course"`
	Address         string      `gorm:"type:text;not null" json:"address"`
	AccessLevel     AccessLevel `gorm:"size:20;not null;index" json:"access_level"`
	Status          UserStatus  `gorm:"size:20;not null;index" json:"status"`
	ComputerStation string      `gorm:"size:50;not null" json:"computer_station"`
	LastLogin       *time.Time  `json:"last_login"`
}

// FullName returns the display name used on the kiosk and in the activity log.
func (u *ComputerUser) FullName() string {
	return u.FirstName + " " + u.LastName
}

// SignedIn reports whether the user currently holds a workstation.
func (u *ComputerUser) SignedIn() bool {
	return u.ComputerStation != ""
}
