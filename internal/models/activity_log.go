package models

import "time"

// ActivityAction is the kind of kiosk event recorded in the activity log.
type ActivityAction string

const (
	ActivityActionSignIn  ActivityAction = "sign-in"
	ActivityActionSignOut ActivityAction = "sign-out"
)

// Valid reports whether a is a known activity action.
func (a ActivityAction) Valid() bool {
	return a == ActivityActionSignIn || a == ActivityActionSignOut
}

// ActivityLog is an append-only record of a kiosk sign-in or sign-out.
//
// StudentID and FullName are copied from the user at the time of the event so
// the entry stays readable after the user is deleted, at which point UserID
// is set to NULL.
type ActivityLog struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          *uint          `gorm:"index" json:"user_id"`
	User            *ComputerUser  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	StudentID       string         `gorm:"size:20;index" json:"student_id"`
	FullName        string         `gorm:"size:200" json:"full_name"`
	Action          ActivityAction `gorm:"size:20;not null;index" json:"action"`
	ComputerStation string         `gorm:"size:50" json:"computer_station"`
	Notes           string         `gorm:"type:text" json:"notes"`
	Timestamp       time.Time      `gorm:"autoCreateTime;index" json:"timestamp"`
}
