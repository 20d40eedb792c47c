package services

import (
	"bytes"

	"gorm.io/gorm"

	"comlab/internal/models"
	"comlab/internal/pagination"
	"comlab/internal/patch"
)

// CreateUserInput carries the fields accepted when registering a lab user.
// Empty AccessLevel and Status fall back to student / active.
type CreateUserInput struct {
	StudentID     string             `json:"student_id"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Email         string             `json:"email"`
	ContactNumber string             `json:"contact_number"`
	Course        string             `json:"course"`
	Address       string             `json:"address"`
	AccessLevel   models.AccessLevel `json:"access_level"`
	Status        models.UserStatus  `json:"status"`
}

// UserPatch is a partial update of a lab user. Fields that are not Set are
// left untouched. The student ID is immutable once registered.
type UserPatch struct {
	FirstName       patch.Field[string]             `json:"first_name"`
	LastName        patch.Field[string]             `json:"last_name"`
	Email           patch.Field[string]             `json:"email"`
	ContactNumber   patch.Field[string]             `json:"contact_number"`
	Course          patch.Field[string]             `json:"course"`
	Address         patch.Field[string]             `json:"address"`
	AccessLevel     patch.Field[models.AccessLevel] `json:"access_level"`
	Status          patch.Field[models.UserStatus]  `json:"status"`
	ComputerStation patch.Field[string]             `json:"computer_station"`
}

// UserCounts backs the users page header.
type UserCounts struct {
	Total  int64 `json:"total_users"`
	Active int64 `json:"active_users"`
}

// ComputerUserServicer defines the contract for lab user records.
type ComputerUserServicer interface {
	ListUsers(search string, page pagination.PageRequest) (*pagination.PageResponse[models.ComputerUser], error)
	GetUserByID(id uint) (*models.ComputerUser, error)
	GetUserByStudentID(studentID string) (*models.ComputerUser, error)
	CreateUser(input CreateUserInput) (*models.ComputerUser, error)
	UpdateUser(id uint, p UserPatch) (*models.ComputerUser, error)
	DeleteUser(id uint) (*models.ComputerUser, error)
	UpdateUserStatus(id uint, status models.UserStatus) (*models.ComputerUser, error)
	CountUsers() (*UserCounts, error)
}

// UnitPatch is a partial update of a computer unit.
type UnitPatch struct {
	UnitID patch.Field[string]            `json:"unit_id"`
	Status patch.Field[models.UnitStatus] `json:"status"`
}

// ComputerUnitServicer defines the contract for workstation records.
type ComputerUnitServicer interface {
	ListUnits() ([]models.ComputerUnit, error)
	ListUnitsByStatus(status models.UnitStatus) ([]models.ComputerUnit, error)
	GetUnitByID(id uint) (*models.ComputerUnit, error)
	CreateUnit(unitID string, status models.UnitStatus) (*models.ComputerUnit, error)
	UpdateUnit(id uint, p UnitPatch) (*models.ComputerUnit, error)
	CountUnits(status models.UnitStatus) (int64, error)
}

// LogFilter narrows the activity log. Zero values match everything.
type LogFilter struct {
	Action models.ActivityAction
	Search string
}

// ActivityLogServicer defines the contract for the append-only activity log.
type ActivityLogServicer interface {
	Append(tx *gorm.DB, entry *models.ActivityLog) error
	ListLogs(filter LogFilter, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error)
	CountLogs() (int64, error)
	ExportLogs(filter LogFilter) (*bytes.Buffer, string, error)
}

// KioskOutcome names what a kiosk call did.
type KioskOutcome string

const (
	KioskOutcomeSelectUnit KioskOutcome = "select_unit"
	KioskOutcomeSignedIn   KioskOutcome = "signed_in"
	KioskOutcomeSignedOut  KioskOutcome = "signed_out"
	KioskOutcomeStatus     KioskOutcome = "status"
)

// KioskResult is the outcome of a kiosk step.
type KioskResult struct {
	Outcome     KioskOutcome `json:"outcome"`
	StudentID   string       `json:"student_id"`
	StudentName string       `json:"student_name"`
	SignedIn    bool         `json:"signed_in"`
	SignedOut   bool         `json:"signed_out"`
	UnitID      string       `json:"unit_id,omitempty"`
	Units       []string     `json:"units"`
	Message     string       `json:"message,omitempty"`
}

// KioskServicer defines the public sign-in / sign-out workflow.
type KioskServicer interface {
	// Identify is step one. A signed-in user is signed out; anyone else gets
	// the list of available units.
	Identify(studentID string) (*KioskResult, error)
	// Finalize is step two: claim unitID for the user.
	Finalize(studentID, unitID string) (*KioskResult, error)
	// Status reports the user's assignment without changing anything.
	Status(studentID string) (*KioskResult, error)
	SignOut(studentID string) (*KioskResult, error)
	AvailableUnits() ([]string, error)
}

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	TotalUsers       int64    `json:"total_users"`
	TotalUnits       int64    `json:"total_units"`
	AvailableUnits   int64    `json:"available_units"`
	OccupiedUnits    int64    `json:"occupied_units"`
	MaintenanceUnits int64    `json:"maintenance_units"`
	AvailableList    []string `json:"available_units_list"`
	OccupiedList     []string `json:"occupied_units_list"`
	MaintenanceList  []string `json:"maintenance_units_list"`
}

// DashboardServicer defines the contract for the admin dashboard.
type DashboardServicer interface {
	GetStats() (*DashboardStats, error)
}
