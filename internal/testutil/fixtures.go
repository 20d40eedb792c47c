package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"comlab/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active student with a unique student ID.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.ComputerUser {
	t.Helper()
	return CreateTestUserWithStudentID(t, db, fmt.Sprintf("S%05d", nextID()))
}

// CreateTestUserWithStudentID creates an active student with the given student ID.
func CreateTestUserWithStudentID(t *testing.T, db *gorm.DB, studentID string) *models.ComputerUser {
	t.Helper()

	user := &models.ComputerUser{
		StudentID:     studentID,
		FirstName:     "Test",
		LastName:      fmt.Sprintf("User%d", nextID()),
		ContactNumber: "09171234567",
		Course:        "BSCS",
		Address:       "123 Campus Road",
		AccessLevel:   models.AccessLevelStudent,
		Status:        models.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestUnit creates a computer unit with the given ID and status.
func CreateTestUnit(t *testing.T, db *gorm.DB, unitID string, status models.UnitStatus) *models.ComputerUnit {
	t.Helper()

	unit := &models.ComputerUnit{UnitID: unitID, Status: status}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("failed to create test unit: %v", err)
	}
	return unit
}

// CreateTestLog appends an activity log entry for user.
func CreateTestLog(t *testing.T, db *gorm.DB, user *models.ComputerUser, action models.ActivityAction, station string) *models.ActivityLog {
	t.Helper()

	entry := &models.ActivityLog{
		UserID:          &user.ID,
		StudentID:       user.StudentID,
		FullName:        user.FullName(),
		Action:          action,
		ComputerStation: station,
		Notes:           fmt.Sprintf("fixture %d", nextID()),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	return entry
}

// ReloadUser re-reads a user so tests observe committed state.
func ReloadUser(t *testing.T, db *gorm.DB, id uint) *models.ComputerUser {
	t.Helper()

	var user models.ComputerUser
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("failed to reload user %d: %v", id, err)
	}
	return &user
}

// ReloadUnit re-reads a unit so tests observe committed state.
func ReloadUnit(t *testing.T, db *gorm.DB, id uint) *models.ComputerUnit {
	t.Helper()

	var unit models.ComputerUnit
	if err := db.First(&unit, id).Error; err != nil {
		t.Fatalf("failed to reload unit %d: %v", id, err)
	}
	return &unit
}

// CountRows returns the number of rows in model's table.
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
