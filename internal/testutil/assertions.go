package testutil

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	apperrors "comlab/internal/errors"
	"comlab/internal/models"
)

func asAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

// AssertAppError checks that err is an *AppError with the expected code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	appErr := asAppError(t, err, expectedCode)
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertAppErrorMessage also checks the message shown to the student or admin.
func AssertAppErrorMessage(t *testing.T, err error, expectedCode, expectedMessage string) {
	t.Helper()
	appErr := asAppError(t, err, expectedCode)
	if appErr.Code != expectedCode || appErr.Message != expectedMessage {
		t.Errorf("expected %s %q, got %s %q", expectedCode, expectedMessage, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertUnitStatus reloads the unit and checks its status.
func AssertUnitStatus(t *testing.T, db *gorm.DB, unitID string, want models.UnitStatus) {
	t.Helper()
	var unit models.ComputerUnit
	if err := db.Where("unit_id = ?", unitID).First(&unit).Error; err != nil {
		t.Fatalf("failed to load unit %s: %v", unitID, err)
	}
	if unit.Status != want {
		t.Errorf("unit %s: expected status %q, got %q", unitID, want, unit.Status)
	}
}

// AssertStation reloads the user and checks the assigned computer station.
// An empty want means not signed in.
func AssertStation(t *testing.T, db *gorm.DB, studentID, want string) {
	t.Helper()
	var user models.ComputerUser
	if err := db.Where("student_id = ?", studentID).First(&user).Error; err != nil {
		t.Fatalf("failed to load user %s: %v", studentID, err)
	}
	if user.ComputerStation != want {
		t.Errorf("user %s: expected station %q, got %q", studentID, want, user.ComputerStation)
	}
}
