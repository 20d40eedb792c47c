package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "comlab/internal/errors"
	"comlab/internal/logger"
	"comlab/internal/metrics"
	"comlab/internal/models"
)

// loginNoteLayout renders times like "March 04, 2025 at 09:15 AM".
const loginNoteLayout = "January 02, 2006 at 03:04 PM"

const signOutNote = "Signed out via kiosk form"

// KioskOption configures a kiosk service.
type KioskOption func(*kioskService)

// WithClock overrides the time source used for last-login stamps.
func WithClock(now func() time.Time) KioskOption {
	return func(s *kioskService) { s.now = now }
}

// WithRecorder reports completed and rejected kiosk calls.
func WithRecorder(r metrics.KioskRecorder) KioskOption {
	return func(s *kioskService) { s.recorder = r }
}

// kioskService runs the public sign-in / sign-out workflow.
type kioskService struct {
	db       *gorm.DB
	logs     ActivityLogServicer
	now      func() time.Time
	recorder metrics.KioskRecorder
}

// NewKioskService creates a new KioskServicer.
func NewKioskService(db *gorm.DB, logs ActivityLogServicer, opts ...KioskOption) KioskServicer {
	s := &kioskService{db: db, logs: logs, now: time.Now, recorder: metrics.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Identify signs the user out if they hold a unit, otherwise lists the
// units they can pick.
func (s *kioskService) Identify(studentID string) (*KioskResult, error) {
	user, err := s.findStudent(studentID)
	if err != nil {
		return nil, err
	}

	if user.SignedIn() {
		return s.signOut(user)
	}

	units, err := s.AvailableUnits()
	if err != nil {
		return nil, err
	}
	return &KioskResult{
		Outcome:     KioskOutcomeSelectUnit,
		StudentID:   user.StudentID,
		StudentName: user.FullName(),
		Units:       units,
		Message:     "Please select a PC to proceed.",
	}, nil
}

// Finalize claims unitID for the user. The claim is a conditional update
// so two kiosks racing for the same unit cannot both win.
func (s *kioskService) Finalize(studentID, unitID string) (*KioskResult, error) {
	user, err := s.findStudent(studentID)
	if err != nil {
		return nil, err
	}

	unitID = strings.TrimSpace(unitID)
	if unitID == "" {
		s.recorder.RecordRejected(metrics.ReasonInvalid)
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please select a PC.")
	}

	// The held unit stays in-use; only an admin edit can release it.
	if user.ComputerStation != "" && user.ComputerStation != unitID {
		logger.Get().Warnw("kiosk sign-in while already holding a unit",
			"student_id", user.StudentID, "held_unit_id", user.ComputerStation, "unit_id", unitID)
	}

	now := s.now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ComputerUnit{}).
			Where("unit_id = ? AND status = ?", unitID, models.UnitStatusAvailable).
			Update("status", models.UnitStatusInUse)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrUnitUnavailable
		}

		if err := tx.Model(&models.ComputerUser{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"computer_station": unitID,
			"last_login":       now,
		}).Error; err != nil {
			return err
		}

		return s.logs.Append(tx, &models.ActivityLog{
			UserID:          &user.ID,
			StudentID:       user.StudentID,
			FullName:        user.FullName(),
			Action:          models.ActivityActionSignIn,
			ComputerStation: unitID,
			Notes:           "Signed in via kiosk form - Last login updated to " + now.Format(loginNoteLayout),
		})
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrUnitUnavailable) {
			s.recorder.RecordRejected(metrics.ReasonUnavailable)
			logger.Get().Infow("kiosk unit unavailable", "student_id", user.StudentID, "unit_id", unitID)
		}
		return nil, asAppError(err)
	}

	s.recorder.RecordSignIn(unitID)
	logger.Get().Infow("kiosk sign-in", "student_id", user.StudentID, "unit_id", unitID)

	return &KioskResult{
		Outcome:     KioskOutcomeSignedIn,
		StudentID:   user.StudentID,
		StudentName: user.FullName(),
		SignedIn:    true,
		UnitID:      unitID,
		Message:     "Signed in successfully. Proceed to PC " + unitID + ".",
	}, nil
}

// Status reports whether the user holds a unit. It never writes.
func (s *kioskService) Status(studentID string) (*KioskResult, error) {
	user, err := s.findStudent(studentID)
	if err != nil {
		return nil, err
	}

	units, err := s.AvailableUnits()
	if err != nil {
		return nil, err
	}
	return &KioskResult{
		Outcome:     KioskOutcomeStatus,
		StudentID:   user.StudentID,
		StudentName: user.FullName(),
		SignedIn:    user.SignedIn(),
		UnitID:      user.ComputerStation,
		Units:       units,
	}, nil
}

// SignOut releases the user's unit.
func (s *kioskService) SignOut(studentID string) (*KioskResult, error) {
	user, err := s.findStudent(studentID)
	if err != nil {
		return nil, err
	}
	if !user.SignedIn() {
		s.recorder.RecordRejected(metrics.ReasonNotSignedIn)
		return nil, apperrors.ErrNotSignedIn
	}
	return s.signOut(user)
}

// AvailableUnits lists the IDs of available units in ascending order.
func (s *kioskService) AvailableUnits() ([]string, error) {
	units := []string{}
	if err := s.db.Model(&models.ComputerUnit{}).
		Where("status = ?", models.UnitStatusAvailable).
		Order("unit_id ASC").
		Pluck("unit_id", &units).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return units, nil
}

func (s *kioskService) signOut(user *models.ComputerUser) (*KioskResult, error) {
	previous := user.ComputerStation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Only clear the station we read; a concurrent sign-out already logged it.
		res := tx.Model(&models.ComputerUser{}).
			Where("id = ? AND computer_station = ?", user.ID, previous).
			Update("computer_station", "")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotSignedIn
		}

		// The station may name a unit that was renamed or never existed.
		if err := tx.Model(&models.ComputerUnit{}).
			Where("unit_id = ?", previous).
			Update("status", models.UnitStatusAvailable).Error; err != nil {
			return err
		}

		return s.logs.Append(tx, &models.ActivityLog{
			UserID:          &user.ID,
			StudentID:       user.StudentID,
			FullName:        user.FullName(),
			Action:          models.ActivityActionSignOut,
			ComputerStation: previous,
			Notes:           signOutNote,
		})
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrNotSignedIn) {
			s.recorder.RecordRejected(metrics.ReasonNotSignedIn)
		}
		return nil, asAppError(err)
	}

	s.recorder.RecordSignOut(previous)
	logger.Get().Infow("kiosk sign-out", "student_id", user.StudentID, "unit_id", previous)

	return &KioskResult{
		Outcome:     KioskOutcomeSignedOut,
		StudentID:   user.StudentID,
		StudentName: user.FullName(),
		SignedOut:   true,
		UnitID:      previous,
		Message:     "Signed out successfully. PC " + previous + " is now available.",
	}, nil
}

func (s *kioskService) findStudent(studentID string) (*models.ComputerUser, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		s.recorder.RecordRejected(metrics.ReasonInvalid)
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Student ID is required.")
	}

	var user models.ComputerUser
	if err := s.db.Where("student_id = ?", studentID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recorder.RecordRejected(metrics.ReasonNotFound)
			return nil, apperrors.ErrStudentNotRegistered
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// asAppError passes *AppError through and wraps anything else as internal.
func asAppError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
