package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "comlab/internal/errors"
	"comlab/internal/models"
)

// computerUnitService handles workstation records.
type computerUnitService struct {
	db *gorm.DB
}

// NewComputerUnitService creates a new ComputerUnitServicer.
func NewComputerUnitService(db *gorm.DB) ComputerUnitServicer {
	return &computerUnitService{db: db}
}

// ListUnits returns every unit, newest first.
func (s *computerUnitService) ListUnits() ([]models.ComputerUnit, error) {
	var units []models.ComputerUnit
	if err := s.db.Order("created_at DESC").Order("id DESC").Find(&units).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return units, nil
}

// ListUnitsByStatus returns the units in one status ordered by unit ID.
func (s *computerUnitService) ListUnitsByStatus(status models.UnitStatus) ([]models.ComputerUnit, error) {
	var units []models.ComputerUnit
	if err := s.db.Where("status = ?", status).Order("unit_id ASC").Find(&units).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return units, nil
}

// GetUnitByID retrieves a unit by primary key.
func (s *computerUnitService) GetUnitByID(id uint) (*models.ComputerUnit, error) {
	var unit models.ComputerUnit
	if err := s.db.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnitNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &unit, nil
}

// CreateUnit adds a workstation. An empty status means available.
func (s *computerUnitService) CreateUnit(unitID string, status models.UnitStatus) (*models.ComputerUnit, error) {
	unitID = strings.TrimSpace(unitID)
	if unitID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unit ID is required")
	}
	if status == "" {
		status = models.UnitStatusAvailable
	}
	if !status.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status")
	}

	exists, err := s.unitIDTaken(unitID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateUnitID
	}

	unit := &models.ComputerUnit{UnitID: unitID, Status: status}
	if err := s.db.Create(unit).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateUnitID
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return unit, nil
}

// UpdateUnit applies a partial update. A new unit ID must not belong to any
// other unit.
func (s *computerUnitService) UpdateUnit(id uint, p UnitPatch) (*models.ComputerUnit, error) {
	unit, err := s.GetUnitByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if p.UnitID.Set {
		newID := strings.TrimSpace(p.UnitID.Value)
		if p.UnitID.Null || newID == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unit ID cannot be empty")
		}
		if newID != unit.UnitID {
			taken, err := s.unitIDTaken(newID, unit.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.WithMessage(apperrors.ErrDuplicateUnitID, "Another unit with this Unit ID already exists.")
			}
			updates["unit_id"] = newID
		}
	}
	if p.Status.Set {
		if p.Status.Null || !p.Status.Value.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status")
		}
		updates["status"] = p.Status.Value
	}

	if len(updates) > 0 {
		if err := s.db.Model(unit).Updates(updates).Error; err != nil {
			if isUniqueConstraintError(err) {
				return nil, apperrors.WithMessage(apperrors.ErrDuplicateUnitID, "Another unit with this Unit ID already exists.")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetUnitByID(id)
}

// CountUnits counts units in the given status, or all units when status is empty.
func (s *computerUnitService) CountUnits(status models.UnitStatus) (int64, error) {
	q := s.db.Model(&models.ComputerUnit{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return n, nil
}

func (s *computerUnitService) unitIDTaken(unitID string, excludeID uint) (bool, error) {
	q := s.db.Model(&models.ComputerUnit{}).Where("unit_id = ?", unitID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
