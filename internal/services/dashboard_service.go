package services

import (
	"gorm.io/gorm"

	apperrors "comlab/internal/errors"
	"comlab/internal/models"
)

// dashboardService aggregates counts for the admin landing page.
type dashboardService struct {
	db    *gorm.DB
	units ComputerUnitServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, units ComputerUnitServicer) DashboardServicer {
	return &dashboardService{db: db, units: units}
}

// GetStats returns user and unit totals plus the unit IDs in each active state.
func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.ComputerUser{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var err error
	if stats.TotalUnits, err = s.units.CountUnits(""); err != nil {
		return nil, err
	}

	buckets := []struct {
		status models.UnitStatus
		count  *int64
		list   *[]string
	}{
		{models.UnitStatusAvailable, &stats.AvailableUnits, &stats.AvailableList},
		{models.UnitStatusInUse, &stats.OccupiedUnits, &stats.OccupiedList},
		{models.UnitStatusMaintenance, &stats.MaintenanceUnits, &stats.MaintenanceList},
	}
	for _, b := range buckets {
		units, err := s.units.ListUnitsByStatus(b.status)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(units))
		for i, u := range units {
			ids[i] = u.UnitID
		}
		*b.count = int64(len(ids))
		*b.list = ids
	}

	return stats, nil
}
