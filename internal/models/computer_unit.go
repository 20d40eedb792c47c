package models

// UnitStatus is the availability state of a lab workstation.
type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "available"
	UnitStatusInUse       UnitStatus = "in-use"
	UnitStatusMaintenance UnitStatus = "maintenance"
	UnitStatusRetired     UnitStatus = "retired"
)

// Valid reports whether s is one of the four unit states.
func (s UnitStatus) Valid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusInUse, UnitStatusMaintenance, UnitStatusRetired:
		return true
	}
	return false
}

// ComputerUnit is a physical lab workstation.
type ComputerUnit struct {
	Base
	UnitID string     `gorm:"size:20;uniqueIndex;not null" json:"unit_id"`
	Status UnitStatus `gorm:"size:20;not null;index" json:"status"`
}
