package models

import "testing"

func TestEnumValidity(t *testing.T) {
	for _, s := range []UnitStatus{UnitStatusAvailable, UnitStatusInUse, UnitStatusMaintenance, UnitStatusRetired} {
		if !s.Valid() {
			t.Errorf("unit status %q should be valid", s)
		}
	}
	if UnitStatus("broken").Valid() {
		t.Error("unknown unit status should be invalid")
	}
	if !AccessLevelFaculty.Valid() || AccessLevel("guest").Valid() {
		t.Error("access level validity mismatch")
	}
	if !UserStatusSuspended.Valid() || UserStatus("").Valid() {
		t.Error("user status validity mismatch")
	}
	if !ActivityActionSignOut.Valid() || ActivityAction("login").Valid() {
		t.Error("activity action validity mismatch")
	}
}

func TestComputerUser_FullNameAndSignedIn(t *testing.T) {
	u := &ComputerUser{FirstName: "Ada", LastName: "Lovelace"}
	if u.FullName() != "Ada Lovelace" {
		t.Errorf("expected 'Ada Lovelace', got %q", u.FullName())
	}
	if u.SignedIn() {
		t.Error("user without station should not be signed in")
	}
	u.ComputerStation = "PC01"
	if !u.SignedIn() {
		t.Error("user with station should be signed in")
	}
}
