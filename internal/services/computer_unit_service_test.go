package services

import (
	"testing"

	"comlab/internal/models"
	"comlab/internal/patch"
	"comlab/internal/testutil"
)

func TestCreateUnit(t *testing.T) {
	t.Run("defaults_to_available", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComputerUnitService(db)

		unit, err := svc.CreateUnit(" PC01 ", "")
		testutil.AssertNoError(t, err)
		if unit.UnitID != "PC01" {
			t.Errorf("expected trimmed unit id PC01, got %q", unit.UnitID)
		}
		if unit.Status != models.UnitStatusAvailable {
			t.Errorf("expected available, got %s", unit.Status)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComputerUnitService(db)
		testutil.CreateTestUnit(t, db, "PC01", models.UnitStatusAvailable)

		_, err := svc.CreateUnit("PC01", models.UnitStatusMaintenance)
		testutil.AssertAppError(t, err, "DUPLICATE_UNIT_ID")
	})

	t.Run("validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComputerUnitService(db)

		_, err := svc.CreateUnit("", models.UnitStatusAvailable)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUnit("PC02", "broken")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListUnits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewComputerUnitService(db)

	testutil.CreateTestUnit(t, db, "PC03", models.UnitStatusAvailable)
	testutil.CreateTestUnit(t, db, "PC01", models.UnitStatusAvailable)
	testutil.CreateTestUnit(t, db, "PC02", models.UnitStatusRetired)

	all, err := svc.ListUnits()
	testutil.AssertNoError(t, err)
	if len(all) != 3 || all[0].UnitID != "PC02" {
		t.Fatalf("expected newest unit PC02 first, got %+v", all)
	}

	available, err := svc.ListUnitsByStatus(models.UnitStatusAvailable)
	testutil.AssertNoError(t, err)
	if len(available) != 2 || available[0].UnitID != "PC01" || available[1].UnitID != "PC03" {
		t.Errorf("expected PC01, PC03 ascending, got %+v", available)
	}

	n, err := svc.CountUnits(models.UnitStatusRetired)
	testutil.AssertNoError(t, err)
	if n != 1 {
		t.Errorf("expected 1 retired unit, got %d", n)
	}
}

func TestUpdateUnit(t *testing.T) {
	t.Run("status_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComputerUnitService(db)
		unit := testutil.CreateTestUnit(t, db, "PC01", models.UnitStatusAvailable)

		updated, err := svc.UpdateUnit(unit.ID, UnitPatch{Status: patch.Value(models.UnitStatusMaintenance)})
		testutil.AssertNoError(t, err)
		if updated.Status != models.UnitStatusMaintenance || updated.UnitID != "PC01" {
			t.Errorf("unexpected unit after update: %+v", updated)
		}
	})

	t.Run("rename_rechecks_uniqueness", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComputerUnitService(db)
		unit := testutil.CreateTestUnit(t, db, "PC01", models.UnitStatusAvailable)
		testutil.CreateTestUnit(t, db, "PC02", models.UnitStatusAvailable)

		_, err := svc.UpdateUnit(unit.ID, UnitPatch{UnitID: patch.Value("PC02")})
		testutil.AssertAppError(t, err, "DUPLICATE_UNIT_ID")
		if err.Error() != "Another unit with this Unit ID already exists." {
			t.Errorf("unexpected message: %q", err.Error())
		}

		// keeping its own ID is not a conflict
		_, err = svc.UpdateUnit(unit.ID, UnitPatch{UnitID: patch.Value("PC01"), Status: patch.Value(models.UnitStatusRetired)})
		testutil.AssertNoError(t, err)

		renamed, err := svc.UpdateUnit(unit.ID, UnitPatch{UnitID: patch.Value("PC09")})
		testutil.AssertNoError(t, err)
		if renamed.UnitID != "PC09" {
			t.Errorf("expected PC09, got %s", renamed.UnitID)
		}
	})

	t.Run("rejects_empty_and_invalid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComputerUnitService(db)
		unit := testutil.CreateTestUnit(t, db, "PC01", models.UnitStatusAvailable)

		_, err := svc.UpdateUnit(unit.ID, UnitPatch{UnitID: patch.Value("")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.UpdateUnit(unit.ID, UnitPatch{Status: patch.Null[models.UnitStatus]()})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewComputerUnitService(db)

		_, err := svc.UpdateUnit(7, UnitPatch{Status: patch.Value(models.UnitStatusAvailable)})
		testutil.AssertAppError(t, err, "UNIT_NOT_FOUND")
	})
}
