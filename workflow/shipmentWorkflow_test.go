package workflow

import (
	"testing"
	"time"

	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
)

// These tests are DB-free: they pin the cascade semantics of the shipment
// transition by checking the computed column writes.

func TestInstallationShipmentUpdates_Full(t *testing.T) {
	now := time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC)
	installation := &models.Installation{
		HasShipped:       utils.NewFalse(),
		PartiallyShipped: utils.NewTrue(),
	}

	updates := installationShipmentUpdates(installation, models.ShipmentStatusFull, now)

	if updates["has_shipped"] != true || updates["partially_shipped"] != false {
		t.Fatalf("flag writes wrong: %v", updates)
	}
	if updates["wrap_completed"] != now {
		t.Fatalf("full shipment must stamp wrap_completed, got %v", updates["wrap_completed"])
	}
}

func TestInstallationShipmentUpdates_FullKeepsExistingWrap(t *testing.T) {
	now := time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC)
	wrapped := now.Add(-48 * time.Hour)
	installation := &models.Installation{
		HasShipped:       utils.NewFalse(),
		PartiallyShipped: utils.NewFalse(),
		WrapCompleted:    &wrapped,
	}

	updates := installationShipmentUpdates(installation, models.ShipmentStatusFull, now)

	if _, ok := updates["wrap_completed"]; ok {
		t.Fatalf("existing wrap timestamp must not be overwritten: %v", updates)
	}
}

func TestInstallationShipmentUpdates_PartialAndNone(t *testing.T) {
	now := time.Now().UTC()
	installation := &models.Installation{
		HasShipped:       utils.NewTrue(),
		PartiallyShipped: utils.NewFalse(),
	}

	partial := installationShipmentUpdates(installation, models.ShipmentStatusPartial, now)
	if partial["has_shipped"] != false || partial["partially_shipped"] != true {
		t.Fatalf("partial writes wrong: %v", partial)
	}
	if _, ok := partial["wrap_completed"]; ok {
		t.Fatalf("partial shipment must not touch wrap: %v", partial)
	}

	none := installationShipmentUpdates(installation, models.ShipmentStatusNone, now)
	if none["has_shipped"] != false || none["partially_shipped"] != false {
		t.Fatalf("none writes wrong: %v", none)
	}
}

func TestFullShipmentScheduleUpdates_BackfillsOnlyOpenMilestones(t *testing.T) {
	now := time.Date(2026, 5, 20, 14, 0, 0, 0, time.UTC)
	earlier := now.Add(-72 * time.Hour)
	schedule := &models.ProductionSchedule{
		InPlantActual: &earlier,
		PaintActual:   &earlier,
	}

	updates := fullShipmentScheduleUpdates(schedule, now)

	if _, ok := updates["in_plant_actual"]; ok {
		t.Fatalf("already stamped milestone must keep its timestamp: %v", updates)
	}
	if _, ok := updates["paint_actual"]; ok {
		t.Fatalf("already stamped milestone must keep its timestamp: %v", updates)
	}
	for _, column := range []string{
		"doors_actual", "cut_finish_actual", "custom_finish_actual",
		"drawer_actual", "cut_melamine_actual", "assembly_actual",
	} {
		if updates[column] != now {
			t.Fatalf("open milestone %q not backfilled: %v", column, updates)
		}
	}
}

func TestFullShipmentScheduleUpdates_NothingOpen(t *testing.T) {
	now := time.Now().UTC()
	stamp := now.Add(-time.Hour)
	schedule := &models.ProductionSchedule{
		InPlantActual:      &stamp,
		DoorsActual:        &stamp,
		CutFinishActual:    &stamp,
		CustomFinishActual: &stamp,
		DrawerActual:       &stamp,
		CutMelamineActual:  &stamp,
		PaintActual:        &stamp,
		AssemblyActual:     &stamp,
	}
	if updates := fullShipmentScheduleUpdates(schedule, now); len(updates) != 0 {
		t.Fatalf("fully stamped schedule must produce no writes, got %v", updates)
	}
}
