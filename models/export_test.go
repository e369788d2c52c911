package models

import (
	"testing"
	"time"
)

func TestExportMilestoneCell(t *testing.T) {
	scheduled := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	actual := time.Date(2026, 4, 5, 16, 30, 0, 0, time.UTC)

	if got := exportMilestone(&scheduled, &actual); got != "Done 2026-04-05" {
		t.Fatalf("completed milestone cell = %q", got)
	}
	if got := exportMilestone(&scheduled, nil); got != "2026-04-02" {
		t.Fatalf("scheduled milestone cell = %q", got)
	}
	if got := exportMilestone(nil, nil); got != "" {
		t.Fatalf("unscheduled milestone cell = %q", got)
	}
}

func TestScheduleMilestoneAccessorCoversAllFields(t *testing.T) {
	stamp := time.Now().UTC()
	schedule := ProductionSchedule{
		InPlantActual:      &stamp,
		DoorsActual:        &stamp,
		CutFinishActual:    &stamp,
		CustomFinishActual: &stamp,
		DrawerActual:       &stamp,
		CutMelamineActual:  &stamp,
		PaintActual:        &stamp,
		AssemblyActual:     &stamp,
	}
	for field := range scheduleMilestoneColumns {
		if schedule.MilestoneActual(field) == nil {
			t.Errorf("accessor missing for milestone %q", field)
		}
	}
}
