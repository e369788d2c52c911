package workflow

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/margh00b/woodtrack_backend/models"
)

func TestOptionalUnmarshal_TriState(t *testing.T) {
	type payload struct {
		ShipDate Optional[time.Time] `json:"ship_date"`
	}

	var absent payload
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatal(err)
	}
	if absent.ShipDate.Defined {
		t.Fatal("absent field must stay undefined")
	}

	var null payload
	if err := json.Unmarshal([]byte(`{"ship_date": null}`), &null); err != nil {
		t.Fatal(err)
	}
	if !null.ShipDate.Defined || null.ShipDate.Value != nil {
		t.Fatalf("explicit null must be defined with nil value: %+v", null.ShipDate)
	}

	var set payload
	if err := json.Unmarshal([]byte(`{"ship_date": "2026-06-01T00:00:00Z"}`), &set); err != nil {
		t.Fatal(err)
	}
	if !set.ShipDate.Defined || set.ShipDate.Value == nil {
		t.Fatalf("present field must carry its value: %+v", set.ShipDate)
	}
	if !set.ShipDate.Value.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("wrong value: %v", set.ShipDate.Value)
	}
}

func TestSchedulePatch_ScheduleUpdates(t *testing.T) {
	var patch SchedulePatch
	body := `{
		"doors_date": "2026-06-10T00:00:00Z",
		"paint_date": null,
		"ship_status": "Confirmed",
		"is_rush": true
	}`
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatal(err)
	}

	updates := patch.scheduleUpdates()

	if len(updates) != 4 {
		t.Fatalf("expected 4 column writes, got %v", updates)
	}
	if updates["doors_date"] == nil {
		t.Fatal("doors_date should be set")
	}
	if value, ok := updates["paint_date"]; !ok || value != nil {
		t.Fatalf("explicit null must clear paint_date, got %v present=%v", value, ok)
	}
	if updates["ship_status"] != models.ShipStatusConfirmed {
		t.Fatalf("ship_status write wrong: %v", updates["ship_status"])
	}
	if updates["is_rush"] != true {
		t.Fatalf("is_rush write wrong: %v", updates["is_rush"])
	}
	if _, ok := updates["in_plant_date"]; ok {
		t.Fatal("untouched field must not appear in updates")
	}
}

func TestSchedulePatch_WrapGoesToInstallations(t *testing.T) {
	var patch SchedulePatch
	if err := json.Unmarshal([]byte(`{"wrap_completed": "2026-06-12T08:00:00Z"}`), &patch); err != nil {
		t.Fatal(err)
	}

	if len(patch.scheduleUpdates()) != 0 {
		t.Fatal("wrap must not leak into the schedule table")
	}
	installUpdates := patch.installationUpdates()
	if _, ok := installUpdates["wrap_completed"]; !ok {
		t.Fatalf("wrap write missing: %v", installUpdates)
	}
}

func TestSchedulePatch_ValidateShipStatus(t *testing.T) {
	var patch SchedulePatch
	if err := json.Unmarshal([]byte(`{"ship_status": "Teleported"}`), &patch); err != nil {
		t.Fatal(err)
	}
	if err := patch.validate(); err == nil {
		t.Fatal("unknown ship status must fail validation")
	}

	var clear SchedulePatch
	if err := json.Unmarshal([]byte(`{"ship_status": null}`), &clear); err != nil {
		t.Fatal(err)
	}
	if err := clear.validate(); err != nil {
		t.Fatalf("null ship status resets to Unprocessed and must validate: %v", err)
	}
	if clear.scheduleUpdates()["ship_status"] != models.ShipStatusUnprocessed {
		t.Fatal("null ship status must reset to Unprocessed")
	}
}
