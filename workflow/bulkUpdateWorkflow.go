package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
	"gorm.io/gorm"
)

// Optional distinguishes "field absent from the request" from "field present
// with null". Absent fields leave the column untouched; an explicit null
// clears it.
type Optional[T any] struct {
	Defined bool
	Value   *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Defined = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Defined || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// SchedulePatch is one sparse bulk edit applied to many jobs at once.
// Scheduled dates live on production_schedules; the wrap timestamp lives on
// installations and fans out in the same transaction.
type SchedulePatch struct {
	InPlantDate      Optional[time.Time] `json:"in_plant_date"`
	DoorsDate        Optional[time.Time] `json:"doors_date"`
	CutFinishDate    Optional[time.Time] `json:"cut_finish_date"`
	CustomFinishDate Optional[time.Time] `json:"custom_finish_date"`
	DrawerDate       Optional[time.Time] `json:"drawer_date"`
	CutMelamineDate  Optional[time.Time] `json:"cut_melamine_date"`
	PaintDate        Optional[time.Time] `json:"paint_date"`
	AssemblyDate     Optional[time.Time] `json:"assembly_date"`

	ShipDate   Optional[time.Time]         `json:"ship_date"`
	ShipStatus Optional[models.ShipStatus] `json:"ship_status"`
	IsRush     Optional[bool]              `json:"is_rush"`

	WrapCompleted Optional[time.Time] `json:"wrap_completed"`
}

// scheduleUpdates flattens the schedule-side fields into a column map.
// Undefined fields are skipped; defined nulls become NULL writes.
func (p *SchedulePatch) scheduleUpdates() map[string]any {
	updates := map[string]any{}
	put := func(column string, o Optional[time.Time]) {
		if !o.Defined {
			return
		}
		if o.Value == nil {
			updates[column] = nil
			return
		}
		updates[column] = *o.Value
	}
	put("in_plant_date", p.InPlantDate)
	put("doors_date", p.DoorsDate)
	put("cut_finish_date", p.CutFinishDate)
	put("custom_finish_date", p.CustomFinishDate)
	put("drawer_date", p.DrawerDate)
	put("cut_melamine_date", p.CutMelamineDate)
	put("paint_date", p.PaintDate)
	put("assembly_date", p.AssemblyDate)
	put("ship_date", p.ShipDate)

	if p.ShipStatus.Defined {
		if p.ShipStatus.Value == nil {
			updates["ship_status"] = models.ShipStatusUnprocessed
		} else {
			updates["ship_status"] = *p.ShipStatus.Value
		}
	}
	if p.IsRush.Defined {
		if p.IsRush.Value == nil {
			updates["is_rush"] = false
		} else {
			updates["is_rush"] = *p.IsRush.Value
		}
	}
	return updates
}

func (p *SchedulePatch) installationUpdates() map[string]any {
	updates := map[string]any{}
	if p.WrapCompleted.Defined {
		if p.WrapCompleted.Value == nil {
			updates["wrap_completed"] = nil
		} else {
			updates["wrap_completed"] = *p.WrapCompleted.Value
		}
	}
	return updates
}

func (p *SchedulePatch) validate() error {
	if p.ShipStatus.Defined && p.ShipStatus.Value != nil {
		switch *p.ShipStatus.Value {
		case models.ShipStatusUnprocessed, models.ShipStatusTentative, models.ShipStatusConfirmed:
		default:
			return fmt.Errorf("unknown ship status %q", *p.ShipStatus.Value)
		}
	}
	return nil
}

// BulkUpdateError records one job that could not be updated.
type BulkUpdateError struct {
	JobId int    `json:"job_id"`
	Error string `json:"error"`
}

// BulkUpdateReport aggregates per-job outcomes of a bulk edit.
type BulkUpdateReport struct {
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Errors  []BulkUpdateError `json:"errors,omitempty"`
}

// ApplyBulkScheduleUpdate applies one sparse patch to every listed job.
// Each job commits independently so one bad row does not roll back the rest;
// the report tells the caller which jobs were skipped and why.
func ApplyBulkScheduleUpdate(ctx context.Context, jobIds []int, patch *SchedulePatch) (*BulkUpdateReport, error) {
	logger := config.GetLogger()

	if len(jobIds) == 0 {
		return nil, errors.New("no jobs selected")
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}

	scheduleUpdates := patch.scheduleUpdates()
	installationUpdates := patch.installationUpdates()
	if len(scheduleUpdates) == 0 && len(installationUpdates) == 0 {
		return nil, errors.New("patch has no fields")
	}

	db := config.GetDB()
	report := &BulkUpdateReport{}

	// Resolve which selected jobs actually have rows up front so a missing
	// job surfaces as "not found" rather than a zero-row update.
	var knownJobIds []int
	if err := db.WithContext(ctx).Model(&models.Job{}).
		Where("id IN ?", jobIds).Pluck("id", &knownJobIds).Error; err != nil {
		return nil, err
	}
	known := make(map[int]bool, len(knownJobIds))
	for _, id := range knownJobIds {
		known[id] = true
	}

	for _, jobId := range utils.UniqueSlice(jobIds) {
		if !known[jobId] {
			report.Failed++
			report.Errors = append(report.Errors, BulkUpdateError{JobId: jobId, Error: utils.ErrorRecordNotFound.Error()})
			continue
		}
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if len(scheduleUpdates) > 0 {
				if err := tx.Model(&models.ProductionSchedule{}).
					Where("job_id = ?", jobId).Updates(scheduleUpdates).Error; err != nil {
					return err
				}
			}
			if len(installationUpdates) > 0 {
				if err := tx.Model(&models.Installation{}).
					Where("job_id = ?", jobId).Updates(installationUpdates).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			config.LogError(logger, "bulkUpdateWorkflow.go", "ApplyBulkScheduleUpdate", "job update", jobId, err)
			report.Failed++
			report.Errors = append(report.Errors, BulkUpdateError{JobId: jobId, Error: err.Error()})
			continue
		}
		report.Success++
	}

	return report, nil
}
