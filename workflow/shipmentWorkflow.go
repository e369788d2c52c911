package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
	"gorm.io/gorm"
)

// ShipmentStatusResult reports the state after a shipment transition.
// BackorderRequired signals the office that a partial shipment needs a
// backorder recorded; nothing is created automatically.
type ShipmentStatusResult struct {
	JobId             int                        `json:"job_id"`
	Status            models.ShipmentStatus      `json:"status"`
	BackorderRequired bool                       `json:"backorder_required"`
	Installation      *models.Installation       `json:"installation"`
	Schedule          *models.ProductionSchedule `json:"schedule,omitempty"`
}

// installationShipmentUpdates computes the column writes on installations
// for a target shipment status. Full shipment stamps wrap_completed when it
// is still open; an already wrapped job keeps its original timestamp.
func installationShipmentUpdates(installation *models.Installation, target models.ShipmentStatus, now time.Time) map[string]any {
	updates := map[string]any{}
	switch target {
	case models.ShipmentStatusFull:
		updates["has_shipped"] = true
		updates["partially_shipped"] = false
		if installation.WrapCompleted == nil {
			updates["wrap_completed"] = now
		}
	case models.ShipmentStatusPartial:
		updates["has_shipped"] = false
		updates["partially_shipped"] = true
	case models.ShipmentStatusNone:
		updates["has_shipped"] = false
		updates["partially_shipped"] = false
	}
	return updates
}

// fullShipmentScheduleUpdates backfills every open production milestone:
// a job cannot leave the plant with work outstanding, so the transition is
// the completion record. Milestones already stamped keep their timestamps.
func fullShipmentScheduleUpdates(schedule *models.ProductionSchedule, now time.Time) map[string]any {
	updates := map[string]any{}
	if schedule.InPlantActual == nil {
		updates["in_plant_actual"] = now
	}
	if schedule.DoorsActual == nil {
		updates["doors_actual"] = now
	}
	if schedule.CutFinishActual == nil {
		updates["cut_finish_actual"] = now
	}
	if schedule.CustomFinishActual == nil {
		updates["custom_finish_actual"] = now
	}
	if schedule.DrawerActual == nil {
		updates["drawer_actual"] = now
	}
	if schedule.CutMelamineActual == nil {
		updates["cut_melamine_actual"] = now
	}
	if schedule.PaintActual == nil {
		updates["paint_actual"] = now
	}
	if schedule.AssemblyActual == nil {
		updates["assembly_actual"] = now
	}
	return updates
}

// ApplyShipmentStatus moves a job to the target shipment status and applies
// the cross-table cascade in one transaction. Concurrent transitions for the
// same job are serialized with a redis lock.
func ApplyShipmentStatus(ctx context.Context, jobId int, target models.ShipmentStatus) (*ShipmentStatusResult, error) {
	logger := config.GetLogger()

	switch target {
	case models.ShipmentStatusNone, models.ShipmentStatusPartial, models.ShipmentStatusFull:
	default:
		return nil, errors.New("unknown shipment status")
	}

	release, err := utils.JobLock(ctx, jobId, "shipmentLock", "shipmentWorkflow.go", "ApplyShipmentStatus")
	if err != nil {
		return nil, err
	}
	defer release()

	installation, err := models.GetInstallationByJobId(ctx, jobId)
	if err != nil {
		config.LogError(logger, "shipmentWorkflow.go", "ApplyShipmentStatus", "GetInstallationByJobId", jobId, err)
		return nil, err
	}
	if installation == nil {
		return nil, utils.ErrorRecordNotFound
	}

	schedule, err := models.GetScheduleByJobId(ctx, jobId)
	if err != nil {
		config.LogError(logger, "shipmentWorkflow.go", "ApplyShipmentStatus", "GetScheduleByJobId", jobId, err)
		return nil, err
	}

	now := time.Now().UTC()
	installationUpdates := installationShipmentUpdates(installation, target, now)

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(installation).Updates(installationUpdates).Error; err != nil {
			config.LogError(logger, "shipmentWorkflow.go", "ApplyShipmentStatus", "update installation", installationUpdates, err)
			return err
		}
		if target == models.ShipmentStatusFull && schedule != nil {
			scheduleUpdates := fullShipmentScheduleUpdates(schedule, now)
			if len(scheduleUpdates) > 0 {
				if err := tx.Model(schedule).Updates(scheduleUpdates).Error; err != nil {
					config.LogError(logger, "shipmentWorkflow.go", "ApplyShipmentStatus", "backfill schedule milestones", scheduleUpdates, err)
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch target {
	case models.ShipmentStatusFull:
		installation.HasShipped = utils.NewTrue()
		installation.PartiallyShipped = utils.NewFalse()
		if installation.WrapCompleted == nil {
			installation.WrapCompleted = &now
		}
	case models.ShipmentStatusPartial:
		installation.HasShipped = utils.NewFalse()
		installation.PartiallyShipped = utils.NewTrue()
	case models.ShipmentStatusNone:
		installation.HasShipped = utils.NewFalse()
		installation.PartiallyShipped = utils.NewFalse()
	}

	result := &ShipmentStatusResult{
		JobId:             jobId,
		Status:            installation.ShipmentStatus(),
		BackorderRequired: target == models.ShipmentStatusPartial,
		Installation:      installation,
		Schedule:          schedule,
	}
	return result, nil
}
