package models

import (
	"context"
	"fmt"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
)

// Milestone completion is stored as a nullable timestamp: non-null means
// done, null means not done. Toggling is idempotent; marking an already
// completed milestone complete keeps its original timestamp.

// ToggleScheduleMilestone sets or clears one production milestone's actual
// timestamp. Unknown fields are rejected before touching the database.
func ToggleScheduleMilestone(ctx context.Context, scheduleId int, field MilestoneField, complete bool) (*ProductionSchedule, error) {
	column, ok := scheduleMilestoneColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown production milestone %q", field)
	}

	db := config.GetDB()
	var schedule ProductionSchedule
	if err := db.WithContext(ctx).First(&schedule, scheduleId).Error; err != nil {
		return nil, err
	}

	current := schedule.MilestoneActual(field)
	if complete == (current != nil) {
		return &schedule, nil
	}

	var value any
	if complete {
		value = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Model(&schedule).Updates(map[string]any{column: value}).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).First(&schedule, scheduleId).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ToggleInstallationMilestone sets or clears an installation-side completion
// timestamp (inspection or installation).
func ToggleInstallationMilestone(ctx context.Context, installationId int, field InstallMilestoneField, complete bool) (*Installation, error) {
	column, ok := installMilestoneColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown installation milestone %q", field)
	}

	db := config.GetDB()
	var installation Installation
	if err := db.WithContext(ctx).First(&installation, installationId).Error; err != nil {
		return nil, err
	}

	current := installation.InstallMilestoneActual(field)
	if complete == (current != nil) {
		return &installation, nil
	}

	var value any
	if complete {
		value = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Model(&installation).Updates(map[string]any{column: value}).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).First(&installation, installationId).Error; err != nil {
		return nil, err
	}
	return &installation, nil
}

// SetBoxAssembledCount records the count of assembled boxes on a schedule.
func SetBoxAssembledCount(ctx context.Context, scheduleId int, count int) (*ProductionSchedule, error) {
	if count < 0 {
		return nil, fmt.Errorf("box assembled count cannot be negative")
	}
	db := config.GetDB()
	var schedule ProductionSchedule
	if err := db.WithContext(ctx).First(&schedule, scheduleId).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&schedule).Updates(map[string]any{"box_assembled_count": count}).Error; err != nil {
		return nil, err
	}
	schedule.BoxAssembledCount = count
	return &schedule, nil
}
