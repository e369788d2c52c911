package models

import (
	"context"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/utils"
)

// Installation holds one row per job. has_shipped and partially_shipped are
// intended to be mutually exclusive; the transition engine in workflow
// enforces that, the storage layer does not.
type Installation struct {
	ID               int        `gorm:"primary_key" json:"id"`
	JobId            int        `gorm:"uniqueIndex;not null" json:"job_id" binding:"required"`
	HasShipped       *bool      `gorm:"not null;default:false" json:"has_shipped"`
	PartiallyShipped *bool      `gorm:"not null;default:false" json:"partially_shipped"`
	WrapCompleted    *time.Time `json:"wrap_completed"`
	InWarehouse      *time.Time `json:"in_warehouse"`

	InspectionScheduled   *time.Time `json:"inspection_scheduled"`
	InspectionCompleted   *time.Time `json:"inspection_completed"`
	InstallationScheduled *time.Time `json:"installation_scheduled"`
	InstallationCompleted *time.Time `json:"installation_completed"`

	InstallerId       int    `gorm:"index" json:"installer_id"`
	SiteChangesDetail string `gorm:"type:text" json:"site_changes_detail"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i Installation) GetId() int {
	return i.ID
}

// ShipmentStatus derives the fulfillment state from the stored flag pair.
// A row with both flags set is reachable only through a partially failed
// write; no repair is attempted on read and has_shipped takes precedence.
func (i Installation) ShipmentStatus() ShipmentStatus {
	if utils.DereferencePtr(i.HasShipped) {
		return ShipmentStatusFull
	}
	if utils.DereferencePtr(i.PartiallyShipped) {
		return ShipmentStatusPartial
	}
	return ShipmentStatusNone
}

var installMilestoneColumns = map[InstallMilestoneField]string{
	InstallMilestoneInspection:   "inspection_completed",
	InstallMilestoneInstallation: "installation_completed",
}

// InstallMilestoneActual returns the current completion timestamp for an
// installation-side milestone.
func (i *Installation) InstallMilestoneActual(field InstallMilestoneField) *time.Time {
	switch field {
	case InstallMilestoneInspection:
		return i.InspectionCompleted
	case InstallMilestoneInstallation:
		return i.InstallationCompleted
	}
	return nil
}

// GetInstallationByJobId fetches the installation row linked to a job.
// Returns nil without error when none exists.
func GetInstallationByJobId(ctx context.Context, jobId int) (*Installation, error) {
	db := config.GetDB()
	var installations []*Installation
	if err := db.WithContext(ctx).Where("job_id = ?", jobId).Limit(1).Find(&installations).Error; err != nil {
		return nil, err
	}
	if len(installations) == 0 {
		return nil, nil
	}
	return installations[0], nil
}

type InstallationScheduleInput struct {
	InspectionScheduled   *time.Time `json:"inspection_scheduled"`
	InstallationScheduled *time.Time `json:"installation_scheduled"`
	InstallerId           *int       `json:"installer_id"`
	SiteChangesDetail     *string    `json:"site_changes_detail"`
}

// UpdateInstallationSchedule writes the inspection/installation scheduling
// fields. Nil input fields are left untouched.
func UpdateInstallationSchedule(ctx context.Context, installationId int, input *InstallationScheduleInput) (*Installation, error) {
	db := config.GetDB()
	var installation Installation
	if err := db.WithContext(ctx).First(&installation, installationId).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.InspectionScheduled != nil {
		updates["inspection_scheduled"] = *input.InspectionScheduled
	}
	if input.InstallationScheduled != nil {
		updates["installation_scheduled"] = *input.InstallationScheduled
	}
	if input.InstallerId != nil {
		updates["installer_id"] = *input.InstallerId
	}
	if input.SiteChangesDetail != nil {
		updates["site_changes_detail"] = *input.SiteChangesDetail
	}
	if len(updates) == 0 {
		return &installation, nil
	}
	if err := db.WithContext(ctx).Model(&installation).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &installation, nil
}

// SetInWarehouse stamps or clears the in-warehouse timestamp.
func SetInWarehouse(ctx context.Context, installationId int, inWarehouse bool) (*Installation, error) {
	db := config.GetDB()
	var installation Installation
	if err := db.WithContext(ctx).First(&installation, installationId).Error; err != nil {
		return nil, err
	}
	var value *time.Time
	if inWarehouse {
		now := time.Now().UTC()
		value = &now
	}
	if err := db.WithContext(ctx).Model(&installation).Updates(map[string]any{"in_warehouse": value}).Error; err != nil {
		return nil, err
	}
	installation.InWarehouse = value
	return &installation, nil
}
