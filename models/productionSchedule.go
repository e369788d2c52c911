package models

import (
	"context"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
)

// ProductionSchedule holds one row per job. Every production milestone is a
// scheduled date paired with a nullable "actual" completion timestamp; the
// actual column being non-null IS the completed state; there is no boolean.
type ProductionSchedule struct {
	ID     int   `gorm:"primary_key" json:"id"`
	JobId  int   `gorm:"uniqueIndex;not null" json:"job_id" binding:"required"`
	IsRush *bool `gorm:"not null;default:false" json:"is_rush"`

	InPlantDate        *time.Time `json:"in_plant_date"`
	InPlantActual      *time.Time `json:"in_plant_actual"`
	DoorsDate          *time.Time `json:"doors_date"`
	DoorsActual        *time.Time `json:"doors_actual"`
	CutFinishDate      *time.Time `json:"cut_finish_date"`
	CutFinishActual    *time.Time `json:"cut_finish_actual"`
	CustomFinishDate   *time.Time `json:"custom_finish_date"`
	CustomFinishActual *time.Time `json:"custom_finish_actual"`
	DrawerDate         *time.Time `json:"drawer_date"`
	DrawerActual       *time.Time `json:"drawer_actual"`
	CutMelamineDate    *time.Time `json:"cut_melamine_date"`
	CutMelamineActual  *time.Time `json:"cut_melamine_actual"`
	PaintDate          *time.Time `json:"paint_date"`
	PaintActual        *time.Time `json:"paint_actual"`
	AssemblyDate       *time.Time `json:"assembly_date"`
	AssemblyActual     *time.Time `json:"assembly_actual"`

	ShipDate          *time.Time `json:"ship_date"`
	ShipStatus        ShipStatus `gorm:"type:enum('Unprocessed','Tentative','Confirmed');not null;default:'Unprocessed'" json:"ship_status"`
	BoxAssembledCount int        `gorm:"default:0" json:"box_assembled_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s ProductionSchedule) GetId() int {
	return s.ID
}

// scheduleMilestoneColumns is the closed set of toggleable actual columns.
// Extend by adding an entry, never by interpreting field names generically.
var scheduleMilestoneColumns = map[MilestoneField]string{
	MilestoneInPlant:      "in_plant_actual",
	MilestoneDoors:        "doors_actual",
	MilestoneCutFinish:    "cut_finish_actual",
	MilestoneCustomFinish: "custom_finish_actual",
	MilestoneDrawer:       "drawer_actual",
	MilestoneCutMelamine:  "cut_melamine_actual",
	MilestonePaint:        "paint_actual",
	MilestoneAssembly:     "assembly_actual",
}

// MilestoneActual returns the current actual timestamp for a milestone field.
func (s *ProductionSchedule) MilestoneActual(field MilestoneField) *time.Time {
	switch field {
	case MilestoneInPlant:
		return s.InPlantActual
	case MilestoneDoors:
		return s.DoorsActual
	case MilestoneCutFinish:
		return s.CutFinishActual
	case MilestoneCustomFinish:
		return s.CustomFinishActual
	case MilestoneDrawer:
		return s.DrawerActual
	case MilestoneCutMelamine:
		return s.CutMelamineActual
	case MilestonePaint:
		return s.PaintActual
	case MilestoneAssembly:
		return s.AssemblyActual
	}
	return nil
}

// GetScheduleByJobId fetches the schedule row linked to a job.
// Returns nil without error when the job has no schedule row.
func GetScheduleByJobId(ctx context.Context, jobId int) (*ProductionSchedule, error) {
	db := config.GetDB()
	var schedules []*ProductionSchedule
	if err := db.WithContext(ctx).Where("job_id = ?", jobId).Limit(1).Find(&schedules).Error; err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, nil
	}
	return schedules[0], nil
}

// UpdateScheduleRush flips the rush flag on the schedule.
func UpdateScheduleRush(ctx context.Context, scheduleId int, isRush bool) (*ProductionSchedule, error) {
	db := config.GetDB()
	var schedule ProductionSchedule
	if err := db.WithContext(ctx).First(&schedule, scheduleId).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&schedule).Updates(map[string]any{"is_rush": isRush}).Error; err != nil {
		return nil, err
	}
	schedule.IsRush = &isRush
	return &schedule, nil
}
