package models

import (
	"context"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/utils"
)

// Backorder records parts still owed after a shipment. Created explicitly or
// as the forced follow-up to a partial shipment.
type Backorder struct {
	ID        int        `gorm:"primary_key" json:"id"`
	JobId     int        `gorm:"index;not null" json:"job_id" binding:"required"`
	Complete  *bool      `gorm:"not null;default:false" json:"complete"`
	DueDate   *time.Time `json:"due_date"`
	Comments  string     `gorm:"type:text" json:"comments"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBackorder struct {
	JobId    int        `json:"job_id" binding:"required"`
	DueDate  *time.Time `json:"due_date"`
	Comments string     `json:"comments"`
}

func (b Backorder) GetId() int {
	return b.ID
}

func CreateBackorder(ctx context.Context, input *NewBackorder) (*Backorder, error) {
	db := config.GetDB()

	backorder := Backorder{
		JobId:    input.JobId,
		Complete: utils.NewFalse(),
		DueDate:  input.DueDate,
		Comments: input.Comments,
	}
	if err := db.WithContext(ctx).Create(&backorder).Error; err != nil {
		return nil, err
	}
	return &backorder, nil
}

func UpdateBackorder(ctx context.Context, id int, input *NewBackorder) (*Backorder, error) {
	db := config.GetDB()
	var backorder Backorder
	if err := db.WithContext(ctx).First(&backorder, id).Error; err != nil {
		return nil, err
	}
	updates := map[string]any{
		"due_date": input.DueDate,
		"comments": input.Comments,
	}
	if err := db.WithContext(ctx).Model(&backorder).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &backorder, nil
}

// ToggleBackorderComplete flips the completion flag.
func ToggleBackorderComplete(ctx context.Context, id int, complete bool) (*Backorder, error) {
	db := config.GetDB()
	var backorder Backorder
	if err := db.WithContext(ctx).First(&backorder, id).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&backorder).Updates(map[string]any{"complete": complete}).Error; err != nil {
		return nil, err
	}
	backorder.Complete = &complete
	return &backorder, nil
}

func DeleteBackorder(ctx context.Context, id int) (*Backorder, error) {
	db := config.GetDB()
	var backorder Backorder
	if err := db.WithContext(ctx).First(&backorder, id).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&backorder).Error; err != nil {
		return nil, err
	}
	return &backorder, nil
}
