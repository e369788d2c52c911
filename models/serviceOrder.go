package models

import (
	"context"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
)

type ServiceOrder struct {
	ID          int        `gorm:"primary_key" json:"id"`
	JobId       int        `gorm:"index;not null" json:"job_id" binding:"required"`
	Description string     `gorm:"type:text" json:"description"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Parts []ServiceOrderPart `gorm:"foreignKey:ServiceOrderId" json:"parts"`
}

type ServiceOrderPart struct {
	ID             int       `gorm:"primary_key" json:"id"`
	ServiceOrderId int       `gorm:"index;not null" json:"service_order_id" binding:"required"`
	Name           string    `gorm:"size:255;not null" json:"name" binding:"required"`
	Qty            int       `gorm:"default:1" json:"qty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewServiceOrder struct {
	JobId       int                   `json:"job_id" binding:"required"`
	Description string                `json:"description"`
	Parts       []NewServiceOrderPart `json:"parts"`
}

type NewServiceOrderPart struct {
	Name string `json:"name" binding:"required"`
	Qty  int    `json:"qty"`
}

func (s ServiceOrder) GetId() int {
	return s.ID
}

func CreateServiceOrder(ctx context.Context, input *NewServiceOrder) (*ServiceOrder, error) {
	db := config.GetDB()

	order := ServiceOrder{
		JobId:       input.JobId,
		Description: input.Description,
	}
	for _, part := range input.Parts {
		qty := part.Qty
		if qty <= 0 {
			qty = 1
		}
		order.Parts = append(order.Parts, ServiceOrderPart{Name: part.Name, Qty: qty})
	}
	if err := db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ToggleServiceOrderComplete flips the completion timestamp between null and
// now. The timestamp is the state.
func ToggleServiceOrderComplete(ctx context.Context, id int, complete bool) (*ServiceOrder, error) {
	db := config.GetDB()
	var order ServiceOrder
	if err := db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	var value *time.Time
	if complete {
		now := time.Now().UTC()
		value = &now
	}
	if err := db.WithContext(ctx).Model(&order).Updates(map[string]any{"completed_at": value}).Error; err != nil {
		return nil, err
	}
	order.CompletedAt = value
	return &order, nil
}

func GetServiceOrders(ctx context.Context, jobId int) ([]*ServiceOrder, error) {
	db := config.GetDB()
	var orders []*ServiceOrder
	if err := db.WithContext(ctx).Preload("Parts").Where("job_id = ?", jobId).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
