package models

import (
	"context"
	"errors"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/utils"
	"gorm.io/gorm"
)

type Job struct {
	ID        int       `gorm:"primary_key" json:"id"`
	JobNumber string    `gorm:"size:50;not null;uniqueIndex" json:"job_number" binding:"required"`
	ClientId  int       `gorm:"index;not null" json:"client_id" binding:"required"`
	SoldAt    time.Time `gorm:"not null" json:"sold_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Schedule      *ProductionSchedule `gorm:"foreignKey:JobId" json:"schedule"`
	Installation  *Installation       `gorm:"foreignKey:JobId" json:"installation"`
	SalesOrder    *SalesOrder         `gorm:"foreignKey:JobId" json:"sales_order"`
	Backorders    []Backorder         `gorm:"foreignKey:JobId" json:"backorders"`
	Invoices      []Invoice           `gorm:"foreignKey:JobId" json:"invoices"`
	ServiceOrders []ServiceOrder      `gorm:"foreignKey:JobId" json:"service_orders"`
}

type NewJob struct {
	JobNumber string    `json:"job_number" binding:"required"`
	ClientId  int       `json:"client_id" binding:"required"`
	SoldAt    time.Time `json:"sold_at" binding:"required"`
}

func (j Job) GetId() int {
	return j.ID
}

type Client struct {
	ID          int       `gorm:"primary_key" json:"id"`
	CompanyName string    `gorm:"size:255" json:"company_name"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c Client) GetId() int {
	return c.ID
}

// GetClient reads one client through the redis item cache. The Client model
// hooks clear the entry on mutation, so a hit is never stale.
func GetClient(ctx context.Context, id int) (*Client, error) {
	cached, err := utils.RetrieveRedis[Client](id)
	if err == nil && cached != nil {
		return cached, nil
	}

	db := config.GetDB()
	var client Client
	if err := db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := utils.StoreRedis[Client](&client, client.ID); err != nil {
		config.LogError(config.GetLogger(), "job.go", "GetClient", "Storing client cache", id, err)
	}
	return &client, nil
}

type SalesOrder struct {
	ID          int       `gorm:"primary_key" json:"id"`
	JobId       int       `gorm:"index;not null" json:"job_id" binding:"required"`
	OrderNumber string    `gorm:"size:50;not null" json:"order_number" binding:"required"`
	SoldDate    time.Time `gorm:"not null" json:"sold_date"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s SalesOrder) GetId() int {
	return s.ID
}

// CreateJob creates the job together with its empty production schedule and
// installation rows. The two 1:1 rows exist from "sold" time onward and are
// only ever mutated, never deleted.
func CreateJob(ctx context.Context, input *NewJob) (*Job, error) {
	db := config.GetDB()

	job := Job{
		JobNumber: input.JobNumber,
		ClientId:  input.ClientId,
		SoldAt:    input.SoldAt,
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&job).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	schedule := ProductionSchedule{JobId: job.ID, ShipStatus: ShipStatusUnprocessed}
	if err := tx.WithContext(ctx).Create(&schedule).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	installation := Installation{
		JobId:            job.ID,
		HasShipped:       utils.NewFalse(),
		PartiallyShipped: utils.NewFalse(),
	}
	if err := tx.WithContext(ctx).Create(&installation).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	job.Schedule = &schedule
	job.Installation = &installation

	return &job, tx.Commit().Error
}

type SalesOrderInput struct {
	OrderNumber string    `json:"order_number" binding:"required"`
	SoldDate    time.Time `json:"sold_date" binding:"required"`
}

// UpsertSalesOrder writes the job's sales order row, creating it on first
// write. A job carries at most one sales order.
func UpsertSalesOrder(ctx context.Context, jobId int, input *SalesOrderInput) (*SalesOrder, error) {
	db := config.GetDB()

	var existing []*SalesOrder
	if err := db.WithContext(ctx).Where("job_id = ?", jobId).Limit(1).Find(&existing).Error; err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		salesOrder := existing[0]
		updates := map[string]any{
			"order_number": input.OrderNumber,
			"sold_date":    input.SoldDate,
		}
		if err := db.WithContext(ctx).Model(salesOrder).Updates(updates).Error; err != nil {
			return nil, err
		}
		return salesOrder, nil
	}

	salesOrder := SalesOrder{
		JobId:       jobId,
		OrderNumber: input.OrderNumber,
		SoldDate:    input.SoldDate,
	}
	if err := db.WithContext(ctx).Create(&salesOrder).Error; err != nil {
		return nil, err
	}
	return &salesOrder, nil
}

// GetJob fetches a job with its 1:1 rows.
// (may return RecordNotFound error)
func GetJob(ctx context.Context, id int) (*Job, error) {
	db := config.GetDB()
	var job Job
	err := db.WithContext(ctx).
		Preload("Schedule").
		Preload("Installation").
		First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &job, nil
}

// GetJobByNumber fetches by the human-readable job number.
func GetJobByNumber(ctx context.Context, jobNumber string) (*Job, error) {
	db := config.GetDB()
	var job Job
	err := db.WithContext(ctx).
		Preload("Schedule").
		Preload("Installation").
		Where("job_number = ?", jobNumber).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}
