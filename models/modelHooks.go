package models

import (
	"gorm.io/gorm"
)

// Cache invalidation lives in GORM hooks so every write path, including the
// workflow transactions, clears stale entries without remembering to.

func (i *Installer) AfterCreate(tx *gorm.DB) (err error) {
	return RemoveRedisBoth(*i)
}

func (i *Installer) AfterUpdate(tx *gorm.DB) (err error) {
	return RemoveRedisBoth(*i)
}

func (i *Installer) AfterDelete(tx *gorm.DB) (err error) {
	return RemoveRedisBoth(*i)
}

func (c *Client) AfterUpdate(tx *gorm.DB) (err error) {
	return RemoveRedisBoth(*c)
}

func (c *Client) AfterDelete(tx *gorm.DB) (err error) {
	return RemoveRedisBoth(*c)
}

func (j *Job) AfterCreate(tx *gorm.DB) (err error) {
	return RemoveRedisBoth(*j)
}

func (j *Job) AfterUpdate(tx *gorm.DB) (err error) {
	return RemoveRedisBoth(*j)
}

func (j *Job) AfterDelete(tx *gorm.DB) (err error) {
	return RemoveRedisBoth(*j)
}

// Schedule and installation writes change job-derived dashboard numbers.

func (s *ProductionSchedule) AfterUpdate(tx *gorm.DB) (err error) {
	return RemoveDashboardSummaryCache()
}

func (i *Installation) AfterUpdate(tx *gorm.DB) (err error) {
	return RemoveDashboardSummaryCache()
}

func (b *Backorder) AfterCreate(tx *gorm.DB) (err error) {
	return RemoveDashboardSummaryCache()
}

func (b *Backorder) AfterUpdate(tx *gorm.DB) (err error) {
	return RemoveDashboardSummaryCache()
}

func (b *Backorder) AfterDelete(tx *gorm.DB) (err error) {
	return RemoveDashboardSummaryCache()
}

func (s *ServiceOrder) AfterCreate(tx *gorm.DB) (err error) {
	return RemoveDashboardSummaryCache()
}

func (s *ServiceOrder) AfterUpdate(tx *gorm.DB) (err error) {
	return RemoveDashboardSummaryCache()
}

func (s *ServiceOrder) AfterDelete(tx *gorm.DB) (err error) {
	return RemoveDashboardSummaryCache()
}
