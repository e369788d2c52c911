package models

import (
	"context"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/utils"
)

const dashboardSummaryKey = "dashboardSummary"

// DashboardSummary is the landing-page headline counts. It is rebuilt from
// the database on a cache miss and invalidated by the model hooks.
type DashboardSummary struct {
	ActiveJobs        int64 `json:"active_jobs"`
	RushJobs          int64 `json:"rush_jobs"`
	ConfirmedShipping int64 `json:"confirmed_shipping"`
	OpenBackorders    int64 `json:"open_backorders"`
	OpenServiceOrders int64 `json:"open_service_orders"`
	PendingInspection int64 `json:"pending_inspection"`

	GeneratedAt time.Time `json:"generated_at"`
}

// GetDashboardSummary serves the cached summary, recomputing when absent.
func GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var cached DashboardSummary
	found, err := config.GetRedisObject(dashboardSummaryKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	db := config.GetDB()
	summary := DashboardSummary{GeneratedAt: time.Now().UTC()}

	counts := []struct {
		dest  *int64
		query func() error
	}{
		{&summary.ActiveJobs, func() error {
			return db.WithContext(ctx).Model(&Job{}).
				Joins("LEFT JOIN installations ON installations.job_id = jobs.id").
				Where("installations.has_shipped = ? OR installations.id IS NULL", false).
				Count(&summary.ActiveJobs).Error
		}},
		{&summary.RushJobs, func() error {
			return db.WithContext(ctx).Model(&ProductionSchedule{}).
				Where("is_rush = ?", true).Count(&summary.RushJobs).Error
		}},
		{&summary.ConfirmedShipping, func() error {
			return db.WithContext(ctx).Model(&ProductionSchedule{}).
				Where("ship_status = ?", ShipStatusConfirmed).Count(&summary.ConfirmedShipping).Error
		}},
		{&summary.OpenBackorders, func() error {
			return db.WithContext(ctx).Model(&Backorder{}).
				Where("complete = ?", false).Count(&summary.OpenBackorders).Error
		}},
		{&summary.OpenServiceOrders, func() error {
			return db.WithContext(ctx).Model(&ServiceOrder{}).
				Where("completed_at IS NULL").Count(&summary.OpenServiceOrders).Error
		}},
		{&summary.PendingInspection, func() error {
			return db.WithContext(ctx).Model(&Installation{}).
				Where("inspection_scheduled IS NOT NULL AND inspection_completed IS NULL").
				Count(&summary.PendingInspection).Error
		}},
	}
	for _, c := range counts {
		if err := c.query(); err != nil {
			return nil, err
		}
	}

	if err := config.SetRedisObject(dashboardSummaryKey, summary, utils.GetCacheLifespan()); err != nil {
		config.LogError(config.GetLogger(), "models", "GetDashboardSummary", "cache store", nil, err)
	}
	return &summary, nil
}

// RemoveDashboardSummaryCache drops the cached summary so the next read
// recomputes it.
func RemoveDashboardSummaryCache() error {
	return config.RemoveRedisKey(dashboardSummaryKey)
}
