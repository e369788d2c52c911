package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/workflow"
)

type shipmentStatusInput struct {
	Status models.ShipmentStatus `json:"status" binding:"required"`
}

// ApplyShipmentStatusHandler runs the cross-table shipment transition for
// one job.
func ApplyShipmentStatusHandler(c *gin.Context) {
	jobId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input shipmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := workflow.ApplyShipmentStatus(c.Request.Context(), jobId, input.Status)
	if err != nil {
		respondError(c, "shipmentHandler.go", "ApplyShipmentStatusHandler", "ApplyShipmentStatus", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type bulkUpdateInput struct {
	JobIds []int                  `json:"job_ids" binding:"required"`
	Patch  workflow.SchedulePatch `json:"patch"`
}

// BulkScheduleUpdateHandler applies one sparse patch to many jobs and
// reports per-job outcomes.
func BulkScheduleUpdateHandler(c *gin.Context) {
	var input bulkUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	report, err := workflow.ApplyBulkScheduleUpdate(c.Request.Context(), input.JobIds, &input.Patch)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func RegisterShipmentRoutes(r gin.IRouter) {
	r.PUT("/jobs/:id/shipment-status", ApplyShipmentStatusHandler)
	r.POST("/schedules/bulk-update", BulkScheduleUpdateHandler)
}
