package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
)

// JobDetail is the full cross-table picture of one job.
type JobDetail struct {
	Job           *models.Job                `json:"job"`
	Client        *models.Client             `json:"client"`
	Schedule      *models.ProductionSchedule `json:"schedule"`
	Installation  *models.Installation       `json:"installation"`
	ShipmentState models.ShipmentStatus      `json:"shipment_status"`
	ServiceOrders []*models.ServiceOrder     `json:"service_orders"`
}

func CreateJobHandler(c *gin.Context) {
	var input models.NewJob
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	job, err := models.CreateJob(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "jobHandler.go", "CreateJobHandler", "CreateJob", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func GetJobHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	job, err := models.GetJob(ctx, id)
	if err != nil {
		respondError(c, "jobHandler.go", "GetJobHandler", "GetJob", err)
		return
	}
	jobClient, err := models.GetClient(ctx, job.ClientId)
	if err != nil {
		respondError(c, "jobHandler.go", "GetJobHandler", "GetClient", err)
		return
	}
	schedule, err := models.GetScheduleByJobId(ctx, id)
	if err != nil {
		respondError(c, "jobHandler.go", "GetJobHandler", "GetScheduleByJobId", err)
		return
	}
	installation, err := models.GetInstallationByJobId(ctx, id)
	if err != nil {
		respondError(c, "jobHandler.go", "GetJobHandler", "GetInstallationByJobId", err)
		return
	}
	serviceOrders, err := models.GetServiceOrders(ctx, id)
	if err != nil {
		respondError(c, "jobHandler.go", "GetJobHandler", "GetServiceOrders", err)
		return
	}

	detail := JobDetail{
		Job:           job,
		Client:        jobClient,
		Schedule:      schedule,
		Installation:  installation,
		ServiceOrders: serviceOrders,
	}
	if installation != nil {
		detail.ShipmentState = installation.ShipmentStatus()
	} else {
		detail.ShipmentState = models.ShipmentStatusNone
	}
	c.JSON(http.StatusOK, detail)
}

type rushInput struct {
	IsRush *bool `json:"is_rush" binding:"required"`
}

func UpdateRushHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input rushInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	schedule, err := models.UpdateScheduleRush(c.Request.Context(), id, *input.IsRush)
	if err != nil {
		respondError(c, "jobHandler.go", "UpdateRushHandler", "UpdateScheduleRush", err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

type boxCountInput struct {
	Count *int `json:"count" binding:"required"`
}

func UpdateBoxCountHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input boxCountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	schedule, err := models.SetBoxAssembledCount(c.Request.Context(), id, *input.Count)
	if err != nil {
		respondError(c, "jobHandler.go", "UpdateBoxCountHandler", "SetBoxAssembledCount", err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func UpdateInstallationScheduleHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input models.InstallationScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	installation, err := models.UpdateInstallationSchedule(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "jobHandler.go", "UpdateInstallationScheduleHandler", "UpdateInstallationSchedule", err)
		return
	}
	c.JSON(http.StatusOK, installation)
}

type inWarehouseInput struct {
	InWarehouse *bool `json:"in_warehouse" binding:"required"`
}

func SetInWarehouseHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input inWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	installation, err := models.SetInWarehouse(c.Request.Context(), id, *input.InWarehouse)
	if err != nil {
		respondError(c, "jobHandler.go", "SetInWarehouseHandler", "SetInWarehouse", err)
		return
	}
	c.JSON(http.StatusOK, installation)
}

func UpsertSalesOrderHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input models.SalesOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	salesOrder, err := models.UpsertSalesOrder(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "jobHandler.go", "UpsertSalesOrderHandler", "UpsertSalesOrder", err)
		return
	}
	c.JSON(http.StatusOK, salesOrder)
}

func RegisterJobRoutes(r gin.IRouter) {
	r.POST("/jobs", CreateJobHandler)
	r.GET("/jobs/:id", GetJobHandler)
	r.PUT("/jobs/:id/sales-order", UpsertSalesOrderHandler)
	r.PUT("/schedules/:id/rush", UpdateRushHandler)
	r.PUT("/schedules/:id/box-count", UpdateBoxCountHandler)
	r.PUT("/installations/:id/schedule", UpdateInstallationScheduleHandler)
	r.PUT("/installations/:id/in-warehouse", SetInWarehouseHandler)
}
