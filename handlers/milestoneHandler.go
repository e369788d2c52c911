package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
)

type toggleInput struct {
	Complete *bool `json:"complete" binding:"required"`
}

func ToggleScheduleMilestoneHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	field := models.MilestoneField(c.Param("field"))
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	schedule, err := models.ToggleScheduleMilestone(c.Request.Context(), id, field, *input.Complete)
	if err != nil {
		respondError(c, "milestoneHandler.go", "ToggleScheduleMilestoneHandler", string(field), err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func ToggleInstallationMilestoneHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	field := models.InstallMilestoneField(c.Param("field"))
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	installation, err := models.ToggleInstallationMilestone(c.Request.Context(), id, field, *input.Complete)
	if err != nil {
		respondError(c, "milestoneHandler.go", "ToggleInstallationMilestoneHandler", string(field), err)
		return
	}
	c.JSON(http.StatusOK, installation)
}

func RegisterMilestoneRoutes(r gin.IRouter) {
	r.PUT("/schedules/:id/milestones/:field", ToggleScheduleMilestoneHandler)
	r.PUT("/installations/:id/milestones/:field", ToggleInstallationMilestoneHandler)
}
