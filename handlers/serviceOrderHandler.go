package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
)

func CreateServiceOrderHandler(c *gin.Context) {
	var input models.NewServiceOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	serviceOrder, err := models.CreateServiceOrder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "serviceOrderHandler.go", "CreateServiceOrderHandler", "CreateServiceOrder", err)
		return
	}
	c.JSON(http.StatusCreated, serviceOrder)
}

func ToggleServiceOrderHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	serviceOrder, err := models.ToggleServiceOrderComplete(c.Request.Context(), id, *input.Complete)
	if err != nil {
		respondError(c, "serviceOrderHandler.go", "ToggleServiceOrderHandler", "ToggleServiceOrderComplete", err)
		return
	}
	c.JSON(http.StatusOK, serviceOrder)
}

func RegisterServiceOrderRoutes(r gin.IRouter) {
	r.POST("/service-orders", CreateServiceOrderHandler)
	r.PUT("/service-orders/:id/complete", ToggleServiceOrderHandler)
}
