package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
)

func CreateBackorderHandler(c *gin.Context) {
	var input models.NewBackorder
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	backorder, err := models.CreateBackorder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "backorderHandler.go", "CreateBackorderHandler", "CreateBackorder", err)
		return
	}
	c.JSON(http.StatusCreated, backorder)
}

func UpdateBackorderHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input models.NewBackorder
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	backorder, err := models.UpdateBackorder(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "backorderHandler.go", "UpdateBackorderHandler", "UpdateBackorder", err)
		return
	}
	c.JSON(http.StatusOK, backorder)
}

func ToggleBackorderHandler(c *gin.Context) {
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
	backorder, err := models.ToggleBackorderComplete(c.Request.Context(), id, *input.Complete)
	if err != nil {
		respondError(c, "backorderHandler.go", "ToggleBackorderHandler", "ToggleBackorderComplete", err)
		return
	}
	c.JSON(http.StatusOK, backorder)
}

func DeleteBackorderHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	backorder, err := models.DeleteBackorder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "backorderHandler.go", "DeleteBackorderHandler", "DeleteBackorder", err)
		return
	}
	c.JSON(http.StatusOK, backorder)
}

func RegisterBackorderRoutes(r gin.IRouter) {
	r.POST("/backorders", CreateBackorderHandler)
	r.PUT("/backorders/:id", UpdateBackorderHandler)
	r.PUT("/backorders/:id/complete", ToggleBackorderHandler)
	r.DELETE("/backorders/:id", DeleteBackorderHandler)
}
