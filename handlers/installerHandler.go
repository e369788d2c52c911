package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
)

func ListInstallersHandler(c *gin.Context) {
	installers, err := models.ListInstallers(c.Request.Context())
	if err != nil {
		respondError(c, "installerHandler.go", "ListInstallersHandler", "ListInstallers", err)
		return
	}
	c.JSON(http.StatusOK, installers)
}

func CreateInstallerHandler(c *gin.Context) {
	var input models.NewInstaller
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	installer, err := models.CreateInstaller(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "installerHandler.go", "CreateInstallerHandler", "CreateInstaller", err)
		return
	}
	c.JSON(http.StatusCreated, installer)
}

type activeInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func ToggleInstallerActiveHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input activeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	installer, err := models.ToggleInstallerActive(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		respondError(c, "installerHandler.go", "ToggleInstallerActiveHandler", "ToggleInstallerActive", err)
		return
	}
	c.JSON(http.StatusOK, installer)
}

func RegisterInstallerRoutes(r gin.IRouter) {
	r.GET("/installers", ListInstallersHandler)
	r.POST("/installers", CreateInstallerHandler)
	r.PUT("/installers/:id/active", ToggleInstallerActiveHandler)
}
