package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
)

// ExportPlantMasterHandler streams the filtered plant list as an xlsx file.
// It accepts the same request body as the list endpoint; paging is ignored.
func ExportPlantMasterHandler(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	q, err := compileListRequest(models.ResourcePlantMaster, &req)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	f, err := models.ExportPlantMasterExcel(c.Request.Context(), q)
	if err != nil {
		respondError(c, "exportHandler.go", "ExportPlantMasterHandler", "ExportPlantMasterExcel", err)
		return
	}

	filename := "plant-schedule-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		respondError(c, "exportHandler.go", "ExportPlantMasterHandler", "write xlsx", err)
	}
}

// GetDashboardHandler serves the cached landing-page counts.
func GetDashboardHandler(c *gin.Context) {
	summary, err := models.GetDashboardSummary(c.Request.Context())
	if err != nil {
		respondError(c, "exportHandler.go", "GetDashboardHandler", "GetDashboardSummary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func RegisterReportRoutes(r gin.IRouter) {
	r.POST("/export/plant-master", ExportPlantMasterHandler)
	r.GET("/dashboard", GetDashboardHandler)
}
