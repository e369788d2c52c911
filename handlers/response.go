package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/utils"
)

// PaginatedResponse defines the structure for any paginated API response.
// RequestKey echoes the caller's key so a client that fired overlapping
// requests can discard responses for filters it is no longer showing.
type PaginatedResponse struct {
	Data        interface{} `json:"data"`
	TotalRows   int64       `json:"totalRows"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	PageSize    int         `json:"pageSize"`
	RequestKey  string      `json:"requestKey,omitempty"`
}

func respondError(c *gin.Context, moduleName string, funcName string, contextInfo string, err error) {
	config.LogError(config.GetLogger(), moduleName, funcName, contextInfo, c.Request.URL.Path, err)
	status := http.StatusInternalServerError
	if errors.Is(err, utils.ErrorRecordNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
