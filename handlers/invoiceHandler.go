package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
)

func CreateInvoiceHandler(c *gin.Context) {
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	invoice, err := models.CreateInvoice(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "invoiceHandler.go", "CreateInvoiceHandler", "CreateInvoice", err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

type paidInput struct {
	Paid *bool `json:"paid" binding:"required"`
}

func MarkInvoicePaidHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input paidInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	invoice, err := models.MarkInvoicePaid(c.Request.Context(), id, *input.Paid)
	if err != nil {
		respondError(c, "invoiceHandler.go", "MarkInvoicePaidHandler", "MarkInvoicePaid", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type noChargeInput struct {
	NoCharge *bool `json:"no_charge" binding:"required"`
}

func MarkInvoiceNoChargeHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var input noChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	invoice, err := models.MarkInvoiceNoCharge(c.Request.Context(), id, *input.NoCharge)
	if err != nil {
		respondError(c, "invoiceHandler.go", "MarkInvoiceNoChargeHandler", "MarkInvoiceNoCharge", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func RegisterInvoiceRoutes(r gin.IRouter) {
	r.POST("/invoices", CreateInvoiceHandler)
	r.PUT("/invoices/:id/paid", MarkInvoicePaidHandler)
	r.PUT("/invoices/:id/no-charge", MarkInvoiceNoChargeHandler)
}
