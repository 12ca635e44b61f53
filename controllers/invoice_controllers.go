package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/foodhubapp/foodhub/models"
	"github.com/foodhubapp/foodhub/services"
	"github.com/foodhubapp/foodhub/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"
)

type InvoiceController struct {
	DB *gorm.DB
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db}
}

// GenerateInvoice streams a PDF invoice for an order. Customers may only
// download their own invoices; admins may download any.
func (ic *InvoiceController) GenerateInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := ic.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	role := c.GetString("role")
	if order.UserID != userID && role == models.RoleCustomer {
		utils.RespondError(c, http.StatusForbidden, services.ErrUnauthorized)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "FoodHub Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order ID: %d", order.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Reference: %s", order.Reference), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Payment Method: %s", order.PaymentMethod), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Delivery Address: %s", order.Address), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	var subtotal float64
	for _, item := range order.OrderItems {
		lineTotal := item.Price * float64(item.Quantity)
		subtotal += lineTotal

		pdf.CellFormat(90, 8, item.FoodName, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, utils.FormatINR(item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, utils.FormatINR(lineTotal), "", 1, "R", false, 0, "")
	}

	totals := services.CalculateInvoice(subtotal)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatINR(totals.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 8, "GST (5%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatINR(totals.GST), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 8, "Delivery:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatINR(totals.Delivery), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 8, "Final Amount:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatINR(totals.Final), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=FoodHub_Invoice_Order_%d.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
