package adminapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

func registerExportRoutes(g *echo.Group) {
	g.GET("/export/:type", exportData)
}

type orderExportRow struct {
	OrderNo           string  `csv:"order_no"`
	CustomerName      string  `csv:"customer_name"`
	CustomerEmail     string  `csv:"customer_email"`
	Subtotal          float64 `csv:"subtotal"`
	DiscountCode      string  `csv:"discount_code"`
	DiscountAmount    float64 `csv:"discount_amount"`
	Total             float64 `csv:"total"`
	FulfillmentStatus string  `csv:"fulfillment_status"`
	PaymentStatus     string  `csv:"payment_status"`
	PaymentMethod     string  `csv:"payment_method"`
	TrackingNumber    string  `csv:"tracking_number"`
	CreatedAt         string  `csv:"created_at"`
}

type customerExportRow struct {
	Name              string  `csv:"name"`
	Email             string  `csv:"email"`
	Phone             string  `csv:"phone"`
	TotalOrders       int64   `csv:"total_orders"`
	TotalSpent        float64 `csv:"total_spent"`
	AverageOrderValue float64 `csv:"average_order_value"`
	CreatedAt         string  `csv:"created_at"`
}

type discountExportRow struct {
	Code              string  `csv:"code"`
	Type              string  `csv:"type"`
	Value             float64 `csv:"value"`
	MinPurchaseAmount float64 `csv:"min_purchase_amount"`
	UsageLimit        int64   `csv:"usage_limit"`
	TimesUsed         int64   `csv:"times_used"`
	ValidFrom         string  `csv:"valid_from"`
	ValidUntil        string  `csv:"valid_until"`
	Status            string  `csv:"status"`
}

func exportOrderRows(c echo.Context) ([]orderExportRow, error) {
	var orders []domain.Order
	if err := GetDB(c).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	rows := make([]orderExportRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderExportRow{
			OrderNo:           o.OrderNo,
			CustomerName:      o.CustomerName,
			CustomerEmail:     o.CustomerEmail,
			Subtotal:          o.Subtotal,
			DiscountCode:      o.DiscountCode,
			DiscountAmount:    o.DiscountAmount,
			Total:             o.Total,
			FulfillmentStatus: o.FulfillmentStatus,
			PaymentStatus:     o.PaymentStatus,
			PaymentMethod:     o.PaymentMethod,
			TrackingNumber:    o.TrackingNumber,
			CreatedAt:         o.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

func exportCustomerRows(c echo.Context) ([]customerExportRow, error) {
	var customers []domain.Customer
	if err := GetDB(c).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	rows := make([]customerExportRow, 0, len(customers))
	for _, cu := range customers {
		rows = append(rows, customerExportRow{
			Name:              cu.Name,
			Email:             cu.Email,
			Phone:             cu.Phone,
			TotalOrders:       cu.TotalOrders,
			TotalSpent:        cu.TotalSpent,
			AverageOrderValue: cu.AverageOrderValue,
			CreatedAt:         cu.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

func exportDiscountRows(c echo.Context) ([]discountExportRow, error) {
	var codes []domain.DiscountCode
	if err := GetDB(c).Order("id DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	rows := make([]discountExportRow, 0, len(codes))
	for _, dc := range codes {
		rows = append(rows, discountExportRow{
			Code:              dc.Code,
			Type:              dc.Type,
			Value:             dc.Value,
			MinPurchaseAmount: dc.MinPurchaseAmount,
			UsageLimit:        dc.UsageLimit,
			TimesUsed:         dc.TimesUsed,
			ValidFrom:         dc.ValidFrom.Format(time.RFC3339),
			ValidUntil:        dc.ValidUntil.Format(time.RFC3339),
			Status:            dc.Status,
		})
	}
	return rows, nil
}

// exportData serves csv (default) or xlsx for orders, customers and
// discounts. An empty result set is a 404, never an empty attachment.
func exportData(c echo.Context) error {
	exportType := c.Param("type")
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	var csvBody string
	var count int
	var err error
	switch exportType {
	case "orders":
		var rows []orderExportRow
		if rows, err = exportOrderRows(c); err == nil {
			count = len(rows)
			if format == "xlsx" {
				return writeXlsx(c, exportType, rows, count)
			}
			csvBody, err = gocsv.MarshalString(&rows)
		}
	case "customers":
		var rows []customerExportRow
		if rows, err = exportCustomerRows(c); err == nil {
			count = len(rows)
			if format == "xlsx" {
				return writeXlsx(c, exportType, rows, count)
			}
			csvBody, err = gocsv.MarshalString(&rows)
		}
	case "discounts":
		var rows []discountExportRow
		if rows, err = exportDiscountRows(c); err == nil {
			count = len(rows)
			if format == "xlsx" {
				return writeXlsx(c, exportType, rows, count)
			}
			csvBody, err = gocsv.MarshalString(&rows)
		}
	default:
		return fail(c, http.StatusBadRequest, "INVALID_TYPE", "Unknown export type", exportType)
	}

	if err != nil {
		zap.L().Error("export failed", zap.String("type", exportType), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export data", nil)
	}
	if count == 0 {
		return fail(c, http.StatusNotFound, "NO_DATA", "No rows to export", exportType)
	}

	filename := fmt.Sprintf("%s-%s.csv", exportType, time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(csvBody))
}

// writeXlsx renders rows through gocsv's csv form into a worksheet so the
// xlsx columns always match the csv export.
func writeXlsx(c echo.Context, exportType string, rows interface{}, count int) error {
	if count == 0 {
		return fail(c, http.StatusNotFound, "NO_DATA", "No rows to export", exportType)
	}
	csvBody, err := gocsv.MarshalString(rows)
	if err != nil {
		zap.L().Error("export failed", zap.String("type", exportType), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export data", nil)
	}

	records, err := gocsv.LazyCSVReader(bytes.NewBufferString(csvBody)).ReadAll()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export data", nil)
	}

	xlsx := excelize.NewFile()
	for r, record := range records {
		for col, value := range record {
			cell := fmt.Sprintf("%s%d", excelize.ToAlphaString(col), r+1)
			xlsx.SetCellValue("Sheet1", cell, value)
		}
	}

	var buf bytes.Buffer
	if err := xlsx.Write(&buf); err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export data", nil)
	}

	filename := fmt.Sprintf("%s-%s.xlsx", exportType, time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
