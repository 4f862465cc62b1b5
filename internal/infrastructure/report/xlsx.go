// Package report renders admin exports.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vogueline/agency-api/internal/core/domain"
)

const productSheet = "Product requests"

var productHeader = []string{
	"id", "status", "owner_name", "owner_email", "product_name", "category", "price", "currency",
	"quantity", "image_count", "assigned_model", "shoot_date", "shoot_location",
	"admin_notes", "decided_by", "decided_at", "completed_at", "created_at", "updated_at",
}

// ProductRequestsXLSX writes one row per request to a single-sheet workbook.
func ProductRequestsXLSX(items []domain.ProductListingRequest) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), productSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := xl.SetSheetRow(productSheet, "A1", &productHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(productHeader), 1)
		_ = xl.SetCellStyle(productSheet, "A1", last, bold)
	}
	_ = xl.SetPanes(productSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for i, r := range items {
		record := productRecord(r)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(productSheet, cell, &record); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename names an export by its creation time.
func ExportFilename(now time.Time) string {
	return "product_requests_" + now.UTC().Format("20060102_150405") + ".xlsx"
}

func productRecord(r domain.ProductListingRequest) []interface{} {
	model, shootDate, shootLocation := "", "", ""
	if r.AssignedModelRef != nil {
		model = *r.AssignedModelRef
	}
	if r.ShootDetails != nil {
		shootDate = formatTime(r.ShootDetails.Date)
		shootLocation = r.ShootDetails.Location
	}
	return []interface{}{
		r.ID,
		string(r.Status),
		r.OwnerName,
		r.OwnerEmail,
		r.Product.Name,
		r.Product.Category,
		r.Product.Price,
		r.Product.Currency,
		r.Product.Quantity,
		len(r.ImageAssetRefs),
		model,
		shootDate,
		shootLocation,
		strings.TrimSpace(r.AdminNotes),
		r.DecidedBy,
		formatTime(r.DecidedAt),
		formatTime(r.CompletedAt),
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ParseCount is a helper for the export query parameter; it clamps to [1, max].
func ParseCount(raw string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
