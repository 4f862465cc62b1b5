package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vogueline/agency-api/internal/core/domain"
)

func TestProductRequestsXLSX(t *testing.T) {
	model := "model-1"
	shoot := time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC)
	items := []domain.ProductListingRequest{
		{
			ID: "r1", Status: domain.StatusApproved, OwnerName: "Acme", OwnerEmail: "acme@example.com",
			Product:          domain.ProductFields{Name: "Silk dress", Category: "dresses", Price: 120.5, Currency: "EUR", Quantity: 3},
			ImageAssetRefs:   []string{"a", "b"},
			AssignedModelRef: &model,
			ShootDetails:     &domain.ShootDetails{Date: &shoot, Location: "Studio 4"},
			CreatedAt:        shoot.Add(-48 * time.Hour),
			UpdatedAt:        shoot.Add(-24 * time.Hour),
		},
		{ID: "r2", Status: domain.StatusPending, OwnerName: "Beta", Product: domain.ProductFields{Name: "Tee"}},
	}

	data, err := ProductRequestsXLSX(items)
	require.NoError(t, err)

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows(productSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, productHeader, rows[0])
	assert.Equal(t, "r1", rows[1][0])
	assert.Equal(t, "approved", rows[1][1])
	assert.Equal(t, "Silk dress", rows[1][4])
	assert.Equal(t, "2", rows[1][9])
	assert.Equal(t, "model-1", rows[1][10])
	assert.Equal(t, "2026-11-02T10:00:00Z", rows[1][11])
	assert.Equal(t, "Studio 4", rows[1][12])
	assert.Equal(t, "r2", rows[2][0])
}

func TestProductRequestsXLSX_Empty(t *testing.T) {
	data, err := ProductRequestsXLSX(nil)
	require.NoError(t, err)

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows(productSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "product_requests_20260304_050607.xlsx", ExportFilename(at))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 500, ParseCount("", 500, 5000))
	assert.Equal(t, 500, ParseCount("-3", 500, 5000))
	assert.Equal(t, 42, ParseCount("42", 500, 5000))
	assert.Equal(t, 5000, ParseCount("99999", 500, 5000))
}
