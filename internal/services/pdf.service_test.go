package services_test

import (
	"testing"

	"depositdefender/internal/models"
	"depositdefender/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfTestProperty(t *testing.T) *models.Property {
	t.Helper()

	kitchen, ok := models.NewRoomFromTemplate("Kitchen", models.RoomTypeKitchen)
	require.True(t, ok)
	bathroom, ok := models.NewRoomFromTemplate("Main Bathroom", models.RoomTypeBathroom)
	require.True(t, ok)

	kitchen.Items[0].SetCompleted(true)
	kitchen.Items[0].Severity = models.SeverityMajor
	kitchen.Items[0].Notes = "Burn mark on the counter next to the stove, roughly 4cm across."
	kitchen.Items[0].Photos = append(kitchen.Items[0].Photos, models.MediaFile{
		ID:       "p-1",
		Filename: "burn.jpg",
		Type:     models.MediaTypeImage,
	})
	kitchen.Items[1].SetCompleted(true)

	email := "landlord@example.com"
	property := &models.Property{
		Address:       "99 Report Road",
		TenantName:    "Report Tenant",
		LandlordEmail: &email,
		MoveOutDate:   "2026-10-15",
		Rooms:         []models.Room{kitchen, bathroom},
	}
	property.RecalculateProgress()

	return property
}

func TestPDFService_Generate(t *testing.T) {
	service := services.NewPDFService()

	pdfData, err := service.Generate(pdfTestProperty(t), models.DefaultPDFOptions())
	require.NoError(t, err)

	assert.Greater(t, len(pdfData), 1000)
	assert.Equal(t, "%PDF", string(pdfData[:4]))
}

func TestPDFService_GenerateOptionVariants(t *testing.T) {
	service := services.NewPDFService()
	property := pdfTestProperty(t)

	tests := []struct {
		name    string
		options models.PDFOptions
	}{
		{name: "without notes", options: models.PDFOptions{IncludePhotos: true}},
		{name: "without photos", options: models.PDFOptions{IncludeNotes: true}},
		{name: "bare checklist", options: models.PDFOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfData, err := service.Generate(property, tt.options)
			require.NoError(t, err)
			assert.Equal(t, "%PDF", string(pdfData[:4]))
		})
	}
}

func TestPDFService_GenerateEmptyProperty(t *testing.T) {
	service := services.NewPDFService()

	property := &models.Property{
		Address:     "Empty House",
		TenantName:  "Nobody",
		MoveOutDate: "2026-09-01",
	}
	property.RecalculateProgress()

	pdfData, err := service.Generate(property, models.DefaultPDFOptions())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfData[:4]))
}
