package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report is a point-in-time snapshot of a property inspection: the rendered
// PDF plus a full denormalized copy of the property as it stood at generation
// time. Immutable after creation.
type Report struct {
	BaseUUIDModel
	PropertyID  uuid.UUID                    `gorm:"type:uuid;index"  json:"propertyId"`
	GeneratedAt time.Time                    `gorm:"type:timestamp"   json:"generatedAt"`
	PDFData     []byte                       `gorm:"type:blob"        json:"-"`
	Property    datatypes.JSONType[Property] `gorm:"type:jsonb"       json:"property"`
}

type PDFOptions struct {
	IncludePhotos   bool `json:"includePhotos"`
	IncludeNotes    bool `json:"includeNotes"`
	WatermarkImages bool `json:"watermarkImages"`
}

func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		IncludePhotos:   true,
		IncludeNotes:    true,
		WatermarkImages: true,
	}
}
