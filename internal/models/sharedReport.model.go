package models

import (
	"time"

	"gorm.io/datatypes"
)

// SharedReport wraps a report snapshot behind an opaque capability token. The
// token is the only access control: whoever holds it can read the report
// until the expiry timestamp passes. Revocation is a soft delete via expiry
// since nothing else references the record.
// PDFData rides in its own column: the report snapshot serializes as JSON,
// which drops the binary, so the rendered document must be carried
// separately to survive the round-trip.
type SharedReport struct {
	ID          string                     `gorm:"type:text;primaryKey" json:"id"`
	ReportData  datatypes.JSONType[Report] `gorm:"type:jsonb"           json:"reportData"`
	PDFData     []byte                     `gorm:"type:blob"            json:"-"`
	CreatedAt   time.Time                  `gorm:"autoCreateTime"       json:"createdAt"`
	ExpiresAt   time.Time                  `gorm:"type:timestamp;index" json:"expiresAt"`
	AccessCount int                        `gorm:"type:int"             json:"accessCount"`
}

func (s *SharedReport) Expired(asOf time.Time) bool {
	return s.ExpiresAt.Before(asOf)
}
