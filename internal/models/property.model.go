package models

import (
	"gorm.io/datatypes"
)

// Property is the root aggregate: one rental unit under inspection. The room
// tree is stored as a single JSON document alongside the flat columns, the
// same record shape the client persists and renders.
type Property struct {
	BaseUUIDModel
	Address         string                    `gorm:"type:text;not null" json:"address"`
	TenantName      string                    `gorm:"type:text;not null" json:"tenantName"`
	TenantEmail     *string                   `gorm:"type:text"          json:"tenantEmail,omitempty"`
	LandlordName    *string                   `gorm:"type:text"          json:"landlordName,omitempty"`
	LandlordEmail   *string                   `gorm:"type:text"          json:"landlordEmail,omitempty"`
	LandlordPhone   *string                   `gorm:"type:text"          json:"landlordPhone,omitempty"`
	MoveOutDate     string                    `gorm:"type:text"          json:"moveOutDate"`
	Rooms           datatypes.JSONSlice[Room] `gorm:"type:jsonb"         json:"rooms"`
	OverallProgress float64                   `gorm:"type:real"          json:"overallProgress"`
}

// RecalculateProgress rebuilds every room rollup and the overall percentage
// from the item collections. Called wholesale on each mutation so the derived
// values cannot drift from their source items.
func (p *Property) RecalculateProgress() {
	totalItems := 0
	completedItems := 0

	for i := range p.Rooms {
		p.Rooms[i].Recalculate()
		totalItems += p.Rooms[i].TotalItems
		completedItems += p.Rooms[i].CompletedItems
	}

	if totalItems == 0 {
		p.OverallProgress = 0
		return
	}
	p.OverallProgress = 100 * float64(completedItems) / float64(totalItems)
}

// Room returns a pointer into the rooms slice so mutations stick.
func (p *Property) Room(roomID string) *Room {
	for i := range p.Rooms {
		if p.Rooms[i].ID == roomID {
			return &p.Rooms[i]
		}
	}
	return nil
}

func (p *Property) RemoveRoom(roomID string) bool {
	for i := range p.Rooms {
		if p.Rooms[i].ID == roomID {
			p.Rooms = append(p.Rooms[:i], p.Rooms[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy: mutating the copy's rooms, items or media never
// reaches the original.
func (p Property) Clone() Property {
	clone := p
	clone.Rooms = make(datatypes.JSONSlice[Room], len(p.Rooms))
	for i, room := range p.Rooms {
		clone.Rooms[i] = room.Clone()
	}
	return clone
}

// PropertyFormData is the creation payload. Address, tenant name and move-out
// date are required; contact fields are optional.
type PropertyFormData struct {
	Address       string `json:"address"`
	TenantName    string `json:"tenantName"`
	TenantEmail   string `json:"tenantEmail"`
	LandlordName  string `json:"landlordName"`
	LandlordEmail string `json:"landlordEmail"`
	LandlordPhone string `json:"landlordPhone"`
	MoveOutDate   string `json:"moveOutDate"`
}
