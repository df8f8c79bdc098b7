package models

import (
	"time"

	"github.com/google/uuid"
)

type RoomType string

const (
	RoomTypeKitchen    RoomType = "kitchen"
	RoomTypeBathroom   RoomType = "bathroom"
	RoomTypeBedroom    RoomType = "bedroom"
	RoomTypeLivingRoom RoomType = "living-room"
	RoomTypeGeneral    RoomType = "general"
)

func (rt RoomType) Valid() bool {
	switch rt {
	case RoomTypeKitchen, RoomTypeBathroom, RoomTypeBedroom, RoomTypeLivingRoom, RoomTypeGeneral:
		return true
	}
	return false
}

type SeverityLevel string

const (
	SeverityMinor    SeverityLevel = "minor"
	SeverityModerate SeverityLevel = "moderate"
	SeverityMajor    SeverityLevel = "major"
)

func (s SeverityLevel) Valid() bool {
	switch s {
	case SeverityMinor, SeverityModerate, SeverityMajor:
		return true
	}
	return false
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaFile is a captured evidence artifact. It is immutable once created and
// owned by exactly one checklist item, so removal is a plain filter with no
// reference counting.
type MediaFile struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	DataURL     string    `json:"dataUrl"`
	Type        MediaType `json:"type"`
	Size        int64     `json:"size"`
	Timestamp   time.Time `json:"timestamp"`
	Watermarked bool      `json:"watermarked"`
}

type ChecklistItem struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Category  string        `json:"category"`
	Completed bool          `json:"completed"`
	Severity  SeverityLevel `json:"severity,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Photos    []MediaFile   `json:"photos"`
	Videos    []MediaFile   `json:"videos"`
}

// SetCompleted flips the completed flag. Severity only describes a completed
// item's issue, so un-completing always clears it.
func (i *ChecklistItem) SetCompleted(completed bool) {
	i.Completed = completed
	if !completed {
		i.Severity = ""
	}
}

func (i *ChecklistItem) HasIssue() bool {
	return i.Completed && i.Severity != ""
}

type Room struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Type               RoomType        `json:"type"`
	Items              []ChecklistItem `json:"items"`
	CompletedItems     int             `json:"completedItems"`
	TotalItems         int             `json:"totalItems"`
	ProgressPercentage float64         `json:"progressPercentage"`
	LastModified       time.Time       `json:"lastModified"`
}

// Recalculate rebuilds the derived rollups from the items collection. Rollups
// are materialized views of the items and must never be set independently.
func (r *Room) Recalculate() {
	completed := 0
	for _, item := range r.Items {
		if item.Completed {
			completed++
		}
	}

	r.CompletedItems = completed
	r.TotalItems = len(r.Items)
	if r.TotalItems == 0 {
		r.ProgressPercentage = 0
		return
	}
	r.ProgressPercentage = 100 * float64(r.CompletedItems) / float64(r.TotalItems)
}

func (r *Room) Touch() {
	r.LastModified = time.Now().UTC()
}

// Item returns a pointer into the items slice so mutations stick.
func (r *Room) Item(itemID string) *ChecklistItem {
	for i := range r.Items {
		if r.Items[i].ID == itemID {
			return &r.Items[i]
		}
	}
	return nil
}

func NewItemID() string {
	return uuid.New().String()
}

func (i ChecklistItem) Clone() ChecklistItem {
	clone := i
	clone.Photos = append([]MediaFile(nil), i.Photos...)
	clone.Videos = append([]MediaFile(nil), i.Videos...)
	return clone
}

func (r Room) Clone() Room {
	clone := r
	clone.Items = make([]ChecklistItem, len(r.Items))
	for i, item := range r.Items {
		clone.Items[i] = item.Clone()
	}
	return clone
}
