package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomFromTemplate(t *testing.T) {
	tests := []struct {
		name      string
		roomType  RoomType
		itemCount int
	}{
		{name: "kitchen template", roomType: RoomTypeKitchen, itemCount: 22},
		{name: "bathroom template", roomType: RoomTypeBathroom, itemCount: 21},
		{name: "bedroom template", roomType: RoomTypeBedroom, itemCount: 18},
		{name: "living room template", roomType: RoomTypeLivingRoom, itemCount: 20},
		{name: "general template", roomType: RoomTypeGeneral, itemCount: 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, ok := NewRoomFromTemplate("", tt.roomType)
			require.True(t, ok)

			assert.Len(t, room.Items, tt.itemCount)
			assert.Equal(t, tt.itemCount, room.TotalItems)
			assert.Equal(t, 0, room.CompletedItems)
			assert.Equal(t, float64(0), room.ProgressPercentage)
			assert.NotEmpty(t, room.ID)
			assert.NotEmpty(t, room.Name)

			for _, item := range room.Items {
				assert.False(t, item.Completed)
				assert.Empty(t, item.Photos)
				assert.Empty(t, item.Videos)
			}
		})
	}

	t.Run("unknown room type", func(t *testing.T) {
		_, ok := NewRoomFromTemplate("Attic", RoomType("attic"))
		assert.False(t, ok)
	})

	t.Run("custom name overrides default", func(t *testing.T) {
		room, ok := NewRoomFromTemplate("Guest Bathroom", RoomTypeBathroom)
		require.True(t, ok)
		assert.Equal(t, "Guest Bathroom", room.Name)
	})

	t.Run("item IDs are unique per room instance", func(t *testing.T) {
		first, _ := NewRoomFromTemplate("", RoomTypeKitchen)
		second, _ := NewRoomFromTemplate("", RoomTypeKitchen)

		seen := map[string]bool{}
		for _, item := range first.Items {
			assert.False(t, seen[item.ID])
			seen[item.ID] = true
		}
		for _, item := range second.Items {
			assert.False(t, seen[item.ID], "item ID reused across room instances")
		}
	})
}

func TestRoom_Recalculate(t *testing.T) {
	room, ok := NewRoomFromTemplate("", RoomTypeKitchen)
	require.True(t, ok)
	require.Equal(t, 22, room.TotalItems)

	t.Run("half complete", func(t *testing.T) {
		for i := 0; i < 11; i++ {
			room.Items[i].SetCompleted(true)
		}
		room.Recalculate()

		assert.Equal(t, 11, room.CompletedItems)
		assert.Equal(t, float64(50), room.ProgressPercentage)
	})

	t.Run("fully complete", func(t *testing.T) {
		for i := range room.Items {
			room.Items[i].SetCompleted(true)
		}
		room.Recalculate()

		assert.Equal(t, 22, room.CompletedItems)
		assert.Equal(t, float64(100), room.ProgressPercentage)
	})

	t.Run("empty room reports zero progress", func(t *testing.T) {
		empty := Room{Items: []ChecklistItem{}}
		empty.Recalculate()

		assert.Equal(t, 0, empty.TotalItems)
		assert.Equal(t, float64(0), empty.ProgressPercentage)
	})
}

func TestChecklistItem_SetCompleted(t *testing.T) {
	t.Run("un-completing clears severity", func(t *testing.T) {
		item := ChecklistItem{}
		item.SetCompleted(true)
		item.Severity = SeverityMajor

		item.SetCompleted(false)

		assert.False(t, item.Completed)
		assert.Empty(t, item.Severity)
	})

	t.Run("completing leaves severity untouched", func(t *testing.T) {
		item := ChecklistItem{Completed: true, Severity: SeverityMinor}
		item.SetCompleted(true)

		assert.Equal(t, SeverityMinor, item.Severity)
	})
}

func TestChecklistItem_HasIssue(t *testing.T) {
	tests := []struct {
		name     string
		item     ChecklistItem
		expected bool
	}{
		{name: "completed with severity", item: ChecklistItem{Completed: true, Severity: SeverityMinor}, expected: true},
		{name: "completed without severity", item: ChecklistItem{Completed: true}, expected: false},
		{name: "incomplete", item: ChecklistItem{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.HasIssue())
		})
	}
}

func TestProperty_RecalculateProgress(t *testing.T) {
	t.Run("no rooms means zero progress", func(t *testing.T) {
		property := Property{}
		property.RecalculateProgress()
		assert.Equal(t, float64(0), property.OverallProgress)
	})

	t.Run("overall progress spans all rooms", func(t *testing.T) {
		kitchen, _ := NewRoomFromTemplate("", RoomTypeKitchen)
		bathroom, _ := NewRoomFromTemplate("", RoomTypeBathroom)

		// Complete the whole kitchen, leave the bathroom untouched.
		for i := range kitchen.Items {
			kitchen.Items[i].SetCompleted(true)
		}

		property := Property{Rooms: []Room{kitchen, bathroom}}
		property.RecalculateProgress()

		expected := 100 * float64(22) / float64(22+21)
		assert.InDelta(t, expected, property.OverallProgress, 0.001)
		assert.Equal(t, float64(100), property.Rooms[0].ProgressPercentage)
		assert.Equal(t, float64(0), property.Rooms[1].ProgressPercentage)
	})
}

func TestProperty_RemoveRoom(t *testing.T) {
	kitchen, _ := NewRoomFromTemplate("", RoomTypeKitchen)
	property := Property{Rooms: []Room{kitchen}}

	assert.True(t, property.RemoveRoom(kitchen.ID))
	assert.Empty(t, property.Rooms)
	assert.False(t, property.RemoveRoom(kitchen.ID))
}

func TestProperty_Clone(t *testing.T) {
	kitchen, _ := NewRoomFromTemplate("", RoomTypeKitchen)
	property := Property{
		Address:    "1 Main St",
		TenantName: "Tenant",
		Rooms:      []Room{kitchen},
	}

	clone := property.Clone()
	clone.Rooms[0].Items[0].SetCompleted(true)
	clone.Rooms[0].Items[0].Notes = "scratched"
	clone.Rooms[0].Items[0].Photos = append(clone.Rooms[0].Items[0].Photos, MediaFile{ID: "m1"})

	assert.False(t, property.Rooms[0].Items[0].Completed, "clone mutation leaked into original")
	assert.Empty(t, property.Rooms[0].Items[0].Notes)
	assert.Empty(t, property.Rooms[0].Items[0].Photos)
}
