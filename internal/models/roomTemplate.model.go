package models

// RoomTemplate is the fixed checklist blueprint for a room type. Instantiated
// into a Room with fresh item IDs via NewRoomFromTemplate.
type RoomTemplate struct {
	Type        RoomType       `json:"type"`
	DisplayName string         `json:"displayName"`
	Items       []TemplateItem `json:"items"`
}

type TemplateItem struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

var roomTemplates = map[RoomType]RoomTemplate{
	RoomTypeKitchen: {
		Type:        RoomTypeKitchen,
		DisplayName: "Kitchen",
		Items: []TemplateItem{
			{Text: "Refrigerator - exterior clean, no dents", Category: "Appliances"},
			{Text: "Refrigerator - interior clean, no odors", Category: "Appliances"},
			{Text: "Stove/Oven - exterior clean, burners functional", Category: "Appliances"},
			{Text: "Stove/Oven - interior clean, no grease buildup", Category: "Appliances"},
			{Text: "Dishwasher - exterior clean, no leaks", Category: "Appliances"},
			{Text: "Dishwasher - interior clean, drains properly", Category: "Appliances"},
			{Text: "Microwave - clean inside and out", Category: "Appliances"},
			{Text: "Range hood/Exhaust fan - clean, functional", Category: "Appliances"},
			{Text: "Kitchen sink - clean, no scratches or stains", Category: "Plumbing"},
			{Text: "Kitchen faucet - functional, no leaks", Category: "Plumbing"},
			{Text: "Garbage disposal - functional, clean", Category: "Plumbing"},
			{Text: "Under-sink area - no water damage or leaks", Category: "Plumbing"},
			{Text: "Countertops - clean, no damage or stains", Category: "Surfaces"},
			{Text: "Backsplash - clean, no missing tiles", Category: "Surfaces"},
			{Text: "Cabinets - doors/drawers functional, clean inside", Category: "Cabinets"},
			{Text: "Cabinet hardware - all knobs/handles present", Category: "Cabinets"},
			{Text: "Pantry/Storage areas - clean, no damage", Category: "Storage"},
			{Text: "Flooring - clean, no damage or stains", Category: "Flooring"},
			{Text: "Walls - no holes, stains, or excessive wear", Category: "Walls/Paint"},
			{Text: "Light fixtures - all bulbs working, clean", Category: "Electrical"},
			{Text: "Electrical outlets - all functional", Category: "Electrical"},
			{Text: "Windows - clean, screens intact", Category: "Windows"},
		},
	},
	RoomTypeBathroom: {
		Type:        RoomTypeBathroom,
		DisplayName: "Bathroom",
		Items: []TemplateItem{
			{Text: "Toilet - clean, functional, no leaks", Category: "Fixtures"},
			{Text: "Toilet seat and lid - secure, undamaged", Category: "Fixtures"},
			{Text: "Bathtub/Shower - clean, no mold or mildew", Category: "Fixtures"},
			{Text: "Shower head - clean, proper water pressure", Category: "Fixtures"},
			{Text: "Shower door/Curtain rod - functional, clean", Category: "Fixtures"},
			{Text: "Bathroom sink - clean, no chips or cracks", Category: "Fixtures"},
			{Text: "Bathroom faucet - functional, no leaks", Category: "Plumbing"},
			{Text: "Drain stoppers - present and functional", Category: "Plumbing"},
			{Text: "Under-sink plumbing - no leaks or water damage", Category: "Plumbing"},
			{Text: "Bathroom vanity/Countertop - clean, no damage", Category: "Surfaces"},
			{Text: "Medicine cabinet/Mirror - clean, secure", Category: "Storage"},
			{Text: "Bathroom tiles - clean, no missing/cracked tiles", Category: "Surfaces"},
			{Text: "Tile grout - clean, no mold or discoloration", Category: "Surfaces"},
			{Text: "Flooring - clean, no water damage", Category: "Flooring"},
			{Text: "Walls - no holes, mold, or excessive wear", Category: "Walls/Paint"},
			{Text: "Exhaust fan - functional, clean", Category: "Ventilation"},
			{Text: "Light fixtures - all bulbs working, clean", Category: "Electrical"},
			{Text: "Electrical outlets (GFCI) - functional", Category: "Electrical"},
			{Text: "Towel bars/Hooks - secure, undamaged", Category: "Hardware"},
			{Text: "Toilet paper holder - secure, functional", Category: "Hardware"},
			{Text: "Windows - clean, privacy intact", Category: "Windows"},
		},
	},
	RoomTypeBedroom: {
		Type:        RoomTypeBedroom,
		DisplayName: "Bedroom",
		Items: []TemplateItem{
			{Text: "Walls - no holes, stains, or excessive wear", Category: "Walls/Paint"},
			{Text: "Ceiling - no cracks, stains, or damage", Category: "Walls/Paint"},
			{Text: "Flooring - clean, no damage or excessive wear", Category: "Flooring"},
			{Text: "Baseboards/Trim - clean, no damage", Category: "Trim"},
			{Text: "Windows - clean, open/close properly", Category: "Windows"},
			{Text: "Window screens - intact, no tears", Category: "Windows"},
			{Text: "Window sills - clean, no water damage", Category: "Windows"},
			{Text: "Blinds/Curtain hardware - functional", Category: "Window Treatments"},
			{Text: "Closet doors - open/close properly, on track", Category: "Closets"},
			{Text: "Closet interior - clean, no damage", Category: "Closets"},
			{Text: "Closet rod/Shelving - secure, functional", Category: "Closets"},
			{Text: "Bedroom door - opens/closes properly", Category: "Doors"},
			{Text: "Door hardware - lock/handle functional", Category: "Doors"},
			{Text: "Light fixtures - all bulbs working, clean", Category: "Electrical"},
			{Text: "Light switches - all functional", Category: "Electrical"},
			{Text: "Electrical outlets - all functional", Category: "Electrical"},
			{Text: "Ceiling fan (if applicable) - functional, clean", Category: "Electrical"},
			{Text: "Heating/AC vents - clean, unobstructed", Category: "HVAC"},
		},
	},
	RoomTypeLivingRoom: {
		Type:        RoomTypeLivingRoom,
		DisplayName: "Living Room",
		Items: []TemplateItem{
			{Text: "Walls - no holes, stains, or excessive wear", Category: "Walls/Paint"},
			{Text: "Ceiling - no cracks, stains, or damage", Category: "Walls/Paint"},
			{Text: "Flooring - clean, no damage or excessive wear", Category: "Flooring"},
			{Text: "Baseboards/Trim - clean, no damage", Category: "Trim"},
			{Text: "Windows - clean, open/close properly", Category: "Windows"},
			{Text: "Window screens - intact, no tears", Category: "Windows"},
			{Text: "Window sills - clean, no water damage", Category: "Windows"},
			{Text: "Blinds/Curtain hardware - functional", Category: "Window Treatments"},
			{Text: "Entry door - opens/closes properly", Category: "Doors"},
			{Text: "Door hardware - lock/handle functional", Category: "Doors"},
			{Text: "Fireplace (if applicable) - clean, screen present", Category: "Fireplace"},
			{Text: "Fireplace damper (if applicable) - functional", Category: "Fireplace"},
			{Text: "Built-in shelving - clean, secure", Category: "Built-ins"},
			{Text: "Light fixtures - all bulbs working, clean", Category: "Electrical"},
			{Text: "Light switches - all functional", Category: "Electrical"},
			{Text: "Electrical outlets - all functional", Category: "Electrical"},
			{Text: "Cable/Internet outlets - functional", Category: "Electrical"},
			{Text: "Ceiling fan (if applicable) - functional, clean", Category: "Electrical"},
			{Text: "Heating/AC vents - clean, unobstructed", Category: "HVAC"},
			{Text: "Thermostat - functional, programmed correctly", Category: "HVAC"},
		},
	},
	RoomTypeGeneral: {
		Type:        RoomTypeGeneral,
		DisplayName: "General Areas",
		Items: []TemplateItem{
			{Text: "Hallways - walls clean, no damage", Category: "Interior"},
			{Text: "Stairways - clean, railings secure", Category: "Interior"},
			{Text: "Entry areas - clean, no damage", Category: "Interior"},
			{Text: "Laundry area - clean, connections secure", Category: "Utilities"},
			{Text: "Water heater area - clean, no leaks", Category: "Utilities"},
			{Text: "Furnace/HVAC unit - clean, accessible", Category: "HVAC"},
			{Text: "Air filters - replaced with clean ones", Category: "HVAC"},
			{Text: "Attic access - clean, insulation intact", Category: "Storage"},
			{Text: "Basement/Crawl space - clean, no moisture issues", Category: "Storage"},
			{Text: "Garage - clean, no stains or damage", Category: "Exterior"},
			{Text: "Garage door - functional, remote works", Category: "Exterior"},
			{Text: "Exterior doors - functional, weatherstripping intact", Category: "Exterior"},
			{Text: "Outdoor lighting - all fixtures working", Category: "Exterior"},
			{Text: "Mailbox - clean, functional", Category: "Exterior"},
			{Text: "Yard/Landscaping - maintained per lease terms", Category: "Exterior"},
			{Text: "Sprinkler system (if applicable) - functional", Category: "Exterior"},
			{Text: "Deck/Patio - clean, no damage", Category: "Exterior"},
			{Text: "Driveway/Walkways - clean, no stains", Category: "Exterior"},
			{Text: "Keys - all provided keys returned", Category: "Security"},
			{Text: "Garage remotes - all remotes returned", Category: "Security"},
			{Text: "Smoke detectors - functional, batteries replaced", Category: "Safety"},
			{Text: "Carbon monoxide detectors - functional", Category: "Safety"},
		},
	},
}

func GetRoomTemplate(roomType RoomType) (RoomTemplate, bool) {
	template, ok := roomTemplates[roomType]
	return template, ok
}

func AllRoomTypes() []RoomType {
	return []RoomType{
		RoomTypeKitchen,
		RoomTypeBathroom,
		RoomTypeBedroom,
		RoomTypeLivingRoom,
		RoomTypeGeneral,
	}
}

// NewRoomFromTemplate instantiates a room from its type's checklist blueprint
// with fresh item identifiers and nothing completed.
func NewRoomFromTemplate(name string, roomType RoomType) (Room, bool) {
	template, ok := roomTemplates[roomType]
	if !ok {
		return Room{}, false
	}

	if name == "" {
		name = template.DisplayName
	}

	items := make([]ChecklistItem, 0, len(template.Items))
	for _, templateItem := range template.Items {
		items = append(items, ChecklistItem{
			ID:       NewItemID(),
			Text:     templateItem.Text,
			Category: templateItem.Category,
			Photos:   []MediaFile{},
			Videos:   []MediaFile{},
		})
	}

	room := Room{
		ID:    NewItemID(),
		Name:  name,
		Type:  roomType,
		Items: items,
	}
	room.Recalculate()
	room.Touch()

	return room, true
}
