package handlers

import (
	"depositdefender/internal/app"
	"depositdefender/internal/controllers/properties"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	Handler
	propertyController properties.PropertyControllerInterface
}

func NewPropertyHandler(app app.App, router fiber.Router) *PropertyHandler {
	log := logger.New("handlers").File("property_handler")
	return &PropertyHandler{
		propertyController: app.PropertyController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PropertyHandler) Register() {
	propertyRoutes := h.router.Group("/properties")

	propertyRoutes.Get("/", h.listProperties)
	propertyRoutes.Post("/", h.createProperty)
	propertyRoutes.Get("/:id", h.getProperty)
	propertyRoutes.Put("/:id", h.updateProperty)
	propertyRoutes.Delete("/:id", h.deleteProperty)

	propertyRoutes.Post("/:id/rooms", h.addRoom)
	propertyRoutes.Delete("/:id/rooms/:roomId", h.removeRoom)

	items := propertyRoutes.Group("/:id/rooms/:roomId/items/:itemId")
	items.Patch("/completed", h.setItemCompleted)
	items.Patch("/severity", h.setItemSeverity)
	items.Patch("/notes", h.setItemNotes)
	items.Post("/media", h.addMedia)
	items.Delete("/media/:mediaId", h.removeMedia)
}

func (h *PropertyHandler) listProperties(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"properties": h.propertyController.GetProperties(),
	})
}

func (h *PropertyHandler) createProperty(c *fiber.Ctx) error {
	log := h.log.Function("createProperty")

	var form PropertyFormData
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	property, err := h.propertyController.CreateProperty(c.UserContext(), form)
	if err != nil {
		log.Er("failed to create property", err)
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) getProperty(c *fiber.Ctx) error {
	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	property, err := h.propertyController.GetProperty(propertyID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) updateProperty(c *fiber.Ctx) error {
	log := h.log.Function("updateProperty")

	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	var property Property
	if err := c.BodyParser(&property); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	// The path wins over whatever id the payload carries.
	property.ID = propertyID

	if err := h.propertyController.UpsertProperty(c.UserContext(), &property); err != nil {
		log.Er("failed to update property", err, "propertyID", propertyID)
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) deleteProperty(c *fiber.Ctx) error {
	log := h.log.Function("deleteProperty")

	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	if err := h.propertyController.RemoveProperty(c.UserContext(), propertyID); err != nil {
		log.Er("failed to delete property", err, "propertyID", propertyID)
		return errorJSON(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PropertyHandler) addRoom(c *fiber.Ctx) error {
	log := h.log.Function("addRoom")

	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	var body struct {
		Name string   `json:"name"`
		Type RoomType `json:"type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	property, err := h.propertyController.AddRoom(c.UserContext(), propertyID, body.Name, body.Type)
	if err != nil {
		log.Er("failed to add room", err, "propertyID", propertyID)
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) removeRoom(c *fiber.Ctx) error {
	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	property, err := h.propertyController.RemoveRoom(c.UserContext(), propertyID, c.Params("roomId"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) setItemCompleted(c *fiber.Ctx) error {
	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	var body struct {
		Completed bool `json:"completed"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	property, err := h.propertyController.ToggleItem(
		c.UserContext(), propertyID, c.Params("roomId"), c.Params("itemId"), body.Completed)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) setItemSeverity(c *fiber.Ctx) error {
	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	var body struct {
		Severity SeverityLevel `json:"severity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	property, err := h.propertyController.SetItemSeverity(
		c.UserContext(), propertyID, c.Params("roomId"), c.Params("itemId"), body.Severity)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) setItemNotes(c *fiber.Ctx) error {
	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	property, err := h.propertyController.SetItemNotes(
		c.UserContext(), propertyID, c.Params("roomId"), c.Params("itemId"), body.Notes)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) addMedia(c *fiber.Ctx) error {
	log := h.log.Function("addMedia")

	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	var body struct {
		Filename    string `json:"filename"`
		DataURL     string `json:"dataUrl"`
		Watermarked bool   `json:"watermarked"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	property, err := h.propertyController.AddMedia(
		c.UserContext(), propertyID, c.Params("roomId"), c.Params("itemId"),
		body.Filename, body.DataURL, body.Watermarked)
	if err != nil {
		log.Er("failed to add media", err, "propertyID", propertyID)
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) removeMedia(c *fiber.Ctx) error {
	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	property, err := h.propertyController.RemoveMedia(
		c.UserContext(), propertyID, c.Params("roomId"), c.Params("itemId"), c.Params("mediaId"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}
