package content

import (
	"github.com/gofiber/fiber/v2"
)

// Controller binds the scratch content endpoints to HTTP.
type Controller struct {
	store *Store
}

// NewController creates the content controller.
func NewController(store *Store) *Controller {
	return &Controller{store: store}
}

// RegisterRoutes mounts the content endpoints at the app root.
func (c *Controller) RegisterRoutes(app fiber.Router) {
	app.Post("/save", c.SavePost)
	app.Get("/content", c.ContentGet)
}

type savePayload struct {
	Content string `json:"content"`
}

// SavePost handles POST /save.
func (c *Controller) SavePost(ctx *fiber.Ctx) error {
	var payload savePayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid content payload",
		})
	}

	if err := c.store.Save(ctx.UserContext(), payload.Content); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error saving content",
		})
	}

	return ctx.JSON(fiber.Map{
		"message": "Content saved successfully",
	})
}

// ContentGet handles GET /content.
func (c *Controller) ContentGet(ctx *fiber.Ctx) error {
	val, err := c.store.Get(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error loading content",
		})
	}

	return ctx.JSON(fiber.Map{
		"content": val,
	})
}
