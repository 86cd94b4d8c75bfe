package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/forum-service/internal/api/dto"
	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/service"
)

// TagsHandler exposes the tag catalog.
type TagsHandler struct {
	tags *service.TagService
}

func NewTagsHandler(tagService *service.TagService) *TagsHandler {
	return &TagsHandler{tags: tagService}
}

// List handles GET /tags.
func (h *TagsHandler) List(c *fiber.Ctx) error {
	tags, err := h.tags.ListTags(c.Context())
	if err != nil {
		return err
	}
	views := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		views = append(views, dto.FromTag(&tags[i]))
	}
	return c.JSON(fiber.Map{"data": views})
}

// Delete handles DELETE /tags/:id. Admin only; the service enforces it.
func (h *TagsHandler) Delete(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	id, err := parseID(c, "id", "tag")
	if err != nil {
		return err
	}
	if err := h.tags.DeleteTag(c.Context(), identity, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
