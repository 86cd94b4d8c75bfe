package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/forum-service/internal/api/dto"
	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/service"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

// AnswersHandler exposes answer CRUD and rating.
type AnswersHandler struct {
	answers *service.AnswerService
}

func NewAnswersHandler(answerService *service.AnswerService) *AnswersHandler {
	return &AnswersHandler{answers: answerService}
}

// Create handles POST /questions/:id/answers.
func (h *AnswersHandler) Create(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	questionID, err := parseID(c, "id", "question")
	if err != nil {
		return err
	}

	var req dto.CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	answer, err := h.answers.CreateAnswer(c.Context(), identity, questionID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromAnswer(answer)})
}

// ListByQuestion handles GET /questions/:id/answers.
func (h *AnswersHandler) ListByQuestion(c *fiber.Ctx) error {
	questionID, err := parseID(c, "id", "question")
	if err != nil {
		return err
	}
	answers, err := h.answers.ListByQuestion(c.Context(), questionID)
	if err != nil {
		return err
	}
	views := make([]dto.AnswerResponse, 0, len(answers))
	for i := range answers {
		views = append(views, dto.FromAnswer(&answers[i]))
	}
	return c.JSON(fiber.Map{"data": views})
}

// Update handles PUT /answers/:id.
func (h *AnswersHandler) Update(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	answerID, err := parseID(c, "id", "answer")
	if err != nil {
		return err
	}

	var req dto.UpdateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	answer, err := h.answers.UpdateAnswer(c.Context(), identity, answerID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAnswer(answer)})
}

// Rate handles PATCH /answers/:id/rating.
func (h *AnswersHandler) Rate(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	answerID, err := parseID(c, "id", "answer")
	if err != nil {
		return err
	}

	var req dto.RateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	answer, err := h.answers.RateAnswer(c.Context(), identity, answerID, req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAnswer(answer)})
}

// Delete handles DELETE /answers/:id.
func (h *AnswersHandler) Delete(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	answerID, err := parseID(c, "id", "answer")
	if err != nil {
		return err
	}
	if err := h.answers.DeleteAnswer(c.Context(), identity, answerID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
