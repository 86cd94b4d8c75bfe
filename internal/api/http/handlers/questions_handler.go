package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/forum-service/internal/api/dto"
	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/service"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

const sessionCookieName = "forum_session"

// QuestionsHandler exposes question CRUD and view registration.
type QuestionsHandler struct {
	questions *service.QuestionService
}

func NewQuestionsHandler(questionService *service.QuestionService) *QuestionsHandler {
	return &QuestionsHandler{questions: questionService}
}

// Create handles POST /questions.
func (h *QuestionsHandler) Create(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	question, err := h.questions.CreateQuestion(c.Context(), identity, service.QuestionInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromQuestion(question)})
}

// Get handles GET /questions/:id.
func (h *QuestionsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "question")
	if err != nil {
		return err
	}
	question, err := h.questions.GetQuestion(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromQuestion(question)})
}

// List handles GET /questions with optional title filter and paging.
func (h *QuestionsHandler) List(c *fiber.Ctx) error {
	title := c.Query("title")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	questions, err := h.questions.ListQuestions(c.Context(), title, limit, offset)
	if err != nil {
		return err
	}

	views := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		views = append(views, dto.FromQuestion(&questions[i]))
	}
	return c.JSON(fiber.Map{"data": views})
}

// Update handles PUT /questions/:id.
func (h *QuestionsHandler) Update(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	id, err := parseID(c, "id", "question")
	if err != nil {
		return err
	}

	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	question, err := h.questions.UpdateQuestion(c.Context(), identity, id, service.QuestionInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromQuestion(question)})
}

// Delete handles DELETE /questions/:id.
func (h *QuestionsHandler) Delete(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	id, err := parseID(c, "id", "question")
	if err != nil {
		return err
	}
	if err := h.questions.DeleteQuestion(c.Context(), identity, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterView handles PATCH /questions/:id/views.
//
// Authenticated callers are counted by user id. Anonymous callers are
// counted by a session id taken from the X-Session-Id header or the
// session cookie; a fresh id is minted and set as a cookie when neither
// is present, so repeated reloads from the same browser count once.
func (h *QuestionsHandler) RegisterView(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	id, err := parseID(c, "id", "question")
	if err != nil {
		return err
	}

	sessionID := c.Get("X-Session-Id")
	if sessionID == "" {
		sessionID = c.Cookies(sessionCookieName)
	}
	if sessionID == "" && identity == nil {
		sessionID = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookieName,
			Value:    sessionID,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	counted, err := h.questions.RegisterView(c.Context(), id, sessionID, identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"counted": counted}})
}

func parseID(c *fiber.Ctx, param, entity string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+entity+" id", nil)
	}
	return id, nil
}
