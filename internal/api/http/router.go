package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/forum-service/internal/api/http/handlers"
	"github.com/spec-kit/forum-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Users         *handlers.UsersHandler
	Questions     *handlers.QuestionsHandler
	Answers       *handlers.AnswersHandler
	Tags          *handlers.TagsHandler
	Notifications *handlers.NotificationsHandler
	PasswordReset *handlers.PasswordResetHandler
	Gate          *auth.Gate
}

// RegisterRoutes wires HTTP routes. The authentication gate runs on every
// route and never rejects; handlers and services decide what an anonymous
// caller may do.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1", cfg.Gate.Handle)

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/me", cfg.Users.Me)
	users.Get("/", cfg.Users.List)
	users.Delete("/:id", cfg.Users.Delete)
	users.Post("/password/change", cfg.Users.ChangePassword)
	users.Post("/password/reset", cfg.PasswordReset.Request)
	users.Post("/password/reset/confirm", cfg.PasswordReset.Confirm)

	questions := api.Group("/questions")
	questions.Post("/", cfg.Questions.Create)
	questions.Get("/", cfg.Questions.List)
	questions.Get("/:id", cfg.Questions.Get)
	questions.Put("/:id", cfg.Questions.Update)
	questions.Delete("/:id", cfg.Questions.Delete)
	questions.Patch("/:id/views", cfg.Questions.RegisterView)
	questions.Post("/:id/answers", cfg.Answers.Create)
	questions.Get("/:id/answers", cfg.Answers.ListByQuestion)

	answers := api.Group("/answers")
	answers.Put("/:id", cfg.Answers.Update)
	answers.Patch("/:id/rating", cfg.Answers.Rate)
	answers.Delete("/:id", cfg.Answers.Delete)

	tags := api.Group("/tags")
	tags.Get("/", cfg.Tags.List)
	tags.Delete("/:id", cfg.Tags.Delete)

	notifications := api.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Patch("/:id/read", cfg.Notifications.MarkRead)
}
