package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/forum-service/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the authenticated caller, reconstructed per request from a
// verified token and discarded when the request ends.
type Identity struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Role      domain.Role
	Authority string
}

// Gate establishes the caller identity from a bearer token. It fails open:
// a missing, malformed or invalid token leaves the request anonymous and
// lets it proceed; denial is the authorization policy's job.
type Gate struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewGate constructs the middleware.
func NewGate(tokens *TokenManager, logger *zap.Logger) *Gate {
	return &Gate{tokens: tokens, logger: logger}
}

// Handle runs on every request before any route handler.
func (g *Gate) Handle(c *fiber.Ctx) error {
	token, ok := ExtractBearer(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debug("bearer token rejected", zap.Error(err))
		return c.Next()
	}
	if claims.Email == "" {
		g.logger.Debug("token accepted but email claim empty")
		return c.Next()
	}

	role := domain.RoleOf(string(claims.Role))
	c.Locals(identityKey, &Identity{
		ID:        claims.ID,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Role:      role,
		Authority: role.Authority(),
	})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
