package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/okendra/retailops-api/pkg/jwt"
)

// Locals keys set by the actor middleware.
const (
	LocalActorID       = "actor_id"
	LocalActorName     = "actor_name"
	LocalActorLocation = "actor_location"
)

// ActorMiddleware resolves the caller identity, tolerantly: a valid Bearer
// token wins, the X-Actor-* headers are the fallback, and an unresolvable
// actor becomes the explicit "Unknown" placeholder. It never rejects a
// request — attribution must not be able to fail a write.
func ActorMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, name, loc := "", "", ""

		if auth := c.Get("Authorization"); auth != "" && jwtSecret != "" {
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if actor, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1])); err == nil {
					id, name, loc = actor.UserID, actor.DisplayName, actor.LocationID
				}
			}
		}
		if id == "" {
			id = c.Get("X-Actor-Id")
		}
		if name == "" {
			name = c.Get("X-Actor-Name")
		}
		if loc == "" {
			loc = c.Get("X-Actor-Location")
		}
		if id == "" {
			id = "Unknown"
		}
		if name == "" {
			name = "Unknown"
		}

		c.Locals(LocalActorID, id)
		c.Locals(LocalActorName, name)
		c.Locals(LocalActorLocation, loc)
		return c.Next()
	}
}

// GetActorID returns the resolved actor id ("Unknown" when unresolvable).
func GetActorID(c *fiber.Ctx) string { return localString(c, LocalActorID) }

// GetActorName returns the resolved display name.
func GetActorName(c *fiber.Ctx) string { return localString(c, LocalActorName) }

// GetActorLocation returns the actor's location id, empty when unknown.
func GetActorLocation(c *fiber.Ctx) string { return localString(c, LocalActorLocation) }

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
