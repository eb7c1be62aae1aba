package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the
// request context.
const actorIDKey = contextKey("actorID")

// actorHeader names the header the presentation layer uses to say who is
// acting. There is no authentication in this service; the header is
// trusted as-is and falls back to a configured default.
const actorHeader = "X-Actor-ID"

// ActorMiddleware resolves the acting user for the request and stores it
// in the request context, enriching the request logger with it.
func ActorMiddleware(defaultActorID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			actorID = defaultActorID
		}

		ctx := c.Request.Context()
		enrichedLogger := GetLoggerFromCtx(ctx).With(slog.String("actor_id", actorID))
		ctx = context.WithValue(ctx, actorIDKey, actorID)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActorFromContext retrieves the acting user ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorID, ok := c.Request.Context().Value(actorIDKey).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
