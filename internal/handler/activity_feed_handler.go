package handler

import (
	"os"

	"policy-compass-be/internal/pkg/logger"
	ws "policy-compass-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ActivityFeedHandler exposes the live activity websocket. Browsers
// cannot set Authorization headers on websocket upgrades, so the session
// token rides in the query string.
type ActivityFeedHandler struct {
	hub    *ws.Hub
	logger logger.ILogger
}

func NewActivityFeedHandler(hub *ws.Hub, log logger.ILogger) *ActivityFeedHandler {
	return &ActivityFeedHandler{hub: hub, logger: log}
}

func (h *ActivityFeedHandler) RegisterRoutes(r fiber.Router) {
	feed := r.Group("/session/v1")

	feed.Use("/feed", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			sessionID := h.sessionFromToken(ctx.Query("token"))
			if sessionID == "" {
				return fiber.ErrUnauthorized
			}
			ctx.Locals("session_id", sessionID)
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	feed.Get("/feed", websocket.New(func(conn *websocket.Conn) {
		sessionID, _ := conn.Locals("session_id").(string)
		h.logger.Info("ActivityFeed", "Feed connected", map[string]interface{}{"session_id": sessionID})
		ws.ServeWs(h.hub, conn, sessionID)
	}))
}

func (h *ActivityFeedHandler) sessionFromToken(tokenStr string) string {
	if tokenStr == "" {
		return ""
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sessionID, _ := claims["session_id"].(string)
	return sessionID
}
