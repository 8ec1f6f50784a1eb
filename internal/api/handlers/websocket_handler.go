// server/internal/api/handlers/websocket_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"station-request-api-server/internal/auth"
	"station-request-api-server/internal/session"
	"station-request-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Longest wait for a client ping before the connection is dropped.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub     *socket.Hub
	Tokens  *auth.TokenManager
	Station *session.Station
	Log     *slog.Logger
}

// ServeWs upgrades a station client that presents a live session token in
// ?token= and keeps it registered until it goes away.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}
	claims, err := h.Tokens.Parse(tokenString)
	if err != nil || !h.Station.SessionActive(claims.ID) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("failed to upgrade connection", "error", err)
		return
	}

	clientID := claims.UserID + "/" + uuid.New().String()[:8]
	h.Hub.Register(clientID, claims.ID, conn)
	if !h.Station.SessionActive(claims.ID) {
		// the session ended during the upgrade
		h.Hub.CloseSession(claims.ID)
	}
	defer func() {
		h.Hub.Unregister(clientID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Warn("unexpected websocket close", "client", clientID, "error", err)
			}
			break
		}
	}
}
