package handlers

import (
	"log/slog"
	"net/http"

	"station-request-api-server/internal/api/middleware"
	"station-request-api-server/internal/auth"
	"station-request-api-server/internal/cart"
	"station-request-api-server/internal/metrics"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/navigation"
	"station-request-api-server/internal/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Station *session.Station
	Tokens  *auth.TokenManager
	Metrics *metrics.Metrics
	Log     *slog.Logger
}

type LoginPayload struct {
	StationCode string `json:"stationCode"`
	Password    string `json:"password"`
}

// Login checks the station credentials, opens the session, selects the
// user's first workflow and returns a bearer token for it.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, sid, ok := h.Station.Login(payload.StationCode, payload.Password)
	h.Metrics.Login(ok)
	if !ok {
		h.Log.Info("login rejected", "stationCode", payload.StationCode)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid station code or password"})
		return
	}

	// Every step below is bound to sid; a newer login wins over this one.
	var active *models.Workflow
	if wf, ok := user.DefaultWorkflow(); ok {
		if err := h.Station.SetSessionWorkflow(sid, &wf); err != nil {
			respondError(c, h.Log, "Failed to select workflow", err)
			return
		}
		active = &wf
	}

	token, err := h.Tokens.Generate(sid, user.ID, user.StationCode, string(user.Role))
	if err != nil {
		h.Station.LogoutSession(sid)
		respondError(c, h.Log, "Failed to generate token", err)
		return
	}

	h.Log.Info("station login", "user", user.ID, "role", user.Role, "stationCode", user.StationCode)
	c.JSON(http.StatusOK, gin.H{
		"token":          token,
		"user":           user,
		"activeWorkflow": active,
		"home":           navigation.Home(user.Role),
	})
}

// Logout ends the caller's station session, dropping the workflow and the
// cart. A session already replaced by a newer login is left alone.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.Station.LogoutSession(sessionID(c)) {
		h.Log.Info("station logout", "user", c.GetString(middleware.KeyUserID))
	}
	c.JSON(http.StatusOK, session.Snapshot{Cart: cart.New().Snapshot()})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, h.Station.Snapshot())
}
