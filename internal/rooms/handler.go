package rooms

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// POST /games — opens a room for the authenticated player.
func (h *Handler) Create(c *gin.Context) {
	playerID := c.GetString("playerId")

	room, err := h.svc.Create(c.Request.Context(), playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, RoomResponse{GameID: room.ID, Players: room.Players})
}

// POST /games/join  body: {gameId}
func (h *Handler) Join(c *gin.Context) {
	playerID := c.GetString("playerId")

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.svc.Join(c.Request.Context(), req.GameID, playerID)
	if errors.Is(err, ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "game_not_found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, RoomResponse{GameID: room.ID, Players: room.Players})
}

// POST /games/leave
func (h *Handler) Leave(c *gin.Context) {
	playerID := c.GetString("playerId")

	if err := h.svc.Leave(c.Request.Context(), playerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
