package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Handler struct {
	secret []byte
}

func NewHandler(secret []byte) *Handler {
	return &Handler{secret: secret}
}

// CreateSession issues an anonymous player identity: a fresh uuid
// wrapped in a signed token. Clients present the token on /ws and the
// game routes; there is no account system behind it.
func (h *Handler) CreateSession(c *gin.Context) {
	playerID := uuid.NewString()

	claims := jwt.MapClaims{
		"sub": playerID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playerId": playerID,
		"token":    signed,
	})
}
