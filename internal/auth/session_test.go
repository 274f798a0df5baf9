package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CardGolf/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/session", NewHandler(testSecret).CreateSession)
	r.GET("/whoami", middleware.JwtAuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"playerId": c.GetString("playerId")})
	})
	return r
}

func createSession(t *testing.T, r *gin.Engine) (playerID, token string) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["playerId"])
	require.NotEmpty(t, body["token"])
	return body["playerId"], body["token"]
}

func TestCreateSessionIssuesUsableToken(t *testing.T) {
	r := newTestRouter()
	playerID, token := createSession(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, playerID, body["playerId"])
}

func TestTokenAcceptedAsQueryParam(t *testing.T) {
	r := newTestRouter()
	playerID, token := createSession(t, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, playerID, body["playerId"])
}

func TestMissingTokenRejected(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGarbageTokenRejected(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenSignedWithWrongSecretRejected(t *testing.T) {
	r := newTestRouter()
	other := gin.New()
	other.POST("/session", NewHandler([]byte("different-secret")).CreateSession)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	other.ServeHTTP(w, req)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+body["token"])
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
