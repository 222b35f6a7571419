package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clientIPFor(t *testing.T, trusted []string, remoteAddr, forwardedFor string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r, err := NewEngine(zap.NewNop(), trusted)
	require.NoError(t, err)
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestClientIPIgnoresForwardedForByDefault(t *testing.T) {
	require.Equal(t, "198.51.100.1", clientIPFor(t, nil, "198.51.100.1:1234", "1.2.3.4"))
}

func TestClientIPIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	require.Equal(t, "198.51.100.1", clientIPFor(t, []string{"10.0.0.0/8"}, "198.51.100.1:1234", "1.2.3.4"))
}

func TestClientIPHonoursTrustedProxy(t *testing.T) {
	require.Equal(t, "1.2.3.4", clientIPFor(t, []string{"10.0.0.0/8"}, "10.0.0.5:1234", "1.2.3.4"))
}

func TestNewEngineRejectsInvalidProxy(t *testing.T) {
	_, err := NewEngine(zap.NewNop(), []string{"not-an-ip"})
	require.Error(t, err)
}
